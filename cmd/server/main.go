package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/config"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/database"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/handler"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/mailer"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/middleware"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/payment"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/queue"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/repository"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/router"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/service"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/utils"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis backs rate limiting and the catalogue cache. A nil client
    // disables both instead of blocking startup.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("[warn] redis unavailable; rate limiting and response cache disabled")
    }

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    events := repository.NewEventRepo(db)
    registrations := repository.NewRegistrationRepo(db)

    signer := utils.NewQRSigner(cfg.QRSecret)
    gateway := payment.NewGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
    tickets := &service.TicketIssuer{
        Signer:        signer,
        BaseURL:       cfg.BaseURL,
        Registrations: registrations,
        Events:        events,
        Users:         users,
    }

    authH := handler.NewAuthHandler(cfg, users, tokens)
    eventH := handler.NewEventHandler(cfg, events, registrations)
    regH := handler.NewRegistrationHandler(cfg, events, registrations, gateway, tickets)
    gateH := handler.NewGateHandler(registrations, signer)
    adminH := handler.NewAdminHandler(events, registrations, tickets)

    var cacheMW, registrationLimit, gateLimit, scanLimit echo.MiddlewareFunc
    if rdb != nil {
        cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

        base := config.LoadRateLimitConfig()
        registrationLimit = middleware.NewTokenBucket(config.EndpointLimit(base, "registration", 10, ""), rdb)
        scanLimit = middleware.NewTokenBucket(config.EndpointLimit(base, "scanner", 30, ""), rdb)
        // Gate kiosks are unauthenticated, so this bucket keys on IP.
        gateLimit = middleware.NewTokenBucket(config.EndpointLimit(base, "gate", 20, "ip_route"), rdb)
    }

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterEvents(e, eventH, cfg.JWTSecret, cacheMW)
    router.RegisterRegistrations(e, regH, gateH, cfg.JWTSecret, registrationLimit, gateLimit, scanLimit)
    router.RegisterAdmin(e, adminH, cfg.JWTSecret)

    m := mailer.FromEnv()
    if !m.Enabled() {
        log.Printf("[warn] SMTP not configured; ticket emails disabled")
    }
    go func() {
        if err := queue.StartTicketConsumer(m); err != nil {
            log.Printf("ticket consumer stopped: %v", err)
        }
    }()

    if !gateway.Enabled() {
        log.Printf("[warn] payment gateway not configured; card checkout disabled")
    }
    if cfg.UPIID == "" {
        log.Printf("[warn] UPI_ID not set; events without their own UPI address cannot take UPI payments")
    }

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
