package router

import (
    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/handler"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/middleware"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
)

// RegisterRegistrations registers the student registration lifecycle and
// the two admission endpoints under /api/registrations. The rate limiters
// are per-endpoint-family; any of them may be nil when Redis is down.
func RegisterRegistrations(e *echo.Echo, h *handler.RegistrationHandler, gate *handler.GateHandler,
    jwtSecret string, registrationLimit, gateLimit, scanLimit echo.MiddlewareFunc) {

    g := e.Group("/api/registrations",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleStudent),
    )
    // Only the endpoints that create registrations or gateway orders are
    // rate limited; confirming, verifying and listing are not the spammy
    // part of the flow.
    g.POST("/register-free", h.RegisterFree, optional(registrationLimit)...)
    g.POST("/register-upi", h.RegisterUPI, optional(registrationLimit)...)
    g.POST("/create-order", h.CreateOrder, optional(registrationLimit)...)
    g.POST("/confirm-upi", h.ConfirmUPI)
    g.POST("/verify-payment", h.VerifyPayment)
    g.GET("/my", h.My)

    // The gate check is public: the token in the path is the credential.
    // Registered for GET as well so the URL inside a ticket QR resolves when
    // opened directly from a phone camera. Its limiter keys on IP because
    // gate kiosks are unauthenticated.
    gatePath := "/api/registrations/gate-check/:token"
    if gateLimit != nil {
        e.POST(gatePath, gate.GateCheck, gateLimit)
        e.GET(gatePath, gate.GateCheck, gateLimit)
    } else {
        e.POST(gatePath, gate.GateCheck)
        e.GET(gatePath, gate.GateCheck)
    }

    scanMWs := []echo.MiddlewareFunc{
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    }
    if scanLimit != nil {
        scanMWs = append(scanMWs, scanLimit)
    }
    e.POST("/api/registrations/scan", gate.Scan, scanMWs...)
}

// optional wraps a possibly-nil middleware for route registration.
func optional(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
    if mw == nil {
        return nil
    }
    return []echo.MiddlewareFunc{mw}
}
