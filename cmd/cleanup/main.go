// Command cleanup removes registrations whose event disappeared without
// leaving a snapshot, and purges dead refresh tokens. Normal event deletion
// snapshots first, so any orphan this finds came from manual intervention
// or pre-snapshot data. Intended to run from cron.
package main

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/config"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/database"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/repository"
)

func main() {
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    n, err := repository.NewRegistrationRepo(db).DeleteOrphans(ctx)
    if err != nil {
        log.Fatalf("cleanup: %v", err)
    }
    log.Printf("cleanup: removed %d orphaned registrations", n)

    // Keep revoked/expired tokens around for a week in case a session
    // needs investigating, then drop them.
    purged, err := repository.NewTokenRepo(db).PurgeExpired(ctx, 7*24*time.Hour)
    if err != nil {
        log.Fatalf("cleanup: purge tokens: %v", err)
    }
    log.Printf("cleanup: purged %d dead refresh tokens", purged)
}
