// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/handler"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/middleware"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check, used by
// load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Unauthenticated operations
// live under /api/auth; /api/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/api/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Rotates the refresh token.
    g.POST("/refresh", a.Refresh)
    // Issues a new access token without rotating the refresh token.
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts a refresh_token in the body (no JWT needed) or, behind
    // a bearer token, revokes every session of the caller.
    g.POST("/logout", a.Logout)

    auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    auth.POST("/logout", a.Logout)
}

// RegisterEvents registers the public event catalogue and the admin-only
// mutations. cacheMW, when non-nil, wraps the two public GETs so the
// catalogue is served from Redis between writes.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
    pub := []echo.MiddlewareFunc{}
    if cacheMW != nil {
        pub = append(pub, cacheMW)
    }
    e.GET("/api/events", h.List, pub...)
    e.GET("/api/events/:id", h.Get, pub...)

    g := e.Group(
        "/api/events",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )
    g.POST("", h.Create)
    g.PUT("/:id", h.Update)
    g.DELETE("/:id", h.Delete)
}
