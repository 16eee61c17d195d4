package router

import (
    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/handler"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/middleware"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
)

// RegisterAdmin registers the admin surface under /api/admin: the payment
// review queue, per-event registration lists and the dashboard.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/api/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )
    g.GET("/payment-queue", h.PaymentQueue)
    g.POST("/approve-payment/:id", h.ApprovePayment)
    g.POST("/reject-payment/:id", h.RejectPayment)
    g.GET("/registrations/:eventId", h.EventRegistrations)
    g.GET("/dashboard", h.Dashboard)
}
