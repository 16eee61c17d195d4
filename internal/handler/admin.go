package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/repository"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/service"
)

// AdminHandler serves the payment review queue, the per-event registration
// list and the dashboard.
type AdminHandler struct {
    Events        *repository.EventRepo
    Registrations *repository.RegistrationRepo
    Tickets       *service.TicketIssuer
}

func NewAdminHandler(e *repository.EventRepo, r *repository.RegistrationRepo, t *service.TicketIssuer) *AdminHandler {
    return &AdminHandler{Events: e, Registrations: r, Tickets: t}
}

// PaymentQueue lists self-reported UPI payments waiting for review, oldest
// first. ?eventId= narrows to one event.
func (h *AdminHandler) PaymentQueue(c echo.Context) error {
    var eventID uint64
    if c.QueryParam("eventId") != "" {
        id, ok := pathIDFromQuery(c, "eventId")
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid eventId"})
        }
        eventID = id
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Registrations.ListAwaitingApproval(ctx, eventID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if items == nil {
        items = []repository.ReviewItem{}
    }
    return c.JSON(http.StatusOK, items)
}

// ApprovePayment confirms a reviewed payment and issues the ticket. The
// awaiting_approval guard makes double approval (two admins, double click)
// a 400, and ticket issuance is idempotent on top of that.
func (h *AdminHandler) ApprovePayment(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    moved, err := h.Registrations.Approve(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if !moved {
        // Already approved, or not in review. A paid row without a ticket
        // means an earlier issuance died between the status flip and the
        // attach; Finalize is idempotent, so re-approving repairs it.
        reg, err := h.Registrations.GetByID(ctx, id)
        if err == nil && reg.PaymentStatus == model.StatusPaid && reg.QRToken == nil {
            if reg, err = h.Tickets.Finalize(ctx, reg); err == nil {
                return c.JSON(http.StatusOK, reg)
            }
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "registration is not awaiting approval"})
    }

    reg, err := h.Registrations.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    reg, err = h.Tickets.Finalize(ctx, reg)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue ticket failed"})
    }
    return c.JSON(http.StatusOK, reg)
}

// RejectPayment marks a reviewed payment as rejected. No ticket is issued;
// the student sees payment_rejected and may register again.
func (h *AdminHandler) RejectPayment(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    moved, err := h.Registrations.Reject(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if !moved {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "registration is not awaiting approval"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "payment rejected"})
}

// EventRegistrations lists every registration of one event with student
// details, newest first.
func (h *AdminHandler) EventRegistrations(c echo.Context) error {
    eventID, ok := pathID(c, "eventId")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Events.GetByID(ctx, eventID); err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    rows, err := h.Registrations.ListByEvent(ctx, eventID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if rows == nil {
        rows = []repository.EventRegistrationRow{}
    }
    return c.JSON(http.StatusOK, rows)
}

// Dashboard returns aggregate counts for the admin landing page.
func (h *AdminHandler) Dashboard(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    stats, err := h.Registrations.Stats(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    events, err := h.Events.CountAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "totalEvents":        events,
        "totalRegistrations": stats.TotalRegistrations,
        "totalConfirmed":     stats.TotalConfirmed,
        "totalAttended":      stats.TotalAttended,
        "totalRevenue":       stats.TotalRevenue,
    })
}
