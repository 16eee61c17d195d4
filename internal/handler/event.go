package handler

import (
    "context"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/config"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/repository"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/upi"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/utils"
)

// EventHandler serves the admin event CRUD and the public catalogue.
type EventHandler struct {
    Cfg           config.Config
    Events        *repository.EventRepo
    Registrations *repository.RegistrationRepo
}

func NewEventHandler(cfg config.Config, e *repository.EventRepo, r *repository.RegistrationRepo) *EventHandler {
    return &EventHandler{Cfg: cfg, Events: e, Registrations: r}
}

type eventReq struct {
    Title           string `json:"title"`
    Description     string `json:"description"`
    Date            string `json:"date"` // RFC 3339
    Venue           string `json:"venue"`
    MaxParticipants uint32 `json:"maxParticipants"`
    RegistrationFee uint32 `json:"registrationFee"`
    Banner          string `json:"banner"`
    UPIID           string `json:"upiId"`
}

func (req *eventReq) toEvent() (*model.Event, string) {
    req.Title = strings.TrimSpace(req.Title)
    req.Venue = strings.TrimSpace(req.Venue)
    if req.Title == "" || req.Venue == "" || req.Date == "" {
        return nil, "title/date/venue required"
    }
    date, err := time.Parse(time.RFC3339, req.Date)
    if err != nil {
        return nil, "date must be RFC 3339"
    }
    ev := &model.Event{
        Title:           req.Title,
        Description:     strings.TrimSpace(req.Description),
        Date:            date.UTC(),
        Venue:           req.Venue,
        MaxParticipants: req.MaxParticipants,
        RegistrationFee: req.RegistrationFee,
        Banner:          strings.TrimSpace(req.Banner),
        UPIID:           strings.TrimSpace(req.UPIID),
    }
    if ev.MaxParticipants == 0 {
        ev.MaxParticipants = 9999
    }
    return ev, ""
}

// Create adds a new event (admin only).
func (h *EventHandler) Create(c echo.Context) error {
    var req eventReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ev, msg := req.toEvent()
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ev.CreatedBy = uid

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Events.Create(ctx, ev); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
    }
    return c.JSON(http.StatusCreated, ev)
}

// Update rewrites an event (admin only). When the registration fee changes,
// every pending UPI registration gets its amount and payment QR regenerated
// so students scanning an old QR cannot pay the old price.
func (h *EventHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    var req eventReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ev, msg := req.toEvent()
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    ev.ID = id

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    prev, err := h.Events.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
    }
    ev.CreatedBy = prev.CreatedBy

    if err := h.Events.Update(ctx, ev); err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
    }

    if prev.RegistrationFee != ev.RegistrationFee {
        if err := h.refreshPendingUPI(ctx, ev); err != nil {
            // The event row itself is already updated; log and keep going.
            log.Printf("[warn] refresh pending UPI QRs for event %d: %v", ev.ID, err)
        }
    }
    return c.JSON(http.StatusOK, ev)
}

// refreshPendingUPI regenerates amount and payment QR for every pending UPI
// registration of the event after a fee change. Registrations created
// through the gateway flow carry no UPI QR and are skipped.
func (h *EventHandler) refreshPendingUPI(ctx context.Context, ev *model.Event) error {
    pending, err := h.Registrations.ListPendingByEvent(ctx, ev.ID)
    if err != nil {
        return err
    }
    payee := ev.UPIID
    if payee == "" {
        payee = h.Cfg.UPIID
    }
    for i := range pending {
        reg := &pending[i]
        if reg.UPITxnRef == nil {
            continue
        }
        link := upi.Link(upi.Params{
            PayeeID:   payee,
            PayeeName: h.Cfg.UPIName,
            Amount:    ev.RegistrationFee,
            Note:      ev.Title,
            Ref:       *reg.UPITxnRef,
        })
        qr, err := utils.QRCodeDataURL(link, 256)
        if err != nil {
            return err
        }
        if err := h.Registrations.UpdateUPIArtifacts(ctx, reg.ID, ev.RegistrationFee, qr); err != nil {
            return err
        }
    }
    return nil
}

// Delete removes an event after snapshotting its details into every
// registration that references it (admin only).
func (h *EventHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    if err := h.Events.DeleteWithSnapshot(ctx, id); err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// List returns all events with their registration counts (public).
func (h *EventHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    events, err := h.Events.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
    }
    if events == nil {
        events = []repository.EventWithCount{}
    }
    return c.JSON(http.StatusOK, events)
}

// Get returns one event (public).
func (h *EventHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ev, err := h.Events.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
    }
    return c.JSON(http.StatusOK, ev)
}
