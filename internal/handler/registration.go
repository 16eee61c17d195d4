package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/config"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/payment"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/repository"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/service"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/upi"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/utils"
)

// RegistrationHandler serves the student-facing registration lifecycle:
// free registration, the two paid flows (self-reported UPI and gateway
// checkout), and the student's own registration list.
type RegistrationHandler struct {
    Cfg           config.Config
    Events        *repository.EventRepo
    Registrations *repository.RegistrationRepo
    Gateway       *payment.Gateway
    Tickets       *service.TicketIssuer
}

func NewRegistrationHandler(cfg config.Config, e *repository.EventRepo, r *repository.RegistrationRepo,
    g *payment.Gateway, t *service.TicketIssuer) *RegistrationHandler {
    return &RegistrationHandler{Cfg: cfg, Events: e, Registrations: r, Gateway: g, Tickets: t}
}

type eventIDReq struct {
    EventID uint64 `json:"eventId"`
}

type confirmUPIReq struct {
    RegistrationID uint64 `json:"registrationId"`
    TxnID          string `json:"txnId"`
}

type verifyPaymentReq struct {
    RegistrationID uint64 `json:"registrationId"`
    OrderID        string `json:"orderId"`
    PaymentID      string `json:"paymentId"`
    Signature      string `json:"signature"`
}

// RegisterFree registers the caller for a zero-fee event and issues the
// ticket immediately.
func (h *RegistrationHandler) RegisterFree(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req eventIDReq
    if err := c.Bind(&req); err != nil || req.EventID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    ev, err := h.Events.GetByID(ctx, req.EventID)
    if err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
    }
    if ev.RegistrationFee != 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event requires payment"})
    }

    if msg, err := h.clearWayForRetry(ctx, ev.ID, uid, nil); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    } else if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    if full, err := h.eventFull(ctx, ev); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    } else if full {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event is full"})
    }

    reg := &model.Registration{
        EventID:       ev.ID,
        UserID:        uid,
        PaymentStatus: model.StatusFree,
    }
    if err := h.Registrations.Create(ctx, reg); err != nil {
        if err == repository.ErrAlreadyRegistered {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "already registered for this event"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "register failed"})
    }

    reg, err = h.Tickets.Finalize(ctx, reg)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue ticket failed"})
    }
    return c.JSON(http.StatusCreated, reg)
}

// RegisterUPI starts the self-reported UPI flow for a paid event: it
// creates a pending registration carrying a fresh transaction reference,
// the UPI deep link and its QR rendering.
func (h *RegistrationHandler) RegisterUPI(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req eventIDReq
    if err := c.Bind(&req); err != nil || req.EventID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    ev, err := h.Events.GetByID(ctx, req.EventID)
    if err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
    }
    if ev.RegistrationFee == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event is free; use free registration"})
    }
    payee := ev.UPIID
    if payee == "" {
        payee = h.Cfg.UPIID
    }
    if payee == "" {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "UPI payments not configured"})
    }

    if msg, err := h.clearWayForRetry(ctx, ev.ID, uid, nil); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    } else if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    if full, err := h.eventFull(ctx, ev); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    } else if full {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event is full"})
    }

    ref := upi.NewTxnRef()
    link := upi.Link(upi.Params{
        PayeeID:   payee,
        PayeeName: h.Cfg.UPIName,
        Amount:    ev.RegistrationFee,
        Note:      ev.Title,
        Ref:       ref,
    })
    qr, err := utils.QRCodeDataURL(link, 256)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render payment QR failed"})
    }

    reg := &model.Registration{
        EventID:       ev.ID,
        UserID:        uid,
        PaymentStatus: model.StatusPending,
        AmountPaid:    ev.RegistrationFee,
        UPITxnRef:     &ref,
        UPIQRCode:     &qr,
    }
    if err := h.Registrations.Create(ctx, reg); err != nil {
        if err == repository.ErrAlreadyRegistered {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "already registered for this event"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "register failed"})
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "registrationId": reg.ID,
        "paymentId":      ref,
        "paymentLink":    link,
        "paymentQrImage": qr,
        "amount":         ev.RegistrationFee,
        "eventTitle":     ev.Title,
    })
}

// ConfirmUPI records the student's claim of having paid: the registration
// moves to awaiting_approval and joins the admin review queue. No ticket is
// issued here; that happens at approval.
func (h *RegistrationHandler) ConfirmUPI(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req confirmUPIReq
    if err := c.Bind(&req); err != nil || req.RegistrationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "registrationId required"})
    }
    req.TxnID = strings.TrimSpace(req.TxnID)
    if req.TxnID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "txnId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    reg, err := h.Registrations.GetByID(ctx, req.RegistrationID)
    if err != nil {
        if err == repository.ErrRegistrationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if reg.UserID != uid {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your registration"})
    }

    moved, err := h.Registrations.SubmitUPITxn(ctx, reg.ID, req.TxnID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if !moved {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "registration is not awaiting payment"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "status":  model.StatusAwaitingApproval,
        "message": "payment submitted for verification; your ticket arrives once an admin approves it",
    })
}

// CreateOrder starts the gateway checkout flow: it creates (or reuses) a
// pending registration with a gateway order attached and returns what the
// client-side checkout needs.
func (h *RegistrationHandler) CreateOrder(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if !h.Gateway.Enabled() {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "payment gateway not configured"})
    }
    var req eventIDReq
    if err := c.Bind(&req); err != nil || req.EventID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    ev, err := h.Events.GetByID(ctx, req.EventID)
    if err != nil {
        if err == repository.ErrEventNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
    }
    if ev.RegistrationFee == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event is free; use free registration"})
    }

    // A pending registration that already carries an order is a checkout
    // the student abandoned mid-way; hand the same order back instead of
    // creating a second one.
    var reuse *model.Registration
    existing, err := h.Registrations.FindByEventAndUser(ctx, ev.ID, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if existing != nil && existing.PaymentStatus == model.StatusPending && existing.RazorpayOrderID != nil {
        reuse = existing
    }
    if reuse != nil {
        return c.JSON(http.StatusOK, echo.Map{
            "registrationId": reuse.ID,
            "orderId":        *reuse.RazorpayOrderID,
            "amount":         uint64(reuse.AmountPaid) * 100,
            "currency":       "INR",
            "keyId":          h.Gateway.KeyID(),
        })
    }

    if msg, err := h.clearWayForRetry(ctx, ev.ID, uid, existing); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    } else if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    if full, err := h.eventFull(ctx, ev); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    } else if full {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event is full"})
    }

    amountPaise := int64(ev.RegistrationFee) * 100
    orderID, err := h.Gateway.CreateOrder(amountPaise, upi.NewTxnRef(), map[string]interface{}{
        "event_id": ev.ID,
        "user_id":  uid,
    })
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "create payment order failed"})
    }

    reg := &model.Registration{
        EventID:         ev.ID,
        UserID:          uid,
        PaymentStatus:   model.StatusPending,
        AmountPaid:      ev.RegistrationFee,
        RazorpayOrderID: &orderID,
    }
    if err := h.Registrations.Create(ctx, reg); err != nil {
        if err == repository.ErrAlreadyRegistered {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "already registered for this event"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "register failed"})
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "registrationId": reg.ID,
        "orderId":        orderID,
        "amount":         amountPaise,
        "currency":       "INR",
        "keyId":          h.Gateway.KeyID(),
    })
}

// VerifyPayment checks the gateway's signature over "orderId|paymentId".
// A valid signature confirms the registration and issues the ticket; an
// invalid one marks the payment failed.
func (h *RegistrationHandler) VerifyPayment(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req verifyPaymentReq
    if err := c.Bind(&req); err != nil || req.RegistrationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "registrationId required"})
    }
    if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "orderId/paymentId/signature required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    reg, err := h.Registrations.GetByID(ctx, req.RegistrationID)
    if err != nil {
        if err == repository.ErrRegistrationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if reg.UserID != uid {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your registration"})
    }
    if reg.RazorpayOrderID == nil || *reg.RazorpayOrderID != req.OrderID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "order does not match registration"})
    }

    if !payment.VerifySignature(req.OrderID, req.PaymentID, req.Signature, h.Gateway.Secret()) {
        if _, err := h.Registrations.MarkFailed(ctx, reg.ID); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment verification failed"})
    }

    moved, err := h.Registrations.MarkPaidFromGateway(ctx, reg.ID, req.PaymentID, req.Signature)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if !moved {
        // Already verified (double submit) or not in a payable state.
        current, err := h.Registrations.GetByID(ctx, reg.ID)
        if err == nil && current.PaymentStatus == model.StatusPaid {
            // Finalize is idempotent; this also repairs a paid registration
            // whose earlier ticket issuance failed mid-way.
            if current, err = h.Tickets.Finalize(ctx, current); err == nil {
                return c.JSON(http.StatusOK, current)
            }
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "registration is not awaiting payment"})
    }
    reg.PaymentStatus = model.StatusPaid

    reg, err = h.Tickets.Finalize(ctx, reg)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue ticket failed"})
    }
    return c.JSON(http.StatusOK, reg)
}

// My returns the caller's registrations with event context, newest first.
func (h *RegistrationHandler) My(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    list, err := h.Registrations.ListByUser(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if list == nil {
        list = []repository.RegistrationDetail{}
    }
    return c.JSON(http.StatusOK, list)
}

// clearWayForRetry looks at an existing registration for (event, user) and
// decides whether a fresh attempt may proceed. Confirmed registrations
// block with a message; stale ones (pending, awaiting review, failed,
// rejected) are deleted so the student can start over. The
// (event_id, user_id) unique key still backstops any race between the
// delete and the insert.
func (h *RegistrationHandler) clearWayForRetry(ctx context.Context, eventID, userID uint64, preloaded *model.Registration) (string, error) {
    existing := preloaded
    if existing == nil {
        var err error
        existing, err = h.Registrations.FindByEventAndUser(ctx, eventID, userID)
        if err != nil {
            return "", err
        }
    }
    if existing == nil {
        return "", nil
    }
    if existing.PaymentStatus.Confirmed() {
        // A confirmed row without a ticket means an earlier issuance died
        // between confirmation and attach. Repair it here so the student's
        // retry at least restores the QR on their existing registration.
        if existing.QRToken == nil {
            if _, err := h.Tickets.Finalize(ctx, existing); err != nil {
                return "", err
            }
        }
        return "already registered for this event", nil
    }
    return "", h.Registrations.Delete(ctx, existing.ID)
}

// eventFull applies the capacity check. Count-then-insert can overshoot by
// a few under a stampede; that is accepted.
func (h *RegistrationHandler) eventFull(ctx context.Context, ev *model.Event) (bool, error) {
    n, err := h.Registrations.CountByEvent(ctx, ev.ID)
    if err != nil {
        return false, err
    }
    return n >= ev.MaxParticipants, nil
}
