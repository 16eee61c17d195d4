package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/repository"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/utils"
)

// Gate outcome codes shown on the public gate-check page.
const (
    GateNotFound         = "NOT_FOUND"
    GatePaymentPending   = "PAYMENT_PENDING"
    GatePaymentRejected  = "PAYMENT_REJECTED"
    GateAlreadyEntered   = "ALREADY_ENTERED"
    GateEntryConfirmed   = "ENTRY_CONFIRMED"
)

// Scanner outcome codes returned to the admin scanner app. The scanner
// vocabulary is coarser on purpose: volunteers only need pass/fail and a
// reason class, not the payment detail the gate page shows.
const (
    ScanNotFound       = "NOT_FOUND"
    ScanPaymentIssue   = "PAYMENT_ISSUE"
    ScanAlreadyEntered = "ALREADY_ENTERED"
    ScanSuccess        = "SUCCESS"
)

// GateHandler serves the two admission paths: the public link baked into
// every ticket QR, and the authenticated scanner endpoint.
type GateHandler struct {
    Registrations *repository.RegistrationRepo
    Signer        *utils.QRSigner
}

func NewGateHandler(r *repository.RegistrationRepo, s *utils.QRSigner) *GateHandler {
    return &GateHandler{Registrations: r, Signer: s}
}

// gateOutcome classifies a ticket before any entry attempt. canEnter is
// true only when the registration is confirmed and unused; the caller then
// races the atomic attendance flip and may still lose to a concurrent scan.
func gateOutcome(status model.PaymentStatus, attended bool) (code string, canEnter bool) {
    switch {
    case status == model.StatusPending || status == model.StatusAwaitingApproval:
        return GatePaymentPending, false
    case status == model.StatusFailed || status == model.StatusPaymentRejected:
        return GatePaymentRejected, false
    case attended:
        return GateAlreadyEntered, false
    default:
        return GateEntryConfirmed, true
    }
}

// scanOutcome is the scanner's coarser view of the same classification.
func scanOutcome(status model.PaymentStatus, attended bool) (code string, canEnter bool) {
    switch {
    case !status.Confirmed():
        return ScanPaymentIssue, false
    case attended:
        return ScanAlreadyEntered, false
    default:
        return ScanSuccess, true
    }
}

type gateReq struct {
    Token string `json:"token"`
}

// outcomeMessages are the human strings kiosk UIs display next to the code.
var outcomeMessages = map[string]string{
    GateNotFound:        "ticket not recognised",
    GatePaymentPending:  "payment not completed; entry denied",
    GatePaymentRejected: "payment was rejected; entry denied",
    GateAlreadyEntered:  "ticket already used for entry",
    GateEntryConfirmed:  "entry confirmed, welcome",
    ScanPaymentIssue:    "payment issue; do not admit",
    ScanSuccess:         "admitted",
}

func outcomePayload(code string, rec *repository.AdmissionRecord) echo.Map {
    out := echo.Map{
        "code":    code,
        "message": outcomeMessages[code],
    }
    if rec != nil {
        out["registration"] = rec
    }
    return out
}

// outcomeStatus maps an outcome code to its HTTP status. Kiosk and scanner
// clients branch on the status line first, so only a confirmed entry is 200.
func outcomeStatus(code string) int {
    switch code {
    case GateEntryConfirmed, ScanSuccess:
        return http.StatusOK
    case GateNotFound:
        return http.StatusNotFound
    default:
        return http.StatusBadRequest
    }
}

// GateCheck handles the public URL a ticket QR encodes. The token in the
// path is both locator and credential: an exact match against a stored
// token plus a valid MAC over the row it points at.
func (h *GateHandler) GateCheck(c echo.Context) error {
    token := strings.TrimSpace(c.Param("token"))
    if token == "" {
        return c.JSON(http.StatusNotFound, outcomePayload(GateNotFound, nil))
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rec, err := h.lookup(ctx, token)
    if err != nil {
        if err == repository.ErrRegistrationNotFound {
            return c.JSON(http.StatusNotFound, outcomePayload(GateNotFound, nil))
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    code, canEnter := gateOutcome(rec.PaymentStatus, rec.Attended)
    if canEnter {
        code, err = h.admit(ctx, rec, GateEntryConfirmed, GateAlreadyEntered)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
        }
    }
    return c.JSON(outcomeStatus(code), outcomePayload(code, rec))
}

// Scan handles the admin scanner app. Same admission semantics as
// GateCheck, different outcome vocabulary.
func (h *GateHandler) Scan(c echo.Context) error {
    var req gateReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Token) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rec, err := h.lookup(ctx, strings.TrimSpace(req.Token))
    if err != nil {
        if err == repository.ErrRegistrationNotFound {
            return c.JSON(http.StatusNotFound, outcomePayload(ScanNotFound, nil))
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    code, canEnter := scanOutcome(rec.PaymentStatus, rec.Attended)
    if canEnter {
        code, err = h.admit(ctx, rec, ScanSuccess, ScanAlreadyEntered)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
        }
    }
    return c.JSON(outcomeStatus(code), outcomePayload(code, rec))
}

// lookup resolves a token to its admission record and re-verifies the MAC
// against the row's identifiers. A token that matches a row but fails the
// MAC (a tampered database, or a secret rotation) is treated as unknown.
func (h *GateHandler) lookup(ctx context.Context, token string) (*repository.AdmissionRecord, error) {
    rec, err := h.Registrations.FindAdmissionByToken(ctx, token)
    if err != nil {
        return nil, err
    }
    if !h.Signer.Verify(token, rec.RegistrationID, rec.EventID, rec.UserID, rec.TokenTimestamp) {
        return nil, repository.ErrRegistrationNotFound
    }
    return rec, nil
}

// admit races the atomic attendance flip. The loser of a concurrent double
// scan reports the already-entered code with the winner's entry time.
func (h *GateHandler) admit(ctx context.Context, rec *repository.AdmissionRecord, wonCode, lostCode string) (string, error) {
    won, err := h.Registrations.MarkAttended(ctx, rec.RegistrationID)
    if err != nil {
        return "", err
    }
    if at, err := h.Registrations.GetAttendedAt(ctx, rec.RegistrationID); err == nil {
        rec.AttendedAt = at
    }
    rec.Attended = true
    if won {
        return wonCode, nil
    }
    return lostCode, nil
}
