package service

import (
    "context"
    "log"
    "time"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/queue"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/repository"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/utils"
)

// TicketIssuer turns a confirmed registration into an admission ticket:
// it mints the signed token, renders the gate-check URL as a QR image,
// stores both on the registration, and hands the result to the
// notification queue. Every confirmation path (free registration, gateway
// verification, admin approval) funnels through Finalize so issuance rules
// live in one place.
type TicketIssuer struct {
    Signer        *utils.QRSigner
    BaseURL       string
    Registrations *repository.RegistrationRepo
    Events        *repository.EventRepo
    Users         *repository.UserRepo
}

// Finalize issues the ticket for a confirmed registration. It is
// idempotent: when the registration already carries a token (a retried
// confirmation, or two admins approving concurrently) the stored ticket is
// left untouched and no duplicate notification is published.
//
// The returned registration has QRToken/QRCode populated either way.
func (t *TicketIssuer) Finalize(ctx context.Context, reg *model.Registration) (*model.Registration, error) {
    token, timestamp := t.Signer.Issue(reg.ID, reg.EventID, reg.UserID)
    gateURL := t.BaseURL + "/api/registrations/gate-check/" + token
    qr, err := utils.QRCodeDataURL(gateURL, 256)
    if err != nil {
        return nil, err
    }

    attached, err := t.Registrations.AttachTicket(ctx, reg.ID, token, timestamp, qr)
    if err != nil {
        return nil, err
    }
    if !attached {
        // A ticket already exists; return it as stored.
        return t.Registrations.GetByID(ctx, reg.ID)
    }
    reg.QRToken = &token
    reg.QRTokenTimestamp = &timestamp
    reg.QRCode = &qr

    ev := t.notificationEvent(ctx, reg, qr)
    // Fire and forget: the HTTP response must not wait on the broker.
    go func() {
        pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        _ = PublishTicketIssued(pubCtx, ev)
    }()

    return reg, nil
}

// notificationEvent assembles the queue payload, falling back to the
// registration's snapshot when the event has been deleted in the meantime.
func (t *TicketIssuer) notificationEvent(ctx context.Context, reg *model.Registration, qr string) queue.TicketIssuedEvent {
    out := queue.TicketIssuedEvent{
        RegistrationID: reg.ID,
        EventID:        reg.EventID,
        UserID:         reg.UserID,
        PaymentStatus:  reg.PaymentStatus.String(),
        AmountPaid:     reg.AmountPaid,
        QRCode:         qr,
        IssuedAt:       time.Now().UTC().Format(time.RFC3339),
    }

    if ev, err := t.Events.GetByID(ctx, reg.EventID); err == nil {
        out.EventTitle = ev.Title
        out.EventDate = ev.Date.Format(time.RFC3339)
        out.EventVenue = ev.Venue
    } else if reg.SnapshotTitle != nil {
        out.EventTitle = *reg.SnapshotTitle
        if reg.SnapshotDate != nil {
            out.EventDate = reg.SnapshotDate.Format(time.RFC3339)
        }
        if reg.SnapshotVenue != nil {
            out.EventVenue = *reg.SnapshotVenue
        }
    }

    u, err := t.Users.GetByID(ctx, reg.UserID)
    if err != nil {
        log.Printf("ticket: load user %d for notification failed: %v", reg.UserID, err)
        return out
    }
    out.StudentName = u.Name
    out.StudentEmail = u.Email
    return out
}
