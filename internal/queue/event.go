// Package queue contains the ticket notification event type and the
// background consumer that processes it.
package queue

// TicketIssuedEvent is published after a registration is confirmed and its
// admission QR has been generated. Consumers send the ticket email and
// append an audit line; the registration itself is already durable, so a
// lost event costs a notification, never a ticket.
type TicketIssuedEvent struct {
    RegistrationID uint64 `json:"registration_id"`
    EventID        uint64 `json:"event_id"`
    UserID         uint64 `json:"user_id"`
    EventTitle     string `json:"event_title"`
    EventDate      string `json:"event_date"`
    EventVenue     string `json:"event_venue"`
    StudentName    string `json:"student_name"`
    StudentEmail   string `json:"student_email"`
    PaymentStatus  string `json:"payment_status"`
    AmountPaid     uint32 `json:"amount_paid"`
    QRCode         string `json:"qr_code"` // data URL PNG embedded in the email
    IssuedAt       string `json:"issued_at"`
}
