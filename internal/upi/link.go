// Package upi builds UPI deep links for the self-reported payment flow.  A
// link is rendered as a QR code the student scans with any UPI app; the
// transaction reference (tr) comes back in their payment confirmation and is
// what the admin matches during manual review.
package upi

import (
    "fmt"
    "net/url"
    "strings"

    "github.com/google/uuid"
)

// Params describes one payment request.
type Params struct {
    PayeeID   string // UPI address money is collected on (pa)
    PayeeName string // display name shown in the payment app (pn)
    Amount    uint32 // amount in rupees (am)
    Note      string // transaction note shown to the payer (tn)
    Ref       string // unique transaction reference (tr)
}

// NewTxnRef returns a unique, human-meaningless transaction reference.
// "CE" prefix plus 16 hex chars derived from a v4 UUID keeps it short enough
// for UPI apps that truncate the tr field.
func NewTxnRef() string {
    raw := strings.ReplaceAll(uuid.NewString(), "-", "")
    return "CE" + strings.ToUpper(raw[:16])
}

// Link assembles the upi://pay deep link.  Parameter order follows the
// convention payment apps expect (pa first); values are query-escaped.
func Link(p Params) string {
    return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&cu=INR&tn=%s&tr=%s",
        url.QueryEscape(p.PayeeID),
        url.QueryEscape(p.PayeeName),
        p.Amount,
        url.QueryEscape(p.Note),
        url.QueryEscape(p.Ref),
    )
}
