package model

import "time"

// Registration is a student's claim on a seat at an event.  It moves through
// the PaymentStatus state machine and, once confirmed, carries the one-time
// admission token and its rendered QR image.
//
// Nullable columns are pointers: gateway fields only exist on the gateway
// flow, UPI fields only on the self-reported flow, the qr_* fields only once
// confirmed, and the snapshot_* fields only after the parent event has been
// deleted (they preserve history for orphaned registrations).
type Registration struct {
    ID            uint64        `json:"id"`
    EventID       uint64        `json:"eventId"`
    UserID        uint64        `json:"userId"`
    PaymentStatus PaymentStatus `json:"paymentStatus"`
    AmountPaid    uint32        `json:"amountPaid"`

    RazorpayOrderID   *string `json:"razorpayOrderId,omitempty"`
    RazorpayPaymentID *string `json:"razorpayPaymentId,omitempty"`
    RazorpaySignature *string `json:"-"`

    UPITxnRef *string `json:"upiTxnRef,omitempty"`
    UPITxnID  *string `json:"upiTxnId,omitempty"`
    UPIQRCode *string `json:"upiQrCode,omitempty"`

    QRToken          *string `json:"qrToken,omitempty"`
    QRTokenTimestamp *string `json:"qrTokenTimestamp,omitempty"`
    QRCode           *string `json:"qrCode,omitempty"`

    Attended   bool       `json:"attended"`
    AttendedAt *time.Time `json:"attendedAt,omitempty"`

    SnapshotTitle *string    `json:"snapshotTitle,omitempty"`
    SnapshotDate  *time.Time `json:"snapshotDate,omitempty"`
    SnapshotVenue *string    `json:"snapshotVenue,omitempty"`

    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}
