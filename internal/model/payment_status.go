package model

// PaymentStatus is the closed set of states a registration's payment can be
// in.  Every transition site switches over the full set so that adding a
// state forces a compile-visible review of each switch instead of silently
// falling through a string comparison.
type PaymentStatus string

const (
    // StatusFree marks a registration for a zero-fee event.  Terminal:
    // confirmed at creation, no payment ever happens.
    StatusFree PaymentStatus = "free"
    // StatusPending means a payment flow (UPI or gateway) was initiated but
    // nothing has been confirmed yet.
    StatusPending PaymentStatus = "pending"
    // StatusAwaitingApproval means the student self-reported a UPI
    // transaction ID and an admin has not reviewed it yet.
    StatusAwaitingApproval PaymentStatus = "awaiting_approval"
    // StatusPaid is the confirmed terminal state for paid events.
    StatusPaid PaymentStatus = "paid"
    // StatusFailed means gateway signature verification failed.  The row is
    // discarded on the next registration attempt.
    StatusFailed PaymentStatus = "failed"
    // StatusPaymentRejected means an admin rejected a self-reported
    // transaction.  Like failed, the student may re-register from scratch.
    StatusPaymentRejected PaymentStatus = "payment_rejected"
)

// Valid reports whether s is one of the six known states.
func (s PaymentStatus) Valid() bool {
    switch s {
    case StatusFree, StatusPending, StatusAwaitingApproval, StatusPaid, StatusFailed, StatusPaymentRejected:
        return true
    }
    return false
}

// Confirmed reports whether the registration holds a seat that admits entry.
// Exactly these states carry a QR token.
func (s PaymentStatus) Confirmed() bool {
    return s == StatusFree || s == StatusPaid
}

// Stale reports whether an existing registration in this state may be
// discarded so the student can start a fresh attempt.  Confirmed states are
// never stale.
func (s PaymentStatus) Stale() bool {
    switch s {
    case StatusPending, StatusAwaitingApproval, StatusFailed, StatusPaymentRejected:
        return true
    case StatusFree, StatusPaid:
        return false
    }
    return false
}

func (s PaymentStatus) String() string { return string(s) }
