package model

import "testing"

func TestPaymentStatusValid(t *testing.T) {
    valid := []PaymentStatus{
        StatusFree, StatusPending, StatusAwaitingApproval,
        StatusPaid, StatusFailed, StatusPaymentRejected,
    }
    for _, s := range valid {
        if !s.Valid() {
            t.Errorf("%q should be valid", s)
        }
    }
    for _, s := range []PaymentStatus{"", "PAID", "refunded", "cancelled"} {
        if s.Valid() {
            t.Errorf("%q should be invalid", s)
        }
    }
}

func TestPaymentStatusConfirmed(t *testing.T) {
    cases := map[PaymentStatus]bool{
        StatusFree:             true,
        StatusPaid:             true,
        StatusPending:          false,
        StatusAwaitingApproval: false,
        StatusFailed:           false,
        StatusPaymentRejected:  false,
    }
    for s, want := range cases {
        if got := s.Confirmed(); got != want {
            t.Errorf("%q.Confirmed() = %v, want %v", s, got, want)
        }
    }
}

// A registration is either confirmed or discardable, never both and never
// neither: confirmed records block re-registration, stale records are
// deleted and recreated on the next attempt.
func TestPaymentStatusStaleDisjointFromConfirmed(t *testing.T) {
    all := []PaymentStatus{
        StatusFree, StatusPending, StatusAwaitingApproval,
        StatusPaid, StatusFailed, StatusPaymentRejected,
    }
    for _, s := range all {
        if s.Confirmed() == s.Stale() {
            t.Errorf("%q: Confirmed()=%v and Stale()=%v must differ", s, s.Confirmed(), s.Stale())
        }
    }
}
