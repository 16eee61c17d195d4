package handler

import (
    "net/http"
    "testing"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
)

func TestGateOutcome(t *testing.T) {
    cases := []struct {
        status   model.PaymentStatus
        attended bool
        want     string
        canEnter bool
    }{
        {model.StatusFree, false, GateEntryConfirmed, true},
        {model.StatusPaid, false, GateEntryConfirmed, true},
        {model.StatusFree, true, GateAlreadyEntered, false},
        {model.StatusPaid, true, GateAlreadyEntered, false},
        {model.StatusPending, false, GatePaymentPending, false},
        {model.StatusAwaitingApproval, false, GatePaymentPending, false},
        {model.StatusFailed, false, GatePaymentRejected, false},
        {model.StatusPaymentRejected, false, GatePaymentRejected, false},
        // Payment state outranks attendance for blocked tickets.
        {model.StatusPending, true, GatePaymentPending, false},
        {model.StatusPaymentRejected, true, GatePaymentRejected, false},
    }
    for _, tc := range cases {
        code, canEnter := gateOutcome(tc.status, tc.attended)
        if code != tc.want || canEnter != tc.canEnter {
            t.Errorf("gateOutcome(%s, attended=%v) = (%s, %v), want (%s, %v)",
                tc.status, tc.attended, code, canEnter, tc.want, tc.canEnter)
        }
    }
}

func TestScanOutcome(t *testing.T) {
    cases := []struct {
        status   model.PaymentStatus
        attended bool
        want     string
        canEnter bool
    }{
        {model.StatusFree, false, ScanSuccess, true},
        {model.StatusPaid, false, ScanSuccess, true},
        {model.StatusFree, true, ScanAlreadyEntered, false},
        {model.StatusPending, false, ScanPaymentIssue, false},
        {model.StatusAwaitingApproval, false, ScanPaymentIssue, false},
        {model.StatusFailed, false, ScanPaymentIssue, false},
        {model.StatusPaymentRejected, false, ScanPaymentIssue, false},
        {model.StatusPending, true, ScanPaymentIssue, false},
    }
    for _, tc := range cases {
        code, canEnter := scanOutcome(tc.status, tc.attended)
        if code != tc.want || canEnter != tc.canEnter {
            t.Errorf("scanOutcome(%s, attended=%v) = (%s, %v), want (%s, %v)",
                tc.status, tc.attended, code, canEnter, tc.want, tc.canEnter)
        }
    }
}

func TestOutcomeStatus(t *testing.T) {
    cases := []struct {
        code string
        want int
    }{
        {GateEntryConfirmed, http.StatusOK},
        {ScanSuccess, http.StatusOK},
        {GateNotFound, http.StatusNotFound},
        {GatePaymentPending, http.StatusBadRequest},
        {GatePaymentRejected, http.StatusBadRequest},
        {GateAlreadyEntered, http.StatusBadRequest},
        {ScanPaymentIssue, http.StatusBadRequest},
    }
    for _, tc := range cases {
        if got := outcomeStatus(tc.code); got != tc.want {
            t.Errorf("outcomeStatus(%s) = %d, want %d", tc.code, got, tc.want)
        }
    }
}
