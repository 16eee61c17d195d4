package upi

import (
    "net/url"
    "strings"
    "testing"
)

func TestLinkEncodesFields(t *testing.T) {
    link := Link(Params{
        PayeeID:   "college@upi",
        PayeeName: "CampusEvents",
        Amount:    500,
        Note:      "Event: Tech Fest 2026",
        Ref:       "CE0123456789ABCDEF",
    })

    if !strings.HasPrefix(link, "upi://pay?pa=") {
        t.Fatalf("link missing upi://pay prefix: %s", link)
    }

    u, err := url.Parse(link)
    if err != nil {
        t.Fatalf("link does not parse: %v", err)
    }
    q := u.Query()
    if got := q.Get("pa"); got != "college@upi" {
        t.Errorf("pa = %q", got)
    }
    if got := q.Get("am"); got != "500" {
        t.Errorf("am = %q", got)
    }
    if got := q.Get("cu"); got != "INR" {
        t.Errorf("cu = %q", got)
    }
    if got := q.Get("tn"); got != "Event: Tech Fest 2026" {
        t.Errorf("tn = %q", got)
    }
    if got := q.Get("tr"); got != "CE0123456789ABCDEF" {
        t.Errorf("tr = %q", got)
    }
}

func TestNewTxnRef(t *testing.T) {
    seen := make(map[string]bool)
    for i := 0; i < 1000; i++ {
        ref := NewTxnRef()
        if !strings.HasPrefix(ref, "CE") {
            t.Fatalf("ref %q missing CE prefix", ref)
        }
        if len(ref) != 18 {
            t.Fatalf("ref %q has length %d, want 18", ref, len(ref))
        }
        if seen[ref] {
            t.Fatalf("duplicate ref %q", ref)
        }
        seen[ref] = true
    }
}
