package utils

import (
    "strings"
    "testing"
)

func TestQRTokenRoundTrip(t *testing.T) {
    s := NewQRSigner("test_secret")
    token, ts := s.Issue(42, 7, 1001)

    if len(token) != 64 {
        t.Fatalf("token length = %d, want 64 hex chars", len(token))
    }
    if !s.Verify(token, 42, 7, 1001, ts) {
        t.Fatal("round-trip verification failed with original inputs")
    }
}

func TestQRTokenRejectsMutation(t *testing.T) {
    s := NewQRSigner("test_secret")
    token, ts := s.Issue(42, 7, 1001)

    // Flipping any single character must invalidate the token.
    for i := 0; i < len(token); i++ {
        mutated := []byte(token)
        if mutated[i] == 'a' {
            mutated[i] = 'b'
        } else {
            mutated[i] = 'a'
        }
        if s.Verify(string(mutated), 42, 7, 1001, ts) {
            t.Fatalf("mutated token at index %d still verified", i)
        }
    }
}

func TestQRTokenRejectsWrongBinding(t *testing.T) {
    s := NewQRSigner("test_secret")
    token, ts := s.Issue(42, 7, 1001)

    cases := []struct {
        name           string
        reg, ev, user  uint64
        ts             string
    }{
        {"wrong registration", 43, 7, 1001, ts},
        {"wrong event", 42, 8, 1001, ts},
        {"wrong user", 42, 7, 1002, ts},
        {"wrong timestamp", 42, 7, 1001, "0"},
    }
    for _, c := range cases {
        if s.Verify(token, c.reg, c.ev, c.user, c.ts) {
            t.Errorf("%s: verification should fail", c.name)
        }
    }
}

func TestQRTokenSecretMatters(t *testing.T) {
    a := NewQRSigner("secret_a")
    b := NewQRSigner("secret_b")
    token, ts := a.Issue(1, 2, 3)
    if b.Verify(token, 1, 2, 3, ts) {
        t.Fatal("token minted under one secret verified under another")
    }
}

func TestQRTokenDistinctPerIssue(t *testing.T) {
    s := NewQRSigner("test_secret")
    t1, _ := s.Issue(1, 2, 3)
    t2, _ := s.Issue(4, 5, 6)
    if t1 == t2 {
        t.Fatal("tokens for different registrations collided")
    }
    if strings.ContainsAny(t1, "ABCDEF") {
        t.Fatal("token should be lowercase hex")
    }
}
