package utils

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "fmt"
    "strconv"
    "time"
)

// QRSigner mints and checks admission tokens.  A token is the hex-encoded
// HMAC-SHA256 of "registrationID:eventID:userID:timestamp" under a
// process-wide secret, so it is tamper-evident without being decryptable.
//
// The signer is the secondary integrity check for gate admission: the
// primary authorization path is a direct equality lookup of the stored
// qr_token column.  Verify exists so a scanner can cross-check a token
// against the identifiers it claims to bind.
//
// The secret is injected (not read from the environment here) so tests can
// construct signers with known keys.
type QRSigner struct {
    secret []byte
}

// NewQRSigner returns a signer keyed with the given secret.
func NewQRSigner(secret string) *QRSigner {
    return &QRSigner{secret: []byte(secret)}
}

// Issue generates the admission token for a registration.  The timestamp
// (Unix milliseconds, stringified) is part of the signed payload and must be
// stored alongside the token for later verification.
func (s *QRSigner) Issue(registrationID, eventID, userID uint64) (token, timestamp string) {
    timestamp = strconv.FormatInt(time.Now().UTC().UnixMilli(), 10)
    return s.sign(registrationID, eventID, userID, timestamp), timestamp
}

// Verify recomputes the MAC for the given inputs and compares it to token in
// constant time.  A timing-dependent comparison would let an attacker
// probing the gate endpoint learn how much of a forged token prefix matches.
func (s *QRSigner) Verify(token string, registrationID, eventID, userID uint64, timestamp string) bool {
    expected := s.sign(registrationID, eventID, userID, timestamp)
    return hmac.Equal([]byte(token), []byte(expected))
}

func (s *QRSigner) sign(registrationID, eventID, userID uint64, timestamp string) string {
    payload := fmt.Sprintf("%d:%d:%d:%s", registrationID, eventID, userID, timestamp)
    mac := hmac.New(sha256.New, s.secret)
    mac.Write([]byte(payload))
    return hex.EncodeToString(mac.Sum(nil))
}
