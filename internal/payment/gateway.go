// Package payment wraps the Razorpay gateway.  Order creation talks to the
// gateway over its SDK; signature verification is pure computation and lives
// here so it can be tested without network access.
package payment

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "errors"
    "fmt"

    razorpay "github.com/razorpay/razorpay-go"
)

// ErrNotConfigured is returned when the gateway credentials are absent.
// Handlers translate it into a "payment not configured" response instead of
// a generic 500.
var ErrNotConfigured = errors.New("payment gateway not configured")

// Gateway issues orders against Razorpay.  Amounts are in paise (the
// gateway's smallest unit); callers convert from rupees.
type Gateway struct {
    client *razorpay.Client
    keyID  string
    secret string
}

// NewGateway builds a Gateway from credentials.  Either credential being
// empty yields a disabled gateway whose CreateOrder returns ErrNotConfigured.
func NewGateway(keyID, secret string) *Gateway {
    g := &Gateway{keyID: keyID, secret: secret}
    if keyID != "" && secret != "" {
        g.client = razorpay.NewClient(keyID, secret)
    }
    return g
}

// Enabled reports whether credentials were provided.
func (g *Gateway) Enabled() bool { return g.client != nil }

// KeyID exposes the public key id clients need to open the checkout widget.
func (g *Gateway) KeyID() string { return g.keyID }

// Secret returns the signing secret used for signature verification.
func (g *Gateway) Secret() string { return g.secret }

// CreateOrder requests a new order for amountPaise and returns the gateway
// order id.  notes travel with the order for later reconciliation.
func (g *Gateway) CreateOrder(amountPaise int64, receipt string, notes map[string]interface{}) (string, error) {
    if g.client == nil {
        return "", ErrNotConfigured
    }
    data := map[string]interface{}{
        "amount":   amountPaise,
        "currency": "INR",
        "receipt":  receipt,
        "notes":    notes,
    }
    order, err := g.client.Order.Create(data, nil)
    if err != nil {
        return "", fmt.Errorf("create order: %w", err)
    }
    id, ok := order["id"].(string)
    if !ok || id == "" {
        return "", fmt.Errorf("create order: gateway response missing id")
    }
    return id, nil
}

// VerifySignature recomputes the expected checkout signature
// (HMAC-SHA256 over "orderID|paymentID" under the key secret) and compares
// it to the client-submitted one in constant time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(orderID + "|" + paymentID))
    expected := hex.EncodeToString(mac.Sum(nil))
    return hmac.Equal([]byte(expected), []byte(signature))
}
