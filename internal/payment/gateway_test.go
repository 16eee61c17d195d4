package payment

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "testing"
)

func signFor(orderID, paymentID, secret string) string {
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(orderID + "|" + paymentID))
    return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
    const secret = "test_key_secret"
    sig := signFor("order_ABC123", "pay_XYZ789", secret)

    if !VerifySignature("order_ABC123", "pay_XYZ789", sig, secret) {
        t.Fatal("valid signature rejected")
    }
    if VerifySignature("order_ABC123", "pay_XYZ789", sig, "other_secret") {
        t.Fatal("signature accepted under wrong secret")
    }
    if VerifySignature("order_ABC124", "pay_XYZ789", sig, secret) {
        t.Fatal("signature accepted for wrong order id")
    }
    if VerifySignature("order_ABC123", "pay_XYZ788", sig, secret) {
        t.Fatal("signature accepted for wrong payment id")
    }
    if VerifySignature("order_ABC123", "pay_XYZ789", sig[:len(sig)-1]+"0", secret) {
        t.Fatal("truncated/mutated signature accepted")
    }
    if VerifySignature("order_ABC123", "pay_XYZ789", "", secret) {
        t.Fatal("empty signature accepted")
    }
}

func TestDisabledGateway(t *testing.T) {
    g := NewGateway("", "")
    if g.Enabled() {
        t.Fatal("gateway without credentials should be disabled")
    }
    if _, err := g.CreateOrder(50000, "reg_test", nil); err != ErrNotConfigured {
        t.Fatalf("CreateOrder error = %v, want ErrNotConfigured", err)
    }
}
