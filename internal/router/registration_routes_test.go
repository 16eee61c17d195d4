package router

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/config"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/handler"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/utils"
)

// The registration limiter must guard only the endpoints that create rows
// or gateway orders. A stub limiter that always refuses makes the scoping
// observable: limited routes return 429, unlimited ones reach the handler.
func TestRegistrationLimiterScopedToCreationEndpoints(t *testing.T) {
    const secret = "route-test-secret"

    exhausted := func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
        }
    }

    e := echo.New()
    h := handler.NewRegistrationHandler(config.Config{}, nil, nil, nil, nil)
    gate := handler.NewGateHandler(nil, utils.NewQRSigner(secret))
    RegisterRegistrations(e, h, gate, secret, exhausted, nil, nil)

    tok, err := utils.NewAccessToken(secret, 7, model.RoleStudent, 5)
    if err != nil {
        t.Fatalf("mint token: %v", err)
    }

    cases := []struct {
        path string
        want int
    }{
        {"/api/registrations/register-free", http.StatusTooManyRequests},
        {"/api/registrations/register-upi", http.StatusTooManyRequests},
        {"/api/registrations/create-order", http.StatusTooManyRequests},
        // These bypass the limiter; the handler's input validation rejects
        // the empty body before any storage access.
        {"/api/registrations/confirm-upi", http.StatusBadRequest},
        {"/api/registrations/verify-payment", http.StatusBadRequest},
    }
    for _, tc := range cases {
        req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader("{}"))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
        req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
        rec := httptest.NewRecorder()
        e.ServeHTTP(rec, req)
        if rec.Code != tc.want {
            t.Errorf("POST %s = %d, want %d", tc.path, rec.Code, tc.want)
        }
    }
}
