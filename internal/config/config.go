package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// insecureQRSecret is the fallback MAC key used when QR_SECRET is not set.
// Tokens minted with it are trivially forgeable, so startup logs a loud
// warning, but the service keeps running: a misconfigured deployment should
// degrade, not crash.
const insecureQRSecret = "default_qr_secret_change_me"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    BaseURL        string // public base URL embedded in gate-check QR links
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time‑to‑live in minutes
    RefreshTTLDays int    // refresh token time‑to‑live in days
    BcryptCost     int    // bcrypt cost for password hashing

    QRSecret string // keyed-MAC secret for admission tokens (insecure fallback when unset)

    UPIID   string // fallback UPI collection address when an event has none
    UPIName string // payee display name shown in UPI payment apps

    RazorpayKeyID     string // payment gateway key id (empty disables the gateway flow)
    RazorpayKeySecret string // payment gateway signing secret
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Payment and QR
// settings are optional: the UPI and gateway flows report "not configured"
// at request time instead of refusing to boot.
func Load() Config {
    cfg := Config{
        Env:            must("APP_ENV"),             // environment (dev/test/prod)
        Port:           must("APP_PORT"),            // port to bind the HTTP server
        BaseURL:        getenvDefault("APP_BASE_URL", "http://localhost:8080"),
        DBUser:         must("DB_USER"),             // database user
        DBPass:         os.Getenv("DB_PASS"),        // database password (empty allowed)
        DBHost:         must("DB_HOST"),             // database host
        DBPort:         must("DB_PORT"),             // database port
        DBName:         must("DB_NAME"),             // database name
        JWTSecret:      must("JWT_SECRET"),          // secret used for signing JWTs
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
        BcryptCost:     mustInt("BCRYPT_COST"),      // bcrypt cost factor

        QRSecret: os.Getenv("QR_SECRET"),

        UPIID:   os.Getenv("UPI_ID"),
        UPIName: getenvDefault("UPI_NAME", "CampusEvents"),

        RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
        RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
    }
    if cfg.QRSecret == "" {
        log.Printf("[warn] QR_SECRET not set; admission tokens are signed with an INSECURE default key")
        cfg.QRSecret = insecureQRSecret
    }
    return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

func getenvDefault(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
