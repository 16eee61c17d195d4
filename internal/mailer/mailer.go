// Package mailer sends ticket emails over plain SMTP. Delivery is best
// effort: when SMTP credentials are not configured Send becomes a logged
// no-op, so the rest of the pipeline never blocks on mail.
package mailer

import (
    "fmt"
    "log"
    "net/smtp"
    "os"
    "strings"
)

// Mailer holds SMTP connection settings read from the environment.
type Mailer struct {
    host string
    port string
    from string
    pass string
}

// FromEnv builds a Mailer from SMTP_HOST/SMTP_PORT/SMTP_EMAIL/SMTP_PASSWORD.
// Host and port default to Gmail's submission endpoint, matching the most
// common campus deployment.
func FromEnv() *Mailer {
    return &Mailer{
        host: getenv("SMTP_HOST", "smtp.gmail.com"),
        port: getenv("SMTP_PORT", "587"),
        from: os.Getenv("SMTP_EMAIL"),
        pass: os.Getenv("SMTP_PASSWORD"),
    }
}

// Enabled reports whether credentials are present.
func (m *Mailer) Enabled() bool { return m.from != "" && m.pass != "" }

// SendTicket emails the admission ticket, embedding the QR image inline.
// qrDataURL must be a "data:image/png;base64,..." string as produced at
// ticket issue time.
func (m *Mailer) SendTicket(to, studentName, eventTitle, eventDate, eventVenue, qrDataURL string) error {
    if !m.Enabled() {
        log.Printf("mailer: SMTP not configured; skipping ticket mail to %s", to)
        return nil
    }

    b64 := qrDataURL
    if i := strings.Index(b64, ","); i >= 0 {
        b64 = b64[i+1:]
    }

    var msg strings.Builder
    boundary := "ticket-boundary-42"
    fmt.Fprintf(&msg, "From: %s\r\n", m.from)
    fmt.Fprintf(&msg, "To: %s\r\n", to)
    fmt.Fprintf(&msg, "Subject: Your ticket for %s\r\n", eventTitle)
    msg.WriteString("MIME-Version: 1.0\r\n")
    fmt.Fprintf(&msg, "Content-Type: multipart/related; boundary=%q\r\n\r\n", boundary)

    fmt.Fprintf(&msg, "--%s\r\n", boundary)
    msg.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
    fmt.Fprintf(&msg, `<p>Hi %s,</p>
<p>Your registration for <b>%s</b> is confirmed.</p>
<p>Date: %s<br>Venue: %s</p>
<p>Show this QR code at the gate:</p>
<img src="cid:ticket-qr" alt="admission QR" width="256" height="256">
`, studentName, eventTitle, eventDate, eventVenue)
    msg.WriteString("\r\n")

    fmt.Fprintf(&msg, "--%s\r\n", boundary)
    msg.WriteString("Content-Type: image/png\r\n")
    msg.WriteString("Content-Transfer-Encoding: base64\r\n")
    msg.WriteString("Content-ID: <ticket-qr>\r\n\r\n")
    msg.WriteString(b64)
    msg.WriteString("\r\n")
    fmt.Fprintf(&msg, "--%s--\r\n", boundary)

    auth := smtp.PlainAuth("", m.from, m.pass, m.host)
    return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg.String()))
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
