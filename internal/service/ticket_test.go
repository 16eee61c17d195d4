package service

import (
    "context"
    "database/sql"
    "os"
    "testing"

    _ "github.com/go-sql-driver/mysql"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/repository"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/utils"
)

// Gated on the same CAMPUS_EVENTS_MYSQL_DSN as the repository tests.

func testDB(t *testing.T) *sql.DB {
    t.Helper()
    dsn := os.Getenv("CAMPUS_EVENTS_MYSQL_DSN")
    if dsn == "" {
        t.Skip("CAMPUS_EVENTS_MYSQL_DSN not set")
    }
    db, err := sql.Open("mysql", dsn)
    if err != nil {
        t.Fatalf("open: %v", err)
    }
    if err := db.Ping(); err != nil {
        t.Fatalf("ping: %v", err)
    }
    t.Cleanup(func() { db.Close() })
    return db
}

func seedEventAndUser(t *testing.T, db *sql.DB) (eventID, userID uint64) {
    t.Helper()
    ctx := context.Background()

    res, err := db.ExecContext(ctx,
        `INSERT INTO users (name, email, password_hash, role)
         VALUES ('Ticket Tester', CONCAT('ticket-', UUID(), '@test.local'), 'x', 'student')`)
    if err != nil {
        t.Fatalf("seed user: %v", err)
    }
    uid, _ := res.LastInsertId()

    res, err = db.ExecContext(ctx,
        `INSERT INTO events (title, description, date, venue, max_participants, registration_fee, created_by)
         VALUES ('Ticket Event', '', UTC_TIMESTAMP(), 'Main Hall', 9999, 100, ?)`, uid)
    if err != nil {
        t.Fatalf("seed event: %v", err)
    }
    eid, _ := res.LastInsertId()

    t.Cleanup(func() {
        _, _ = db.Exec("DELETE FROM registrations WHERE event_id=?", eid)
        _, _ = db.Exec("DELETE FROM events WHERE id=?", eid)
        _, _ = db.Exec("DELETE FROM users WHERE id=?", uid)
    })
    return uint64(eid), uint64(uid)
}

// A registration can reach paid with no ticket when the process dies
// between the status flip and the attach. Finalize must repair such a row,
// and a second Finalize must hand back the stored ticket unchanged.
func TestFinalizeRepairsTicketlessPaidRegistration(t *testing.T) {
    db := testDB(t)
    regs := repository.NewRegistrationRepo(db)
    eventID, userID := seedEventAndUser(t, db)

    ctx := context.Background()
    reg := &model.Registration{EventID: eventID, UserID: userID, PaymentStatus: model.StatusPending, AmountPaid: 100}
    if err := regs.Create(ctx, reg); err != nil {
        t.Fatalf("create: %v", err)
    }
    if ok, err := regs.SubmitUPITxn(ctx, reg.ID, "TXN-STUCK"); err != nil || !ok {
        t.Fatalf("submit = (%v, %v), want (true, nil)", ok, err)
    }
    // The status flips to paid but no ticket is attached: the stuck state.
    if ok, err := regs.Approve(ctx, reg.ID); err != nil || !ok {
        t.Fatalf("approve = (%v, %v), want (true, nil)", ok, err)
    }

    stuck, err := regs.GetByID(ctx, reg.ID)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    if stuck.PaymentStatus != model.StatusPaid || stuck.QRToken != nil {
        t.Fatalf("precondition: status=%s token=%v, want paid with no token", stuck.PaymentStatus, stuck.QRToken)
    }

    signer := utils.NewQRSigner("ticket-test-secret")
    issuer := &TicketIssuer{
        Signer:        signer,
        BaseURL:       "http://localhost:8080",
        Registrations: regs,
        Events:        repository.NewEventRepo(db),
        Users:         repository.NewUserRepo(db),
    }

    repaired, err := issuer.Finalize(ctx, stuck)
    if err != nil {
        t.Fatalf("finalize: %v", err)
    }
    if repaired.QRToken == nil || repaired.QRTokenTimestamp == nil || repaired.QRCode == nil {
        t.Fatal("finalize did not attach the ticket")
    }
    if !signer.Verify(*repaired.QRToken, reg.ID, eventID, userID, *repaired.QRTokenTimestamp) {
        t.Fatal("attached token does not verify against the row")
    }

    again, err := issuer.Finalize(ctx, repaired)
    if err != nil {
        t.Fatalf("second finalize: %v", err)
    }
    if again.QRToken == nil || *again.QRToken != *repaired.QRToken {
        t.Fatalf("second finalize token = %v, want the stored %s", again.QRToken, *repaired.QRToken)
    }
}
