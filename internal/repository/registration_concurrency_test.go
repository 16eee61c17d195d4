package repository

import (
    "context"
    "database/sql"
    "os"
    "sync"
    "testing"
    "time"

    _ "github.com/go-sql-driver/mysql"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
)

// These tests exercise the two race arbiters against a real MySQL instance:
// the (event_id, user_id) unique key and the conditional attendance flip.
// Set CAMPUS_EVENTS_MYSQL_DSN to run them, e.g.
//
//	CAMPUS_EVENTS_MYSQL_DSN="root@tcp(localhost:3306)/campus_events_test?parseTime=true&loc=UTC"

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
         VALUES ('Race Tester', CONCAT('race-', UUID(), '@test.local'), 'x', 'student')`)
    if err != nil {
        t.Fatalf("seed user: %v", err)
    }
    uid, _ := res.LastInsertId()

    res, err = db.ExecContext(ctx,
        `INSERT INTO events (title, description, date, venue, max_participants, registration_fee, created_by)
         VALUES ('Race Event', '', UTC_TIMESTAMP(), 'Main Hall', 9999, 0, ?)`, uid)
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

func TestConcurrentCreateOneWinner(t *testing.T) {
    db := testDB(t)
    repo := NewRegistrationRepo(db)
    eventID, userID := seedEventAndUser(t, db)

    const workers = 20
    var wg sync.WaitGroup
    results := make(chan error, workers)

    for i := 0; i < workers; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
            defer cancel()
            reg := &model.Registration{EventID: eventID, UserID: userID, PaymentStatus: model.StatusFree}
            results <- repo.Create(ctx, reg)
        }()
    }
    wg.Wait()
    close(results)

    var wins, duplicates int
    for err := range results {
        switch err {
        case nil:
            wins++
        case ErrAlreadyRegistered:
            duplicates++
        default:
            t.Fatalf("unexpected error: %v", err)
        }
    }
    if wins != 1 {
        t.Fatalf("winners = %d, want exactly 1 (duplicates=%d)", wins, duplicates)
    }
    if duplicates != workers-1 {
        t.Fatalf("duplicates = %d, want %d", duplicates, workers-1)
    }
}

func TestConcurrentMarkAttendedSingleUse(t *testing.T) {
    db := testDB(t)
    repo := NewRegistrationRepo(db)
    eventID, userID := seedEventAndUser(t, db)

    ctx := context.Background()
    reg := &model.Registration{EventID: eventID, UserID: userID, PaymentStatus: model.StatusFree}
    if err := repo.Create(ctx, reg); err != nil {
        t.Fatalf("create: %v", err)
    }

    const scanners = 20
    var wg sync.WaitGroup
    results := make(chan bool, scanners)

    for i := 0; i < scanners; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
            defer cancel()
            ok, err := repo.MarkAttended(sctx, reg.ID)
            if err != nil {
                t.Errorf("mark attended: %v", err)
                results <- false
                return
            }
            results <- ok
        }()
    }
    wg.Wait()
    close(results)

    var entries int
    for ok := range results {
        if ok {
            entries++
        }
    }
    if entries != 1 {
        t.Fatalf("successful entries = %d, want exactly 1", entries)
    }

    at, err := repo.GetAttendedAt(ctx, reg.ID)
    if err != nil {
        t.Fatalf("get attended_at: %v", err)
    }
    if at == nil {
        t.Fatal("attended_at not recorded")
    }
}

func TestPaymentTransitionsGuarded(t *testing.T) {
    db := testDB(t)
    repo := NewRegistrationRepo(db)
    eventID, userID := seedEventAndUser(t, db)

    ctx := context.Background()
    reg := &model.Registration{EventID: eventID, UserID: userID, PaymentStatus: model.StatusPending, AmountPaid: 100}
    if err := repo.Create(ctx, reg); err != nil {
        t.Fatalf("create: %v", err)
    }

    // Approve before review must not fire.
    if ok, err := repo.Approve(ctx, reg.ID); err != nil || ok {
        t.Fatalf("Approve on pending = (%v, %v), want (false, nil)", ok, err)
    }

    if ok, err := repo.SubmitUPITxn(ctx, reg.ID, "UPI123456"); err != nil || !ok {
        t.Fatalf("SubmitUPITxn = (%v, %v), want (true, nil)", ok, err)
    }
    // Second submission finds no pending row.
    if ok, err := repo.SubmitUPITxn(ctx, reg.ID, "UPI999999"); err != nil || ok {
        t.Fatalf("second SubmitUPITxn = (%v, %v), want (false, nil)", ok, err)
    }
    // The gateway path cannot touch a registration under review.
    if ok, err := repo.MarkPaidFromGateway(ctx, reg.ID, "pay_x", "sig"); err != nil || ok {
        t.Fatalf("MarkPaidFromGateway under review = (%v, %v), want (false, nil)", ok, err)
    }

    if ok, err := repo.Approve(ctx, reg.ID); err != nil || !ok {
        t.Fatalf("Approve = (%v, %v), want (true, nil)", ok, err)
    }
    // Double approval and late rejection are both no-ops.
    if ok, _ := repo.Approve(ctx, reg.ID); ok {
        t.Fatal("double approval should not fire")
    }
    if ok, _ := repo.Reject(ctx, reg.ID); ok {
        t.Fatal("rejecting a paid registration should not fire")
    }

    got, err := repo.GetByID(ctx, reg.ID)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    if got.PaymentStatus != model.StatusPaid {
        t.Fatalf("status = %s, want %s", got.PaymentStatus, model.StatusPaid)
    }
    if got.UPITxnID == nil || *got.UPITxnID != "UPI123456" {
        t.Fatalf("upi txn id = %v, want the first submission to stick", got.UPITxnID)
    }
}

func TestAttachTicketIdempotent(t *testing.T) {
    db := testDB(t)
    repo := NewRegistrationRepo(db)
    eventID, userID := seedEventAndUser(t, db)

    ctx := context.Background()
    reg := &model.Registration{EventID: eventID, UserID: userID, PaymentStatus: model.StatusFree}
    if err := repo.Create(ctx, reg); err != nil {
        t.Fatalf("create: %v", err)
    }

    first, err := repo.AttachTicket(ctx, reg.ID, "aaaa1111", "1700000000000", "data:image/png;base64,AAAA")
    if err != nil {
        t.Fatalf("attach: %v", err)
    }
    if !first {
        t.Fatal("first attach should succeed")
    }
    second, err := repo.AttachTicket(ctx, reg.ID, "bbbb2222", "1700000000001", "data:image/png;base64,BBBB")
    if err != nil {
        t.Fatalf("re-attach: %v", err)
    }
    if second {
        t.Fatal("second attach should be a no-op")
    }

    got, err := repo.GetByID(ctx, reg.ID)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    if got.QRToken == nil || *got.QRToken != "aaaa1111" {
        t.Fatalf("token = %v, want the first attach to stick", got.QRToken)
    }
}
