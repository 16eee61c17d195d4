package repository

import (
    "context"
    "testing"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
)

// Lifecycle tests against a real MySQL instance, gated on the same
// CAMPUS_EVENTS_MYSQL_DSN as the concurrency tests.

// A rejected registration blocks the unique key until it is discarded; the
// retry flow deletes it and creates a fresh pending row with a new txn ref.
func TestStaleRegistrationReplacedOnRetry(t *testing.T) {
    db := testDB(t)
    repo := NewRegistrationRepo(db)
    eventID, userID := seedEventAndUser(t, db)

    ctx := context.Background()
    oldRef := "CE-OLDREF01"
    stale := &model.Registration{
        EventID: eventID, UserID: userID,
        PaymentStatus: model.StatusPending, AmountPaid: 150,
        UPITxnRef: &oldRef,
    }
    if err := repo.Create(ctx, stale); err != nil {
        t.Fatalf("create: %v", err)
    }
    if ok, err := repo.SubmitUPITxn(ctx, stale.ID, "TXN-REJECTED"); err != nil || !ok {
        t.Fatalf("submit = (%v, %v), want (true, nil)", ok, err)
    }
    if ok, err := repo.Reject(ctx, stale.ID); err != nil || !ok {
        t.Fatalf("reject = (%v, %v), want (true, nil)", ok, err)
    }

    // The unique key still holds the seat for the stale row.
    dup := &model.Registration{EventID: eventID, UserID: userID, PaymentStatus: model.StatusPending}
    if err := repo.Create(ctx, dup); err != ErrAlreadyRegistered {
        t.Fatalf("create over stale row = %v, want ErrAlreadyRegistered", err)
    }

    existing, err := repo.FindByEventAndUser(ctx, eventID, userID)
    if err != nil {
        t.Fatalf("find: %v", err)
    }
    if existing == nil || !existing.PaymentStatus.Stale() {
        t.Fatalf("existing = %+v, want a stale registration", existing)
    }
    if err := repo.Delete(ctx, existing.ID); err != nil {
        t.Fatalf("delete stale: %v", err)
    }

    newRef := "CE-NEWREF02"
    fresh := &model.Registration{
        EventID: eventID, UserID: userID,
        PaymentStatus: model.StatusPending, AmountPaid: 150,
        UPITxnRef: &newRef,
    }
    if err := repo.Create(ctx, fresh); err != nil {
        t.Fatalf("create fresh: %v", err)
    }
    if fresh.ID == stale.ID {
        t.Fatal("fresh registration reused the stale row's id")
    }

    got, err := repo.FindByEventAndUser(ctx, eventID, userID)
    if err != nil {
        t.Fatalf("find after recreate: %v", err)
    }
    if got == nil || got.ID != fresh.ID {
        t.Fatalf("row after recreate = %+v, want id %d", got, fresh.ID)
    }
    if got.PaymentStatus != model.StatusPending {
        t.Fatalf("status = %s, want %s", got.PaymentStatus, model.StatusPending)
    }
    if got.UPITxnRef == nil || *got.UPITxnRef != newRef {
        t.Fatalf("txn ref = %v, want %s", got.UPITxnRef, newRef)
    }
    if got.UPITxnID != nil {
        t.Fatalf("txn id = %v, want nil on the fresh row", *got.UPITxnID)
    }
}

// Deleting an event must stamp its registrations with the snapshot columns
// in the same transaction so the student's history survives.
func TestDeleteWithSnapshotPreservesRegistrations(t *testing.T) {
    db := testDB(t)
    events := NewEventRepo(db)
    regs := NewRegistrationRepo(db)
    eventID, userID := seedEventAndUser(t, db)

    ctx := context.Background()
    reg := &model.Registration{EventID: eventID, UserID: userID, PaymentStatus: model.StatusFree}
    if err := regs.Create(ctx, reg); err != nil {
        t.Fatalf("create: %v", err)
    }

    ev, err := events.GetByID(ctx, eventID)
    if err != nil {
        t.Fatalf("load event: %v", err)
    }
    if err := events.DeleteWithSnapshot(ctx, eventID); err != nil {
        t.Fatalf("delete with snapshot: %v", err)
    }
    if _, err := events.GetByID(ctx, eventID); err != ErrEventNotFound {
        t.Fatalf("event after delete = %v, want ErrEventNotFound", err)
    }

    got, err := regs.GetByID(ctx, reg.ID)
    if err != nil {
        t.Fatalf("registration after delete: %v", err)
    }
    if got.SnapshotTitle == nil || *got.SnapshotTitle != ev.Title {
        t.Fatalf("snapshot title = %v, want %q", got.SnapshotTitle, ev.Title)
    }
    if got.SnapshotVenue == nil || *got.SnapshotVenue != ev.Venue {
        t.Fatalf("snapshot venue = %v, want %q", got.SnapshotVenue, ev.Venue)
    }
    if got.SnapshotDate == nil {
        t.Fatal("snapshot date not stamped")
    }

    details, err := regs.ListByUser(ctx, userID)
    if err != nil {
        t.Fatalf("list by user: %v", err)
    }
    var found bool
    for _, d := range details {
        if d.ID != reg.ID {
            continue
        }
        found = true
        if !d.Orphaned {
            t.Error("registration not reported as orphaned")
        }
        if d.EventTitle != ev.Title {
            t.Errorf("listed title = %q, want %q from snapshot", d.EventTitle, ev.Title)
        }
    }
    if !found {
        t.Fatal("orphaned registration missing from the user's list")
    }
}
