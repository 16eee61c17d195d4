package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
)

// EventRepo provides CRUD operations for events. Deleting an event is the
// one non-trivial operation: the registrations that point at it are first
// stamped with a snapshot of the event's title/date/venue, inside the same
// transaction, so their history survives the hard delete.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventCols = `id, title, description, date, venue, max_participants,
    registration_fee, banner, upi_id, created_by, created_at, updated_at`

// Create inserts a new event and populates the generated ID and timestamps.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO events (title, description, date, venue, max_participants,
             registration_fee, banner, upi_id, created_by)
         VALUES (?,?,?,?,?,?,?,?,?)`,
        ev.Title, ev.Description, ev.Date.UTC(), ev.Venue, ev.MaxParticipants,
        ev.RegistrationFee, ev.Banner, ev.UPIID, ev.CreatedBy)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    ev.ID = uint64(id)
    return r.DB.QueryRowContext(ctx,
        "SELECT created_at, updated_at FROM events WHERE id=?", ev.ID).
        Scan(&ev.CreatedAt, &ev.UpdatedAt)
}

// Update rewrites the mutable columns of an event.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event) error {
    res, err := r.DB.ExecContext(ctx,
        `UPDATE events SET title=?, description=?, date=?, venue=?,
             max_participants=?, registration_fee=?, banner=?, upi_id=?
         WHERE id=?`,
        ev.Title, ev.Description, ev.Date.UTC(), ev.Venue,
        ev.MaxParticipants, ev.RegistrationFee, ev.Banner, ev.UPIID, ev.ID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // RowsAffected is also 0 for a no-op update, so confirm existence.
        var one int
        if scanErr := r.DB.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id=?", ev.ID).Scan(&one); scanErr != nil {
            if errors.Is(scanErr, sql.ErrNoRows) {
                return ErrEventNotFound
            }
            return scanErr
        }
    }
    return nil
}

// GetByID returns one event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
    ev, err := scanEvent(r.DB.QueryRowContext(ctx,
        "SELECT "+eventCols+" FROM events WHERE id=? LIMIT 1", id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrEventNotFound
        }
        return nil, err
    }
    return ev, nil
}

// EventWithCount is an event plus its current registration count, for the
// public listing where students judge how full an event is.
type EventWithCount struct {
    model.Event
    Registrations uint32 `json:"registrations"`
}

// List returns all events ordered by date, each with its registration count.
func (r *EventRepo) List(ctx context.Context) ([]EventWithCount, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT e.id, e.title, e.description, e.date, e.venue, e.max_participants,
                e.registration_fee, e.banner, e.upi_id, e.created_by, e.created_at, e.updated_at,
                COUNT(reg.id)
         FROM events e
         LEFT JOIN registrations reg ON reg.event_id = e.id
         GROUP BY e.id
         ORDER BY e.date ASC`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var result []EventWithCount
    for rows.Next() {
        var ec EventWithCount
        if err := rows.Scan(&ec.ID, &ec.Title, &ec.Description, &ec.Date, &ec.Venue,
            &ec.MaxParticipants, &ec.RegistrationFee, &ec.Banner, &ec.UPIID,
            &ec.CreatedBy, &ec.CreatedAt, &ec.UpdatedAt, &ec.Registrations); err != nil {
            return nil, err
        }
        result = append(result, ec)
    }
    return result, rows.Err()
}

// DeleteWithSnapshot removes an event after stamping every registration that
// references it with the event's title/date/venue. Both statements run in
// one transaction: a registration must never end up orphaned without its
// snapshot.
func (r *EventRepo) DeleteWithSnapshot(ctx context.Context, id uint64) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    ev, err := scanEvent(tx.QueryRowContext(ctx,
        "SELECT "+eventCols+" FROM events WHERE id=? FOR UPDATE", id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrEventNotFound
        }
        return err
    }

    if _, err := tx.ExecContext(ctx,
        `UPDATE registrations SET snapshot_title=?, snapshot_date=?, snapshot_venue=?
         WHERE event_id=?`,
        ev.Title, ev.Date.UTC(), ev.Venue, id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id=?", id); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// CountAll returns the total number of events, for the admin dashboard.
func (r *EventRepo) CountAll(ctx context.Context) (uint64, error) {
    var n uint64
    err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
    return n, err
}

type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
    var (
        ev   model.Event
        date time.Time
    )
    err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &date, &ev.Venue,
        &ev.MaxParticipants, &ev.RegistrationFee, &ev.Banner, &ev.UPIID,
        &ev.CreatedBy, &ev.CreatedAt, &ev.UpdatedAt)
    if err != nil {
        return nil, err
    }
    ev.Date = date.UTC()
    return &ev, nil
}
