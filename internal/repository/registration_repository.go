package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
)

// RegistrationRepo owns the registrations table and the two guarantees the
// rest of the system leans on:
//
//   - the (event_id, user_id) unique key decides duplicate-registration
//     races; Create translates the resulting 1062 into ErrAlreadyRegistered
//     so a racing loser is indistinguishable from a plain duplicate.
//   - attendance flips through a single conditional UPDATE
//     (attended=1 only where attended=0), so of two concurrent scans of the
//     same token exactly one observes the transition.
//
// The capacity check (CountByEvent compared against the event's maximum in
// the handler) is deliberately a soft limit: under heavy concurrency a
// count-then-insert can overshoot by a few seats, which is an accepted
// business outcome. The unique key above is the real safety property.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

const regCols = `id, event_id, user_id, payment_status, amount_paid,
    razorpay_order_id, razorpay_payment_id, razorpay_signature,
    upi_txn_ref, upi_txn_id, upi_qr_code,
    qr_token, qr_token_timestamp, qr_code,
    attended, attended_at, snapshot_title, snapshot_date, snapshot_venue,
    created_at, updated_at`

// Create inserts a new registration in its initial state and populates the
// generated ID and timestamps. Only the columns a creation path can set are
// written; ticket and attendance columns start NULL/zero.
func (r *RegistrationRepo) Create(ctx context.Context, reg *model.Registration) error {
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO registrations (event_id, user_id, payment_status, amount_paid,
             razorpay_order_id, upi_txn_ref, upi_qr_code)
         VALUES (?,?,?,?,?,?,?)`,
        reg.EventID, reg.UserID, reg.PaymentStatus, reg.AmountPaid,
        reg.RazorpayOrderID, reg.UPITxnRef, reg.UPIQRCode)
    if err != nil {
        // The only unique key reachable from this insert is
        // (event_id, user_id); qr_token is still NULL here.
        if strings.Contains(err.Error(), "1062") {
            return ErrAlreadyRegistered
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    reg.ID = uint64(id)
    return r.DB.QueryRowContext(ctx,
        "SELECT created_at, updated_at FROM registrations WHERE id=?", reg.ID).
        Scan(&reg.CreatedAt, &reg.UpdatedAt)
}

// GetByID returns one registration or ErrRegistrationNotFound.
func (r *RegistrationRepo) GetByID(ctx context.Context, id uint64) (*model.Registration, error) {
    reg, err := scanRegistration(r.DB.QueryRowContext(ctx,
        "SELECT "+regCols+" FROM registrations WHERE id=? LIMIT 1", id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRegistrationNotFound
        }
        return nil, err
    }
    return reg, nil
}

// FindByEventAndUser returns the caller's registration for an event, or
// (nil, nil) when none exists.
func (r *RegistrationRepo) FindByEventAndUser(ctx context.Context, eventID, userID uint64) (*model.Registration, error) {
    reg, err := scanRegistration(r.DB.QueryRowContext(ctx,
        "SELECT "+regCols+" FROM registrations WHERE event_id=? AND user_id=? LIMIT 1",
        eventID, userID))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }
    return reg, nil
}

// CountByEvent counts registrations for an event regardless of payment
// status: a pending slot still occupies capacity.
func (r *RegistrationRepo) CountByEvent(ctx context.Context, eventID uint64) (uint32, error) {
    var n uint32
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM registrations WHERE event_id=?", eventID).Scan(&n)
    return n, err
}

// Delete removes a registration row (used to discard stale non-terminal
// records before a fresh attempt, and by admins removing registrations).
func (r *RegistrationRepo) Delete(ctx context.Context, id uint64) error {
    _, err := r.DB.ExecContext(ctx, "DELETE FROM registrations WHERE id=?", id)
    return err
}

// ---- state transitions ----
//
// Every transition is a conditional UPDATE guarded by the expected current
// state. RowsAffected==0 means the guard failed (wrong state, concurrent
// transition, or missing row) and the caller decides how to report it.

// SubmitUPITxn moves pending -> awaiting_approval, recording the
// student-reported transaction ID.
func (r *RegistrationRepo) SubmitUPITxn(ctx context.Context, id uint64, txnID string) (bool, error) {
    return r.transition(ctx,
        `UPDATE registrations SET payment_status=?, upi_txn_id=?
         WHERE id=? AND payment_status=?`,
        model.StatusAwaitingApproval, txnID, id, model.StatusPending)
}

// MarkPaidFromGateway moves pending -> paid after signature verification,
// storing the gateway payment id and signature.
func (r *RegistrationRepo) MarkPaidFromGateway(ctx context.Context, id uint64, paymentID, signature string) (bool, error) {
    return r.transition(ctx,
        `UPDATE registrations SET payment_status=?, razorpay_payment_id=?, razorpay_signature=?
         WHERE id=? AND payment_status=?`,
        model.StatusPaid, paymentID, signature, id, model.StatusPending)
}

// MarkFailed moves pending -> failed after a signature mismatch.
func (r *RegistrationRepo) MarkFailed(ctx context.Context, id uint64) (bool, error) {
    return r.transition(ctx,
        `UPDATE registrations SET payment_status=? WHERE id=? AND payment_status=?`,
        model.StatusFailed, id, model.StatusPending)
}

// Approve moves awaiting_approval -> paid (admin review).
func (r *RegistrationRepo) Approve(ctx context.Context, id uint64) (bool, error) {
    return r.transition(ctx,
        `UPDATE registrations SET payment_status=? WHERE id=? AND payment_status=?`,
        model.StatusPaid, id, model.StatusAwaitingApproval)
}

// Reject moves awaiting_approval -> payment_rejected (admin review).
func (r *RegistrationRepo) Reject(ctx context.Context, id uint64) (bool, error) {
    return r.transition(ctx,
        `UPDATE registrations SET payment_status=? WHERE id=? AND payment_status=?`,
        model.StatusPaymentRejected, id, model.StatusAwaitingApproval)
}

func (r *RegistrationRepo) transition(ctx context.Context, query string, args ...interface{}) (bool, error) {
    res, err := r.DB.ExecContext(ctx, query, args...)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n > 0, nil
}

// ---- ticket issuance ----

// AttachTicket stores the admission token and rendered QR exactly once.
// The qr_token IS NULL guard makes re-finalization a no-op, which is what
// keeps token issuance idempotent across retried confirmations.
func (r *RegistrationRepo) AttachTicket(ctx context.Context, id uint64, token, timestamp, qrCode string) (bool, error) {
    res, err := r.DB.ExecContext(ctx,
        `UPDATE registrations SET qr_token=?, qr_token_timestamp=?, qr_code=?
         WHERE id=? AND qr_token IS NULL`,
        token, timestamp, qrCode, id)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n > 0, nil
}

// ---- admission ----

// AdmissionRecord is everything the gate or scanner UI needs to render an
// outcome: the registration's state plus student and event context. Event
// fields fall back to the snapshot when the event has been deleted.
type AdmissionRecord struct {
    RegistrationID uint64              `json:"registrationId"`
    EventID        uint64              `json:"eventId"`
    UserID         uint64              `json:"userId"`
    PaymentStatus  model.PaymentStatus `json:"paymentStatus"`
    AmountPaid     uint32              `json:"amountPaid"`
    Attended       bool                `json:"attended"`
    AttendedAt     *time.Time          `json:"attendedAt,omitempty"`
    TokenTimestamp string              `json:"-"`

    StudentName        string  `json:"studentName"`
    StudentEmail       string  `json:"studentEmail"`
    RegistrationNumber *string `json:"registrationNumber,omitempty"`
    Branch             *string `json:"branch,omitempty"`
    Year               *uint8  `json:"year,omitempty"`
    Phone              *string `json:"phone,omitempty"`

    EventTitle string     `json:"eventTitle"`
    EventDate  *time.Time `json:"eventDate,omitempty"`
    EventVenue string     `json:"eventVenue"`
}

// FindAdmissionByToken looks a registration up by exact qr_token equality —
// the primary authorization path for gate entry — and joins the context the
// operator sees.
func (r *RegistrationRepo) FindAdmissionByToken(ctx context.Context, token string) (*AdmissionRecord, error) {
    var (
        rec        AdmissionRecord
        attendedAt sql.NullTime
        tokenTS    sql.NullString
        regNo      sql.NullString
        branch     sql.NullString
        year       sql.NullInt16
        phone      sql.NullString
        title      sql.NullString
        date       sql.NullTime
        venue      sql.NullString
    )
    err := r.DB.QueryRowContext(ctx,
        `SELECT reg.id, reg.event_id, reg.user_id, reg.payment_status, reg.amount_paid,
                reg.attended, reg.attended_at, reg.qr_token_timestamp,
                u.name, u.email, u.registration_number, u.branch, u.year, u.phone,
                COALESCE(e.title, reg.snapshot_title),
                COALESCE(e.date, reg.snapshot_date),
                COALESCE(e.venue, reg.snapshot_venue)
         FROM registrations reg
         JOIN users u ON u.id = reg.user_id
         LEFT JOIN events e ON e.id = reg.event_id
         WHERE reg.qr_token = ?
         LIMIT 1`, token).
        Scan(&rec.RegistrationID, &rec.EventID, &rec.UserID, &rec.PaymentStatus, &rec.AmountPaid,
            &rec.Attended, &attendedAt, &tokenTS,
            &rec.StudentName, &rec.StudentEmail, &regNo, &branch, &year, &phone,
            &title, &date, &venue)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRegistrationNotFound
        }
        return nil, err
    }
    if attendedAt.Valid {
        t := attendedAt.Time.UTC()
        rec.AttendedAt = &t
    }
    if tokenTS.Valid {
        rec.TokenTimestamp = tokenTS.String
    }
    if regNo.Valid {
        rec.RegistrationNumber = &regNo.String
    }
    if branch.Valid {
        rec.Branch = &branch.String
    }
    if year.Valid {
        y := uint8(year.Int16)
        rec.Year = &y
    }
    if phone.Valid {
        rec.Phone = &phone.String
    }
    if title.Valid {
        rec.EventTitle = title.String
    }
    if date.Valid {
        d := date.Time.UTC()
        rec.EventDate = &d
    }
    if venue.Valid {
        rec.EventVenue = venue.String
    }
    return &rec, nil
}

// MarkAttended atomically flips attended false->true. The WHERE attended=0
// guard is the single-use guarantee: of two concurrent scans only one
// statement matches a row, and the loser reads back the original entry time
// via GetAttendedAt.
func (r *RegistrationRepo) MarkAttended(ctx context.Context, id uint64) (bool, error) {
    res, err := r.DB.ExecContext(ctx,
        `UPDATE registrations SET attended=1, attended_at=UTC_TIMESTAMP()
         WHERE id=? AND attended=0`, id)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n > 0, nil
}

// GetAttendedAt returns the recorded entry time for a registration.
func (r *RegistrationRepo) GetAttendedAt(ctx context.Context, id uint64) (*time.Time, error) {
    var at sql.NullTime
    err := r.DB.QueryRowContext(ctx,
        "SELECT attended_at FROM registrations WHERE id=?", id).Scan(&at)
    if err != nil {
        return nil, err
    }
    if !at.Valid {
        return nil, nil
    }
    t := at.Time.UTC()
    return &t, nil
}

// ---- listings ----

// RegistrationDetail is a registration joined with its event for the
// student's "my registrations" view. Orphaned is true when the event was
// deleted; the event fields then come from the snapshot.
type RegistrationDetail struct {
    ID            uint64              `json:"id"`
    EventID       uint64              `json:"eventId"`
    PaymentStatus model.PaymentStatus `json:"paymentStatus"`
    AmountPaid    uint32              `json:"amountPaid"`
    UPITxnRef     *string             `json:"upiTxnRef,omitempty"`
    QRCode        *string             `json:"qrCode,omitempty"`
    Attended      bool                `json:"attended"`
    AttendedAt    *time.Time          `json:"attendedAt,omitempty"`
    EventTitle    string              `json:"eventTitle"`
    EventDate     *time.Time          `json:"eventDate,omitempty"`
    EventVenue    string              `json:"eventVenue"`
    EventFee      uint32              `json:"eventFee"`
    Orphaned      bool                `json:"orphaned"`
    CreatedAt     time.Time           `json:"createdAt"`
}

// ListByUser returns the caller's registrations, newest first, with event
// details populated (from the snapshot for orphaned rows).
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uint64) ([]RegistrationDetail, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT reg.id, reg.event_id, reg.payment_status, reg.amount_paid,
                reg.upi_txn_ref, reg.qr_code, reg.attended, reg.attended_at,
                COALESCE(e.title, reg.snapshot_title, ''),
                COALESCE(e.date, reg.snapshot_date),
                COALESCE(e.venue, reg.snapshot_venue, ''),
                COALESCE(e.registration_fee, reg.amount_paid),
                e.id IS NULL,
                reg.created_at
         FROM registrations reg
         LEFT JOIN events e ON e.id = reg.event_id
         WHERE reg.user_id = ?
         ORDER BY reg.created_at DESC`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var result []RegistrationDetail
    for rows.Next() {
        var (
            d          RegistrationDetail
            txnRef     sql.NullString
            qrCode     sql.NullString
            attendedAt sql.NullTime
            date       sql.NullTime
        )
        if err := rows.Scan(&d.ID, &d.EventID, &d.PaymentStatus, &d.AmountPaid,
            &txnRef, &qrCode, &d.Attended, &attendedAt,
            &d.EventTitle, &date, &d.EventVenue, &d.EventFee, &d.Orphaned,
            &d.CreatedAt); err != nil {
            return nil, err
        }
        if txnRef.Valid {
            d.UPITxnRef = &txnRef.String
        }
        if qrCode.Valid {
            d.QRCode = &qrCode.String
        }
        if attendedAt.Valid {
            t := attendedAt.Time.UTC()
            d.AttendedAt = &t
        }
        if date.Valid {
            t := date.Time.UTC()
            d.EventDate = &t
        }
        result = append(result, d)
    }
    return result, rows.Err()
}

// ReviewItem is one entry in the admin payment-review queue.
type ReviewItem struct {
    RegistrationID     uint64     `json:"registrationId"`
    EventID            uint64     `json:"eventId"`
    EventTitle         string     `json:"eventTitle"`
    StudentName        string     `json:"studentName"`
    StudentEmail       string     `json:"studentEmail"`
    RegistrationNumber *string    `json:"registrationNumber,omitempty"`
    AmountPaid         uint32     `json:"amountPaid"`
    UPITxnRef          *string    `json:"upiTxnRef,omitempty"`
    UPITxnID           *string    `json:"upiTxnId,omitempty"`
    SubmittedAt        time.Time  `json:"submittedAt"`
}

// ListAwaitingApproval returns the self-reported payments waiting for admin
// review, oldest first. eventID 0 means all events.
func (r *RegistrationRepo) ListAwaitingApproval(ctx context.Context, eventID uint64) ([]ReviewItem, error) {
    q := `SELECT reg.id, reg.event_id, COALESCE(e.title, reg.snapshot_title, ''),
                 u.name, u.email, u.registration_number,
                 reg.amount_paid, reg.upi_txn_ref, reg.upi_txn_id, reg.updated_at
          FROM registrations reg
          JOIN users u ON u.id = reg.user_id
          LEFT JOIN events e ON e.id = reg.event_id
          WHERE reg.payment_status = ?`
    args := []interface{}{model.StatusAwaitingApproval}
    if eventID != 0 {
        q += " AND reg.event_id = ?"
        args = append(args, eventID)
    }
    q += " ORDER BY reg.updated_at ASC"

    rows, err := r.DB.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var result []ReviewItem
    for rows.Next() {
        var (
            it     ReviewItem
            regNo  sql.NullString
            txnRef sql.NullString
            txnID  sql.NullString
        )
        if err := rows.Scan(&it.RegistrationID, &it.EventID, &it.EventTitle,
            &it.StudentName, &it.StudentEmail, &regNo,
            &it.AmountPaid, &txnRef, &txnID, &it.SubmittedAt); err != nil {
            return nil, err
        }
        if regNo.Valid {
            it.RegistrationNumber = &regNo.String
        }
        if txnRef.Valid {
            it.UPITxnRef = &txnRef.String
        }
        if txnID.Valid {
            it.UPITxnID = &txnID.String
        }
        result = append(result, it)
    }
    return result, rows.Err()
}

// EventRegistrationRow is one row of an event's registration list as shown
// to admins.
type EventRegistrationRow struct {
    RegistrationID     uint64              `json:"registrationId"`
    StudentName        string              `json:"studentName"`
    StudentEmail       string              `json:"studentEmail"`
    RegistrationNumber *string             `json:"registrationNumber,omitempty"`
    Phone              *string             `json:"phone,omitempty"`
    Branch             *string             `json:"branch,omitempty"`
    Year               *uint8              `json:"year,omitempty"`
    PaymentStatus      model.PaymentStatus `json:"paymentStatus"`
    Attended           bool                `json:"attended"`
    AttendedAt         *time.Time          `json:"attendedAt,omitempty"`
    CreatedAt          time.Time           `json:"createdAt"`
}

// ListByEvent returns all registrations for one event, newest first.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]EventRegistrationRow, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT reg.id, u.name, u.email, u.registration_number, u.phone, u.branch, u.year,
                reg.payment_status, reg.attended, reg.attended_at, reg.created_at
         FROM registrations reg
         JOIN users u ON u.id = reg.user_id
         WHERE reg.event_id = ?
         ORDER BY reg.created_at DESC`, eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var result []EventRegistrationRow
    for rows.Next() {
        var (
            row        EventRegistrationRow
            regNo      sql.NullString
            phone      sql.NullString
            branch     sql.NullString
            year       sql.NullInt16
            attendedAt sql.NullTime
        )
        if err := rows.Scan(&row.RegistrationID, &row.StudentName, &row.StudentEmail,
            &regNo, &phone, &branch, &year,
            &row.PaymentStatus, &row.Attended, &attendedAt, &row.CreatedAt); err != nil {
            return nil, err
        }
        if regNo.Valid {
            row.RegistrationNumber = &regNo.String
        }
        if phone.Valid {
            row.Phone = &phone.String
        }
        if branch.Valid {
            row.Branch = &branch.String
        }
        if year.Valid {
            y := uint8(year.Int16)
            row.Year = &y
        }
        if attendedAt.Valid {
            t := attendedAt.Time.UTC()
            row.AttendedAt = &t
        }
        result = append(result, row)
    }
    return result, rows.Err()
}

// ListPendingByEvent returns pending registrations for an event; used to
// refresh UPI amounts and QR codes when an admin changes the fee.
func (r *RegistrationRepo) ListPendingByEvent(ctx context.Context, eventID uint64) ([]model.Registration, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+regCols+" FROM registrations WHERE event_id=? AND payment_status=?",
        eventID, model.StatusPending)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var result []model.Registration
    for rows.Next() {
        reg, err := scanRegistration(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, *reg)
    }
    return result, rows.Err()
}

// UpdateUPIArtifacts rewrites the amount and payment QR of a pending UPI
// registration after a fee change. The transaction reference is kept.
func (r *RegistrationRepo) UpdateUPIArtifacts(ctx context.Context, id uint64, amount uint32, qrCode string) error {
    _, err := r.DB.ExecContext(ctx,
        `UPDATE registrations SET amount_paid=?, upi_qr_code=?
         WHERE id=? AND payment_status=?`,
        amount, qrCode, id, model.StatusPending)
    return err
}

// ---- maintenance & stats ----

// DeleteOrphans removes registrations whose event no longer exists and that
// carry no snapshot (i.e. rows orphaned before snapshotting existed, or
// corrupted by manual intervention). Snapshotted rows are history and stay.
func (r *RegistrationRepo) DeleteOrphans(ctx context.Context) (int64, error) {
    res, err := r.DB.ExecContext(ctx,
        `DELETE reg FROM registrations reg
         LEFT JOIN events e ON e.id = reg.event_id
         WHERE e.id IS NULL AND reg.snapshot_title IS NULL`)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// DashboardStats aggregates the numbers shown on the admin dashboard.
type DashboardStats struct {
    TotalRegistrations uint64 `json:"totalRegistrations"`
    TotalConfirmed     uint64 `json:"totalConfirmed"`
    TotalAttended      uint64 `json:"totalAttended"`
    TotalRevenue       uint64 `json:"totalRevenue"`
}

// Stats computes registration totals, confirmed (free or paid) totals,
// attendance totals and revenue (sum of paid amounts).
func (r *RegistrationRepo) Stats(ctx context.Context) (DashboardStats, error) {
    var s DashboardStats
    err := r.DB.QueryRowContext(ctx,
        `SELECT COUNT(*),
                COALESCE(SUM(payment_status IN (?,?)), 0),
                COALESCE(SUM(attended), 0),
                COALESCE(SUM(CASE WHEN payment_status=? THEN amount_paid ELSE 0 END), 0)
         FROM registrations`,
        model.StatusFree, model.StatusPaid, model.StatusPaid).
        Scan(&s.TotalRegistrations, &s.TotalConfirmed, &s.TotalAttended, &s.TotalRevenue)
    return s, err
}

func scanRegistration(row rowScanner) (*model.Registration, error) {
    var (
        reg        model.Registration
        orderID    sql.NullString
        paymentID  sql.NullString
        signature  sql.NullString
        txnRef     sql.NullString
        txnID      sql.NullString
        upiQR      sql.NullString
        qrToken    sql.NullString
        qrTokenTS  sql.NullString
        qrCode     sql.NullString
        attendedAt sql.NullTime
        snapTitle  sql.NullString
        snapDate   sql.NullTime
        snapVenue  sql.NullString
    )
    err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.PaymentStatus, &reg.AmountPaid,
        &orderID, &paymentID, &signature,
        &txnRef, &txnID, &upiQR,
        &qrToken, &qrTokenTS, &qrCode,
        &reg.Attended, &attendedAt, &snapTitle, &snapDate, &snapVenue,
        &reg.CreatedAt, &reg.UpdatedAt)
    if err != nil {
        return nil, err
    }
    if orderID.Valid {
        reg.RazorpayOrderID = &orderID.String
    }
    if paymentID.Valid {
        reg.RazorpayPaymentID = &paymentID.String
    }
    if signature.Valid {
        reg.RazorpaySignature = &signature.String
    }
    if txnRef.Valid {
        reg.UPITxnRef = &txnRef.String
    }
    if txnID.Valid {
        reg.UPITxnID = &txnID.String
    }
    if upiQR.Valid {
        reg.UPIQRCode = &upiQR.String
    }
    if qrToken.Valid {
        reg.QRToken = &qrToken.String
    }
    if qrTokenTS.Valid {
        reg.QRTokenTimestamp = &qrTokenTS.String
    }
    if qrCode.Valid {
        reg.QRCode = &qrCode.String
    }
    if attendedAt.Valid {
        t := attendedAt.Time.UTC()
        reg.AttendedAt = &t
    }
    if snapTitle.Valid {
        reg.SnapshotTitle = &snapTitle.String
    }
    if snapDate.Valid {
        t := snapDate.Time.UTC()
        reg.SnapshotDate = &t
    }
    if snapVenue.Valid {
        reg.SnapshotVenue = &snapVenue.String
    }
    return &reg, nil
}
