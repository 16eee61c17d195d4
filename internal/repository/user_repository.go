package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/shaik-riyaz-mujaffer/campus-events/internal/model"
    "github.com/shaik-riyaz-mujaffer/campus-events/internal/utils"
)

// UserRepo persists users. Email is unique for everyone; registration
// number and phone are unique among students (NULL for admins).
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, name, email, password_hash, role, registration_number, phone,
    branch, year, section, is_coordinator, department, designation, created_at, updated_at`

// Create inserts a user and returns its ID. Student-only columns must be
// nil for admins so the sparse unique indexes stay inert.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO users (name, email, password_hash, role, registration_number, phone,
             branch, year, section, is_coordinator, department, designation)
         VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
        u.Name, u.Email, hash, u.Role, u.RegistrationNumber, u.Phone,
        u.Branch, u.Year, u.Section, u.IsCoordinator, u.Department, u.Designation)
    if err != nil {
        if strings.Contains(err.Error(), "1062") {
            return 0, duplicateUserErr(err.Error())
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// duplicateUserErr picks the sentinel matching the violated key. MySQL's
// 1062 message names the index, e.g. "Duplicate entry ... for key
// 'users.uq_users_email'".
func duplicateUserErr(msg string) error {
    switch {
    case strings.Contains(msg, "uq_users_regno"):
        return ErrRegNumberExists
    case strings.Contains(msg, "uq_users_phone"):
        return ErrPhoneExists
    default:
        return ErrEmailExists
    }
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.getWhere(ctx, "email=?", email)
}

// GetByIdentifier resolves a login identifier that may be an email, a phone
// number or a registration number, in that order of likelihood.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
    identifier = strings.TrimSpace(identifier)
    u, err := r.getWhere(ctx, "email=?", strings.ToLower(identifier))
    if err == nil || err != sql.ErrNoRows {
        return u, err
    }
    u, err = r.getWhere(ctx, "phone=?", identifier)
    if err == nil || err != sql.ErrNoRows {
        return u, err
    }
    return r.getWhere(ctx, "registration_number=?", strings.ToUpper(identifier))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return r.getWhere(ctx, "id=?", id)
}

func (r *UserRepo) getWhere(ctx context.Context, cond string, arg interface{}) (model.User, error) {
    var (
        u         model.User
        regNo     sql.NullString
        phone     sql.NullString
        branch    sql.NullString
        year      sql.NullInt16
        section   sql.NullString
        dept      sql.NullString
        desig     sql.NullString
    )
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+userCols+" FROM users WHERE "+cond+" LIMIT 1", arg).
        Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &regNo, &phone,
            &branch, &year, &section, &u.IsCoordinator, &dept, &desig, &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        return model.User{}, err
    }
    if regNo.Valid {
        u.RegistrationNumber = &regNo.String
    }
    if phone.Valid {
        u.Phone = &phone.String
    }
    if branch.Valid {
        u.Branch = &branch.String
    }
    if year.Valid {
        y := uint8(year.Int16)
        u.Year = &y
    }
    if section.Valid {
        u.Section = &section.String
    }
    if dept.Valid {
        u.Department = &dept.String
    }
    if desig.Valid {
        u.Designation = &desig.String
    }
    return u, nil
}
