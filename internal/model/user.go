package model

import "time"

// Role values stored in users.role and carried in the JWT "role" claim.
const (
    RoleStudent = "student"
    RoleAdmin   = "admin"
)

// User represents an application user record as stored in the `users` table.
// Students carry the registration-number/phone/branch/year/section block;
// admins carry the department/designation block.  Email is unique across all
// users; registration number and phone are unique among students when
// present (NULL for admins, which MySQL's unique index permits).
//
// Fields:
//  ID                 – primary key identifier of the user.
//  Name               – display name.
//  Email              – unique email address.
//  PasswordHash       – bcrypt hashed password.
//  Role               – "student" or "admin".
//  RegistrationNumber – college registration number (students, unique, optional).
//  Phone              – phone number (students, unique, optional).
//  Branch             – department short code, upper-cased (students).
//  Year               – study year 1–4 (students).
//  Section            – class section, upper-cased (students).
//  IsCoordinator      – whether the student coordinates events.
//  Department         – admin department (admins).
//  Designation        – admin designation, e.g. "HOD", "Professor" (admins).
type User struct {
    ID                 uint64    `json:"id"`
    Name               string    `json:"name"`
    Email              string    `json:"email"`
    PasswordHash       string    `json:"-"`
    Role               string    `json:"role"`
    RegistrationNumber *string   `json:"registrationNumber,omitempty"`
    Phone              *string   `json:"phone,omitempty"`
    Branch             *string   `json:"branch,omitempty"`
    Year               *uint8    `json:"year,omitempty"`
    Section            *string   `json:"section,omitempty"`
    IsCoordinator      bool      `json:"isCoordinator"`
    Department         *string   `json:"department,omitempty"`
    Designation        *string   `json:"designation,omitempty"`
    CreatedAt          time.Time `json:"createdAt"`
    UpdatedAt          time.Time `json:"updatedAt"`
}
