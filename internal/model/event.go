package model

import "time"

// Event is a college event published by an admin.  Registration counts are
// not stored here; capacity checks count registration rows at request time.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – event title.
//  Description     – long-form description.
//  Date            – scheduled date/time (UTC).
//  Venue           – where the event takes place.
//  MaxParticipants – capacity ceiling, soft-enforced at registration time.
//  RegistrationFee – fee in rupees; 0 means free.
//  Banner          – path to the banner image (served statically).
//  UPIID           – per-event UPI collection address; falls back to the
//                    process-wide UPI_ID when empty.
//  CreatedBy       – admin who owns the event.
type Event struct {
    ID              uint64    `json:"id"`
    Title           string    `json:"title"`
    Description     string    `json:"description"`
    Date            time.Time `json:"date"`
    Venue           string    `json:"venue"`
    MaxParticipants uint32    `json:"maxParticipants"`
    RegistrationFee uint32    `json:"registrationFee"`
    Banner          string    `json:"banner"`
    UPIID           string    `json:"upiId,omitempty"`
    CreatedBy       uint64    `json:"createdBy"`
    CreatedAt       time.Time `json:"createdAt"`
    UpdatedAt       time.Time `json:"updatedAt"`
}
