package repository

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `db:"id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Email        string     `db:"email"`
	ZipCode      string     `db:"zip_code"`
	PasswordHash string     `db:"password_hash"`
	SubscriberID *uuid.UUID `db:"subscriber_id"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Subscriber struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	ZipCode   string    `db:"zip_code"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Course struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	MaxStudents int       `db:"max_students"`
	Cost        int       `db:"cost"`
	// ImageKey is the storage key of the cover image, empty when none.
	ImageKey  string    `db:"image_key"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Talk struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Speaker     string    `db:"speaker"`
	Description string    `db:"description"`
	ScheduledAt time.Time `db:"scheduled_at"`
	Location    string    `db:"location"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Train is one timetable entry. DepartsAt and ArrivesAt are "HH:MM".
type Train struct {
	ID          uuid.UUID `db:"id"`
	LineName    string    `db:"line_name"`
	TrainNumber string    `db:"train_number"`
	Origin      string    `db:"origin"`
	Destination string    `db:"destination"`
	DepartsAt   string    `db:"departs_at"`
	ArrivesAt   string    `db:"arrives_at"`
	// Fare is in won.
	Fare      int       `db:"fare"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
