package entities

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed appointment request captured by the
// assistant. Date and TimeBlock hold the symbolic tokens collected during
// the conversation ("mardi", "matin"), not calendar values; the front desk
// resolves them when the booking is scheduled.
type Booking struct {
	ID         string        `json:"id" db:"id"`
	Phone      string        `json:"phone" db:"phone"`
	Service    string        `json:"service" db:"service"`
	Date       string        `json:"date" db:"date"`
	TimeBlock  string        `json:"time_block" db:"time_block"`
	Barbier    string        `json:"barbier" db:"barbier"`
	ClientName string        `json:"client_name" db:"client_name"`
	Status     BookingStatus `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// ServiceOffering is one entry of the academy's service catalog
type ServiceOffering struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Price int    `json:"price"`
}
