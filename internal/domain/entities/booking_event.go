package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents the type of booking lifecycle event
type BookingEventType string

const (
	BookingEventTypeConfirmed BookingEventType = "booking_confirmed"
	BookingEventTypeCancelled BookingEventType = "booking_cancelled"
)

// BookingEvent is the real-time notification emitted when a booking changes
// state, consumed by the front-desk dashboard
type BookingEvent struct {
	ID         string           `json:"id"`
	BookingID  string           `json:"booking_id"`
	EventType  BookingEventType `json:"event_type"`
	Phone      string           `json:"phone"`
	Service    string           `json:"service"`
	Date       string           `json:"date"`
	TimeBlock  string           `json:"time_block"`
	ClientName string           `json:"client_name"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewBookingEvent builds an event from a booking
func NewBookingEvent(eventType BookingEventType, booking *Booking) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		EventType:  eventType,
		Phone:      booking.Phone,
		Service:    booking.Service,
		Date:       booking.Date,
		TimeBlock:  booking.TimeBlock,
		ClientName: booking.ClientName,
		Timestamp:  time.Now(),
	}
}
