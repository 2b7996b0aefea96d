package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrReminderNotFound is returned when a cancel targets a booking with no
// active reminder.
var ErrReminderNotFound = errors.New("no active reminder for booking")

// ConfirmationRequest carries the booking and contact details for a
// confirmation email. It is not persisted beyond the call.
type ConfirmationRequest struct {
	BookingID      string    `json:"bookingId"`
	DriverEmail    string    `json:"driverEmail"`
	DriverName     string    `json:"driverName"`
	Customer       string    `json:"customer"`
	Pickup         string    `json:"pickup"`
	Destination    string    `json:"destination"`
	PickupDateTime time.Time `json:"pickupDateTime"`
	BookingType    string    `json:"bookingType"`
}

// MissingFields returns the names of required fields that are empty, in the
// order the API documents them.
func (r ConfirmationRequest) MissingFields() []string {
	var missing []string
	if r.BookingID == "" {
		missing = append(missing, "bookingId")
	}
	if r.DriverEmail == "" {
		missing = append(missing, "driverEmail")
	}
	if r.DriverName == "" {
		missing = append(missing, "driverName")
	}
	if r.Customer == "" {
		missing = append(missing, "customer")
	}
	if r.Pickup == "" {
		missing = append(missing, "pickup")
	}
	if r.Destination == "" {
		missing = append(missing, "destination")
	}
	if r.PickupDateTime.IsZero() {
		missing = append(missing, "pickupDateTime")
	}
	return missing
}

// ConfirmationResult summarizes what a confirm-booking call did.
type ConfirmationResult struct {
	ConfirmationSent  bool       `json:"confirmationSent"`
	ReminderScheduled bool       `json:"reminderScheduled"`
	ReminderTime      *time.Time `json:"reminderTime"`
}

// ReminderInfo is the durable metadata of a scheduled reminder. The timer
// handle itself lives only in the registry.
type ReminderInfo struct {
	BookingID    string    `json:"bookingId" gorm:"primaryKey;column:booking_id"`
	ReminderTime time.Time `json:"reminderTime" gorm:"column:reminder_time"`
	DriverEmail  string    `json:"driverEmail" gorm:"column:driver_email"`
	DriverName   string    `json:"driverName" gorm:"column:driver_name"`
	Customer     string    `json:"customer" gorm:"column:customer"`
	Pickup       string    `json:"pickup" gorm:"column:pickup"`
	Destination  string    `json:"destination" gorm:"column:destination"`
	BookingType  string    `json:"bookingType" gorm:"column:booking_type"`
}

// TableName sets the table used by the postgres reminder store.
func (ReminderInfo) TableName() string {
	return "reminder_records"
}

// ValidationError reports the required request fields that were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Reminder lifecycle event types published to the admin websocket feed.
const (
	EventReminderScheduled  = "reminder.scheduled"
	EventReminderFired      = "reminder.fired"
	EventReminderCancelled  = "reminder.cancelled"
	EventReminderSendFailed = "reminder.send_failed"
)

// ReminderEvent is broadcast to connected back-office clients whenever a
// reminder changes state.
type ReminderEvent struct {
	Type         string     `json:"type"`
	BookingID    string     `json:"bookingId"`
	ReminderTime *time.Time `json:"reminderTime,omitempty"`
	Error        string     `json:"error,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}
