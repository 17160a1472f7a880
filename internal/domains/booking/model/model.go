package model

import (
	"fmt"
	"time"

	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

const (
	EntityName = "booking"
)

type CheckoutReason string

const (
	CheckoutReasonNone      CheckoutReason = ""
	CheckoutReasonNormal    CheckoutReason = "Normal"
	CheckoutReasonEmergency CheckoutReason = "Emergency"
)

// Booking is one guest stay, from check-in to optional check-out. ID,
// CheckIn, NumGuests, RoomID and IsPaid are fixed at creation; the checkout
// fields are set exactly once and never cleared.
type Booking struct {
	ID             int
	CheckIn        time.Time
	CheckOut       *time.Time
	NumGuests      int
	RoomID         int
	IsPaid         bool
	CheckoutReason CheckoutReason
	CheckoutNotes  string
}

// IsCurrent reports whether the guest is still checked in.
func (b *Booking) IsCurrent() bool {
	return b.CheckOut == nil
}

// Status derives the display status of the booking. Emergency checkouts with
// notes append the notes to the status text.
func (b *Booking) Status() string {
	if b.CheckOut == nil {
		return "Currently checked in"
	}

	status := fmt.Sprintf("Checked out (%s)", b.CheckoutReason)
	if b.CheckoutReason == CheckoutReasonEmergency && b.CheckoutNotes != "" {
		status += ": " + b.CheckoutNotes
	}

	return status
}

// Record is the persisted form of a Booking. Every key is always written;
// absent optionals serialize to JSON null so older and newer snapshots stay
// mutually readable.
type Record struct {
	BookingID      *int    `json:"booking_id"`
	CheckIn        *string `json:"check_in"`
	NumGuests      *int    `json:"num_guests"`
	RoomID         *int    `json:"room_id"`
	CheckOut       *string `json:"check_out"`
	IsPaid         bool    `json:"is_paid"`
	CheckoutReason *string `json:"checkout_reason"`
	CheckoutNotes  *string `json:"checkout_notes"`
}

// ToRecord serializes the booking with timestamps in RFC 3339, which sorts
// lexicographically in timestamp order.
func (b *Booking) ToRecord() Record {
	checkIn := b.CheckIn.Format(constant.DateFormat)

	rec := Record{
		BookingID: &b.ID,
		CheckIn:   &checkIn,
		NumGuests: &b.NumGuests,
		RoomID:    &b.RoomID,
		IsPaid:    b.IsPaid,
	}

	if b.CheckOut != nil {
		checkOut := b.CheckOut.Format(constant.DateFormat)
		rec.CheckOut = &checkOut
	}

	if b.CheckoutReason != CheckoutReasonNone {
		reason := string(b.CheckoutReason)
		rec.CheckoutReason = &reason
	}

	if b.CheckoutNotes != "" {
		notes := b.CheckoutNotes
		rec.CheckoutNotes = &notes
	}

	return rec
}

// FromRecord is the inverse of ToRecord. Required fields must be present;
// optional fields omitted by older snapshots default to absent/false.
func FromRecord(rec Record) (Booking, error) {
	if rec.BookingID == nil || rec.CheckIn == nil || rec.NumGuests == nil || rec.RoomID == nil {
		return Booking{}, failure.MalformedRecord("booking record is missing required fields") //nolint:wrapcheck
	}

	checkIn, err := time.Parse(constant.DateFormat, *rec.CheckIn)
	if err != nil {
		return Booking{}, failure.MalformedRecord(fmt.Sprintf("invalid check-in timestamp: %v", err)) //nolint:wrapcheck
	}

	booking := Booking{
		ID:        *rec.BookingID,
		CheckIn:   checkIn,
		NumGuests: *rec.NumGuests,
		RoomID:    *rec.RoomID,
		IsPaid:    rec.IsPaid,
	}

	if rec.CheckOut != nil {
		checkOut, err := time.Parse(constant.DateFormat, *rec.CheckOut)
		if err != nil {
			return Booking{}, failure.MalformedRecord(fmt.Sprintf("invalid check-out timestamp: %v", err)) //nolint:wrapcheck
		}

		booking.CheckOut = &checkOut
	}

	if rec.CheckoutReason != nil {
		booking.CheckoutReason = CheckoutReason(*rec.CheckoutReason)
	}

	if rec.CheckoutNotes != nil {
		booking.CheckoutNotes = *rec.CheckoutNotes
	}

	return booking, nil
}
