package dto

import (
	"time"

	"frontdesk/internal/domains/booking/model"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

type CheckInRequest struct {
	NumGuests int    `json:"num_guests" validate:"required,gte=1"`
	CheckIn   string `json:"check_in"   validate:"required"`
	RoomID    int    `json:"room_id"    validate:"required,gte=1"`
	IsPaid    bool   `json:"is_paid"`
}

// CheckInTime parses the requested check-in timestamp.
func (c *CheckInRequest) CheckInTime() (time.Time, error) {
	checkIn, err := time.Parse(constant.DateFormat, c.CheckIn)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid check_in timestamp, expected RFC 3339") //nolint:wrapcheck
	}

	return checkIn, nil
}

type CheckOutRequest struct {
	CheckOut string `json:"check_out" validate:"required"`
	Reason   string `json:"reason"    validate:"required,oneof=Normal Emergency"`
	Notes    string `json:"notes"     validate:"required_if=Reason Emergency"`
}

// CheckOutTime parses the requested check-out timestamp.
func (c *CheckOutRequest) CheckOutTime() (time.Time, error) {
	checkOut, err := time.Parse(constant.DateFormat, c.CheckOut)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid check_out timestamp, expected RFC 3339") //nolint:wrapcheck
	}

	return checkOut, nil
}

// CheckoutNotes returns the notes as stored on the booking: emergency
// checkouts carry them, normal ones never do.
func (c *CheckOutRequest) CheckoutNotes() string {
	if model.CheckoutReason(c.Reason) == model.CheckoutReasonEmergency {
		return c.Notes
	}

	return constant.Empty
}

type BookingResponse struct {
	ID             int    `json:"id"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out,omitempty"`
	NumGuests      int    `json:"num_guests"`
	RoomID         int    `json:"room_id"`
	IsPaid         bool   `json:"is_paid"`
	CheckoutReason string `json:"checkout_reason,omitempty"`
	CheckoutNotes  string `json:"checkout_notes,omitempty"`
	Status         string `json:"status"`
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.CheckIn = booking.CheckIn.Format(constant.DateFormat)
	r.NumGuests = booking.NumGuests
	r.RoomID = booking.RoomID
	r.IsPaid = booking.IsPaid
	r.CheckoutReason = string(booking.CheckoutReason)
	r.CheckoutNotes = booking.CheckoutNotes
	r.Status = booking.Status()

	if booking.CheckOut != nil {
		r.CheckOut = booking.CheckOut.Format(constant.DateFormat)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.TotalData = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type RoomStatusResponse struct {
	AvailableRooms   []int `json:"available_rooms"`
	OccupiedRooms    []int `json:"occupied_rooms"`
	MaintenanceRooms []int `json:"maintenance_rooms"`
}

type StatsResponse struct {
	TotalGuests      int `json:"total_guests"`
	CurrentBookings  int `json:"current_bookings"`
	AvailableRooms   int `json:"available_rooms"`
	OccupiedRooms    int `json:"occupied_rooms"`
	MaintenanceRooms int `json:"maintenance_rooms"`
}

type ClearCheckedOutResponse struct {
	Removed int `json:"removed"`
}

type SnapshotRequest struct {
	// Path overrides the default snapshot location when set.
	Path string `json:"path" validate:"omitempty"`
}

type ReportResponse struct {
	Path string `json:"path"`
}
