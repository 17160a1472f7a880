package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/shared/validator"
)

func TestCheckInRequest_Validation(t *testing.T) {
	tests := []struct {
		name        string
		req         dto.CheckInRequest
		expectError bool
	}{
		{
			name: "valid request",
			req: dto.CheckInRequest{
				NumGuests: 2,
				CheckIn:   "2026-08-01T14:00:00Z",
				RoomID:    5,
				IsPaid:    true,
			},
			expectError: false,
		},
		{
			name: "zero guests",
			req: dto.CheckInRequest{
				CheckIn: "2026-08-01T14:00:00Z",
				RoomID:  5,
			},
			expectError: true,
		},
		{
			name: "missing check-in",
			req: dto.CheckInRequest{
				NumGuests: 2,
				RoomID:    5,
			},
			expectError: true,
		},
		{
			name: "missing room",
			req: dto.CheckInRequest{
				NumGuests: 2,
				CheckIn:   "2026-08-01T14:00:00Z",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckInRequest_CheckInTime(t *testing.T) {
	req := dto.CheckInRequest{CheckIn: "2026-08-01T14:00:00Z"}

	got, err := req.CheckInTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC), got)

	req.CheckIn = "01/08/2026 14:00"
	_, err = req.CheckInTime()
	assert.Error(t, err)
}

func TestCheckOutRequest_Validation(t *testing.T) {
	tests := []struct {
		name        string
		req         dto.CheckOutRequest
		expectError bool
	}{
		{
			name: "normal checkout",
			req: dto.CheckOutRequest{
				CheckOut: "2026-08-02T11:00:00Z",
				Reason:   "Normal",
			},
			expectError: false,
		},
		{
			name: "emergency checkout with notes",
			req: dto.CheckOutRequest{
				CheckOut: "2026-08-02T11:00:00Z",
				Reason:   "Emergency",
				Notes:    "guest fell ill",
			},
			expectError: false,
		},
		{
			name: "emergency checkout requires notes",
			req: dto.CheckOutRequest{
				CheckOut: "2026-08-02T11:00:00Z",
				Reason:   "Emergency",
			},
			expectError: true,
		},
		{
			name: "unknown reason",
			req: dto.CheckOutRequest{
				CheckOut: "2026-08-02T11:00:00Z",
				Reason:   "Whatever",
			},
			expectError: true,
		},
		{
			name: "missing check-out",
			req: dto.CheckOutRequest{
				Reason: "Normal",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckOutRequest_CheckoutNotes(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CheckOutRequest
		want string
	}{
		{
			name: "emergency keeps notes",
			req:  dto.CheckOutRequest{Reason: "Emergency", Notes: "broken window"},
			want: "broken window",
		},
		{
			name: "normal drops notes",
			req:  dto.CheckOutRequest{Reason: "Normal", Notes: "ignored"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.CheckoutNotes())
		})
	}
}

func TestBookingResponse_FromModel(t *testing.T) {
	checkIn := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 2, 11, 0, 0, 0, time.UTC)

	t.Run("current booking", func(t *testing.T) {
		var res dto.BookingResponse
		res.FromModel(model.Booking{
			ID:        1,
			CheckIn:   checkIn,
			NumGuests: 2,
			RoomID:    5,
			IsPaid:    true,
		})

		assert.Equal(t, 1, res.ID)
		assert.Equal(t, "2026-08-01T14:00:00Z", res.CheckIn)
		assert.Empty(t, res.CheckOut)
		assert.Equal(t, "Currently checked in", res.Status)
	})

	t.Run("checked-out booking", func(t *testing.T) {
		var res dto.BookingResponse
		res.FromModel(model.Booking{
			ID:             2,
			CheckIn:        checkIn,
			CheckOut:       &checkOut,
			NumGuests:      1,
			RoomID:         6,
			CheckoutReason: model.CheckoutReasonEmergency,
			CheckoutNotes:  "guest fell ill",
		})

		assert.Equal(t, "2026-08-02T11:00:00Z", res.CheckOut)
		assert.Equal(t, "Emergency", res.CheckoutReason)
		assert.Equal(t, "Checked out (Emergency): guest fell ill", res.Status)
	})
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	checkIn := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)

	var res dto.GetBookingsResponse
	res.FromModels([]model.Booking{
		{ID: 1, CheckIn: checkIn, NumGuests: 2, RoomID: 5},
		{ID: 2, CheckIn: checkIn, NumGuests: 1, RoomID: 6},
	})

	assert.Equal(t, 2, res.TotalData)
	require.Len(t, res.Bookings, 2)
	assert.Equal(t, 1, res.Bookings[0].ID)
	assert.Equal(t, 2, res.Bookings[1].ID)

	res.FromModels(nil)
	assert.Zero(t, res.TotalData)
	assert.Empty(t, res.Bookings)
}
