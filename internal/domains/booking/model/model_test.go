package model_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/domains/booking/model"
	"frontdesk/shared/failure"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestBooking_IsCurrent(t *testing.T) {
	checkOut := time.Date(2026, 8, 2, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking model.Booking
		want    bool
	}{
		{
			name:    "no check-out yet",
			booking: model.Booking{ID: 1, CheckIn: time.Now()},
			want:    true,
		},
		{
			name:    "checked out",
			booking: model.Booking{ID: 1, CheckIn: time.Now(), CheckOut: &checkOut},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.IsCurrent())
		})
	}
}

func TestBooking_Status(t *testing.T) {
	checkOut := time.Date(2026, 8, 2, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking model.Booking
		want    string
	}{
		{
			name:    "currently checked in",
			booking: model.Booking{ID: 1},
			want:    "Currently checked in",
		},
		{
			name: "normal checkout",
			booking: model.Booking{
				ID:             1,
				CheckOut:       &checkOut,
				CheckoutReason: model.CheckoutReasonNormal,
			},
			want: "Checked out (Normal)",
		},
		{
			name: "emergency checkout with notes",
			booking: model.Booking{
				ID:             1,
				CheckOut:       &checkOut,
				CheckoutReason: model.CheckoutReasonEmergency,
				CheckoutNotes:  "guest fell ill",
			},
			want: "Checked out (Emergency): guest fell ill",
		},
		{
			name: "emergency checkout without notes",
			booking: model.Booking{
				ID:             1,
				CheckOut:       &checkOut,
				CheckoutReason: model.CheckoutReasonEmergency,
			},
			want: "Checked out (Emergency)",
		},
		{
			name: "normal checkout ignores notes",
			booking: model.Booking{
				ID:             1,
				CheckOut:       &checkOut,
				CheckoutReason: model.CheckoutReasonNormal,
				CheckoutNotes:  "should not show",
			},
			want: "Checked out (Normal)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.Status())
		})
	}
}

func TestBooking_RecordRoundTrip(t *testing.T) {
	checkIn := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 2, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking model.Booking
	}{
		{
			name: "current booking",
			booking: model.Booking{
				ID:        3,
				CheckIn:   checkIn,
				NumGuests: 2,
				RoomID:    12,
				IsPaid:    true,
			},
		},
		{
			name: "checked-out booking with emergency notes",
			booking: model.Booking{
				ID:             7,
				CheckIn:        checkIn,
				CheckOut:       &checkOut,
				NumGuests:      1,
				RoomID:         4,
				IsPaid:         false,
				CheckoutReason: model.CheckoutReasonEmergency,
				CheckoutNotes:  "burst pipe",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.booking.ToRecord()

			got, err := model.FromRecord(rec)
			require.NoError(t, err)
			assert.Equal(t, tt.booking, got)
		})
	}
}

func TestBooking_ToRecord_NullMarkers(t *testing.T) {
	booking := model.Booking{
		ID:        1,
		CheckIn:   time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC),
		NumGuests: 2,
		RoomID:    5,
	}

	data, err := json.Marshal(booking.ToRecord())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	// Optional fields are always present as explicit nulls.
	for _, key := range []string{"check_out", "checkout_reason", "checkout_notes"} {
		val, ok := raw[key]
		require.True(t, ok, "key %s should be present", key)
		assert.Equal(t, "null", string(val))
	}
}

func TestFromRecord_Malformed(t *testing.T) {
	tests := []struct {
		name string
		rec  model.Record
	}{
		{
			name: "missing booking id",
			rec: model.Record{
				CheckIn:   strPtr("2026-08-01T14:00:00Z"),
				NumGuests: intPtr(2),
				RoomID:    intPtr(5),
			},
		},
		{
			name: "missing check-in",
			rec: model.Record{
				BookingID: intPtr(1),
				NumGuests: intPtr(2),
				RoomID:    intPtr(5),
			},
		},
		{
			name: "missing guests",
			rec: model.Record{
				BookingID: intPtr(1),
				CheckIn:   strPtr("2026-08-01T14:00:00Z"),
				RoomID:    intPtr(5),
			},
		},
		{
			name: "missing room id",
			rec: model.Record{
				BookingID: intPtr(1),
				CheckIn:   strPtr("2026-08-01T14:00:00Z"),
				NumGuests: intPtr(2),
			},
		},
		{
			name: "unparseable check-in",
			rec: model.Record{
				BookingID: intPtr(1),
				CheckIn:   strPtr("yesterday"),
				NumGuests: intPtr(2),
				RoomID:    intPtr(5),
			},
		},
		{
			name: "unparseable check-out",
			rec: model.Record{
				BookingID: intPtr(1),
				CheckIn:   strPtr("2026-08-01T14:00:00Z"),
				NumGuests: intPtr(2),
				RoomID:    intPtr(5),
				CheckOut:  strPtr("tomorrow"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.FromRecord(tt.rec)

			require.Error(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
		})
	}
}

func TestFromRecord_OmittedOptionalsDefault(t *testing.T) {
	// A record written before the checkout fields existed.
	var rec model.Record
	err := json.Unmarshal([]byte(`{
		"booking_id": 2,
		"check_in": "2026-08-01T14:00:00Z",
		"num_guests": 3,
		"room_id": 9
	}`), &rec)
	require.NoError(t, err)

	booking, err := model.FromRecord(rec)
	require.NoError(t, err)

	assert.Nil(t, booking.CheckOut)
	assert.False(t, booking.IsPaid)
	assert.Equal(t, model.CheckoutReasonNone, booking.CheckoutReason)
	assert.Empty(t, booking.CheckoutNotes)
	assert.True(t, booking.IsCurrent())
}
