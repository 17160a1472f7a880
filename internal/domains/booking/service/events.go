package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"frontdesk/infras/kafka"
	"frontdesk/shared/constant"
	"frontdesk/shared/timezone"
)

const (
	EventBookingCheckedIn  = "booking.checked_in"
	EventBookingCheckedOut = "booking.checked_out"
	EventRoomMaintenance   = "room.maintenance"
	EventRoomRepaired      = "room.repaired"
	EventHistoryCleared    = "history.cleared"
)

type deskEvent struct {
	Type      string `json:"type"`
	At        string `json:"at"`
	BookingID int    `json:"booking_id,omitempty"`
	RoomID    int    `json:"room_id,omitempty"`
	Removed   int    `json:"removed,omitempty"`
}

// publish emits a desk event when the event stream is enabled. The writer is
// asynchronous; a publish failure never affects the operation that caused it.
func (s *serviceImpl) publish(ctx context.Context, event deskEvent) {
	if !s.cfg.Kafka.Enable || s.events == nil {
		return
	}

	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".publish")
	defer scope.End()

	event.At = timezone.Now().Format(constant.DateFormat)

	message := kafka.Message{
		Key:   uuid.NewString(),
		Value: event,
	}

	if err := s.events.SendMessages(ctx, s.cfg.Kafka.Topic, message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type", event.Type).Msg("failed to publish desk event")
	}
}
