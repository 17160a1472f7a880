package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"
)

const reportTimeFormat = "2006-01-02 15:04:05"

// WriteReport renders the plain-text desk report and writes it to the fixed
// report location. One-way export, never read back.
func (s *serviceImpl) WriteReport(ctx context.Context) (path string, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".WriteReport")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	content := s.renderReportLocked()
	s.mu.Unlock()

	path = s.reportPath()

	if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to write report")

		return "", failure.StorageUnavailable(fmt.Errorf("failed to write report: %w", err)) //nolint:wrapcheck
	}

	log.Info().Str("path", path).Msg("report written")

	return path, nil
}

func (s *serviceImpl) renderReportLocked() string {
	var b strings.Builder

	b.WriteString("=== Front Desk Report ===\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", timezone.Now().Format(reportTimeFormat))

	b.WriteString("== Current Bookings ==\n")

	current := s.currentLocked()
	if len(current) == 0 {
		b.WriteString("No current bookings\n")
	}

	for _, booking := range current {
		paid := "No"
		if booking.IsPaid {
			paid = "Yes"
		}

		fmt.Fprintf(&b, "ID: %d, Room: %d, Guests: %d, Check-in: %s, Paid: %s\n",
			booking.ID, booking.RoomID, booking.NumGuests,
			timezone.Format(booking.CheckIn, reportTimeFormat), paid)
	}

	b.WriteString("\n== Room Status ==\n")
	fmt.Fprintf(&b, "Available rooms: %d\n", len(s.available))
	fmt.Fprintf(&b, "Booked rooms: %d\n", len(current))
	fmt.Fprintf(&b, "Maintenance rooms: %d\n", len(s.maintenance))

	b.WriteString("\n== Statistics ==\n")
	fmt.Fprintf(&b, "Total guests currently staying: %d\n", s.totalGuestsLocked())

	return b.String()
}
