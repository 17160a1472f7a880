package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	bookingMocks "frontdesk/internal/domains/booking/mocks"
	"frontdesk/internal/domains/booking/repository"
	"frontdesk/internal/domains/booking/service"
)

func newReportDesk(t *testing.T, cfg *config.Config) service.Desk {
	ctrl := gomock.NewController(t)

	mockStore := bookingMocks.NewMockStore(ctrl)
	mockStore.EXPECT().
		Load(gomock.Any(), gomock.Any()).
		Return(repository.Snapshot{}, repository.ErrNoSnapshot)
	mockStore.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	return service.New(cfg, mockStore, nil, nil, mocks.NewOtel())
}

func TestDeskService_WriteReport(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t, 10)
	svc := newReportDesk(t, cfg)

	req := checkInRequest(5)
	req.NumGuests = 3
	_, err := svc.CheckIn(ctx, req)
	require.NoError(t, err)

	svc.MarkUnderMaintenance(ctx, 9)

	path, err := svc.WriteReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Storage.DataDir, "frontdesk_report.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "=== Front Desk Report ===")
	assert.Contains(t, content, "Generated on: ")
	assert.Contains(t, content, "== Current Bookings ==")
	assert.Contains(t, content, "ID: 1, Room: 5, Guests: 3, Check-in: 2026-08-01 14:00:00, Paid: Yes")
	assert.Contains(t, content, "Available rooms: 8")
	assert.Contains(t, content, "Booked rooms: 1")
	assert.Contains(t, content, "Maintenance rooms: 1")
	assert.Contains(t, content, "Total guests currently staying: 3")
}

func TestDeskService_WriteReportEmptyState(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t, 10)
	cfg.Storage.ReportFile = "custom_report.txt"
	svc := newReportDesk(t, cfg)

	path, err := svc.WriteReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Storage.DataDir, "custom_report.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "No current bookings")
	assert.Contains(t, content, "Available rooms: 10")
	assert.Contains(t, content, "Total guests currently staying: 0")
}
