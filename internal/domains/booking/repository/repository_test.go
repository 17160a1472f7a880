package repository_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/repository"
	"frontdesk/shared/failure"
)

func testSnapshot() repository.Snapshot {
	booking := model.Booking{
		ID:        1,
		CheckIn:   time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC),
		NumGuests: 2,
		RoomID:    5,
		IsPaid:    true,
	}

	return repository.Snapshot{
		NextID:           2,
		AvailableRooms:   []int{1, 2, 3, 4},
		MaintenanceRooms: []int{6},
		Bookings:         []model.Record{booking.ToRecord()},
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := repository.NewFileStore(mocks.NewOtel())
	path := filepath.Join(t.TempDir(), "frontdesk_data.json")

	snapshot := testSnapshot()

	require.NoError(t, store.Save(context.Background(), path, snapshot))

	got, err := store.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, snapshot, got)
}

func TestFileStore_SaveCreatesDirectory(t *testing.T) {
	store := repository.NewFileStore(mocks.NewOtel())
	path := filepath.Join(t.TempDir(), "nested", "deeper", "frontdesk_data.json")

	require.NoError(t, store.Save(context.Background(), path, testSnapshot()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	store := repository.NewFileStore(mocks.NewOtel())
	dir := t.TempDir()
	path := filepath.Join(dir, "frontdesk_data.json")

	require.NoError(t, store.Save(context.Background(), path, testSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "frontdesk_data.json", entries[0].Name())
}

func TestFileStore_SaveOverwritesPriorSnapshot(t *testing.T) {
	store := repository.NewFileStore(mocks.NewOtel())
	path := filepath.Join(t.TempDir(), "frontdesk_data.json")

	first := testSnapshot()
	require.NoError(t, store.Save(context.Background(), path, first))

	second := first
	second.NextID = 9
	second.MaintenanceRooms = []int{6, 7}
	require.NoError(t, store.Save(context.Background(), path, second))

	got, err := store.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := repository.NewFileStore(mocks.NewOtel())
	path := filepath.Join(t.TempDir(), "does_not_exist.json")

	_, err := store.Load(context.Background(), path)

	assert.ErrorIs(t, err, repository.ErrNoSnapshot)
}

func TestFileStore_LoadCorruptContent(t *testing.T) {
	store := repository.NewFileStore(mocks.NewOtel())
	path := filepath.Join(t.TempDir(), "frontdesk_data.json")

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load(context.Background(), path)

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
}

func TestSnapshot_EncodeIsStable(t *testing.T) {
	snapshot := testSnapshot()

	first, err := snapshot.Encode()
	require.NoError(t, err)

	second, err := snapshot.Encode()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
