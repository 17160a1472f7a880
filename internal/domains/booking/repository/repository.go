package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

// ErrNoSnapshot reports a load from a source that does not exist yet. It is
// an expected outcome on first start, not a hard failure.
var ErrNoSnapshot = errors.New("no snapshot found")

// Snapshot is the full persisted desk state, written and read as one unit.
type Snapshot struct {
	NextID           int            `json:"next_id"`
	AvailableRooms   []int          `json:"available_rooms"`
	MaintenanceRooms []int          `json:"maintenance_rooms"`
	Bookings         []model.Record `json:"bookings"`
}

// Encode renders the snapshot in its on-disk form.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return data, nil
}

type Store interface {
	Save(ctx context.Context, path string, snapshot Snapshot) error
	Load(ctx context.Context, path string) (Snapshot, error)
}

type fileStoreImpl struct {
	otel otel.Otel
}

func NewFileStore(otel otel.Otel) Store {
	return &fileStoreImpl{
		otel: otel,
	}
}

// Save writes the snapshot atomically: the content goes to a uniquely named
// temp file in the target directory and is renamed over the destination, so a
// failed write never clobbers the prior on-disk state.
func (r *fileStoreImpl) Save(ctx context.Context, path string, snapshot Snapshot) (err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("snapshot.path", path)

	data, err := snapshot.Encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return failure.StorageUnavailable(fmt.Errorf("failed to create snapshot directory: %w", err)) //nolint:wrapcheck
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString())
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return failure.StorageUnavailable(fmt.Errorf("failed to write snapshot: %w", err)) //nolint:wrapcheck
	}

	if err = os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			log.Warn().Err(removeErr).Str("path", tmp).Msg("Failed to remove orphaned temp snapshot")
		}

		return failure.StorageUnavailable(fmt.Errorf("failed to move snapshot into place: %w", err)) //nolint:wrapcheck
	}

	return nil
}

// Load reads a snapshot back. A missing source yields ErrNoSnapshot;
// unparseable content yields a malformed-record failure. Neither touches any
// in-memory state, that is the caller's contract to keep.
func (r *fileStoreImpl) Load(ctx context.Context, path string) (snapshot Snapshot, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("snapshot.path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, ErrNoSnapshot
		}

		return Snapshot{}, failure.StorageUnavailable(fmt.Errorf("failed to read snapshot: %w", err)) //nolint:wrapcheck
	}

	if err = json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, failure.MalformedRecord(fmt.Sprintf("snapshot is not valid JSON: %v", err)) //nolint:wrapcheck
	}

	return snapshot, nil
}
