package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/infras/s3"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/repository"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

// Desk is the single source of truth for the room pool and the booking
// ledger. Every mutating operation persists the full snapshot to the default
// location as a post-condition; the in-memory state stays authoritative when
// that write fails.
type Desk interface {
	CheckIn(ctx context.Context, req dto.CheckInRequest) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, bookingID int, req dto.CheckOutRequest) (bool, error)
	MarkUnderMaintenance(ctx context.Context, roomID int)
	MarkRepaired(ctx context.Context, roomID int)
	Booking(ctx context.Context, bookingID int) (dto.BookingResponse, error)
	Bookings(ctx context.Context) dto.GetBookingsResponse
	CurrentBookings(ctx context.Context) dto.GetBookingsResponse
	CheckedOutBookings(ctx context.Context) dto.GetBookingsResponse
	TotalGuests(ctx context.Context) int
	RoomStatus(ctx context.Context) dto.RoomStatusResponse
	Stats(ctx context.Context) dto.StatsResponse
	ClearCheckedOut(ctx context.Context) int
	Save(ctx context.Context, path string) error
	Load(ctx context.Context, path string) error
	WriteReport(ctx context.Context) (string, error)
}

type serviceImpl struct {
	cfg    *config.Config
	store  repository.Store
	events kafka.Client
	backup s3.S3
	otel   otel.Otel

	// mu guards everything below. The domain itself is single-writer, the
	// HTTP transport is not.
	mu          sync.Mutex
	bookings    []model.Booking
	nextID      int
	available   map[int]struct{}
	maintenance map[int]struct{}
	roomCount   int
}

func New(cfg *config.Config, store repository.Store, events kafka.Client, backup s3.S3, otel otel.Otel) Desk {
	roomCount := cfg.App.RoomCount
	if roomCount <= 0 {
		roomCount = constant.DefaultRoomCount
	}

	svc := &serviceImpl{
		cfg:         cfg,
		store:       store,
		events:      events,
		backup:      backup,
		otel:        otel,
		nextID:      1,
		available:   make(map[int]struct{}, roomCount),
		maintenance: make(map[int]struct{}),
		roomCount:   roomCount,
	}

	for roomID := 1; roomID <= roomCount; roomID++ {
		svc.available[roomID] = struct{}{}
	}

	// Restore the previous session, if any. A missing snapshot just means a
	// first start.
	if err := svc.Load(context.Background(), ""); err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			log.Info().Msg("no prior snapshot found, starting with empty state")
		} else {
			log.Error().Err(err).Msg("failed to restore snapshot, starting with empty state")
		}
	}

	return svc
}

func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, err := req.CheckInTime()
	if err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.available[req.RoomID]; !ok {
		log.Warn().Int("room_id", req.RoomID).Msg("check-in rejected, room not available")

		return res, failure.RoomUnavailable(req.RoomID) //nolint:wrapcheck
	}

	booking := model.Booking{
		ID:        s.nextID,
		CheckIn:   checkIn,
		NumGuests: req.NumGuests,
		RoomID:    req.RoomID,
		IsPaid:    req.IsPaid,
	}

	s.bookings = append(s.bookings, booking)
	delete(s.available, req.RoomID)
	s.nextID++

	s.persistLocked(ctx)
	s.publish(ctx, deskEvent{Type: EventBookingCheckedIn, BookingID: booking.ID, RoomID: booking.RoomID})

	log.Info().Int("booking_id", booking.ID).Int("room_id", booking.RoomID).Msg("guest checked in")

	res.FromModel(booking)

	return res, nil
}

// CheckOut reports a single collapsed negative outcome: an unknown booking id,
// a booking already checked out, and a check-out time not after check-in all
// yield false with no state change.
func (s *serviceImpl) CheckOut(ctx context.Context, bookingID int, req dto.CheckOutRequest) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkOut, err := req.CheckOutTime()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		booking := &s.bookings[i]
		if booking.ID != bookingID {
			continue
		}

		if booking.CheckOut != nil || !checkOut.After(booking.CheckIn) {
			return false, nil
		}

		booking.CheckOut = &checkOut
		booking.CheckoutReason = model.CheckoutReason(req.Reason)
		booking.CheckoutNotes = req.CheckoutNotes()
		s.available[booking.RoomID] = struct{}{}

		s.persistLocked(ctx)
		s.publish(ctx, deskEvent{Type: EventBookingCheckedOut, BookingID: booking.ID, RoomID: booking.RoomID})

		log.Info().Int("booking_id", booking.ID).Int("room_id", booking.RoomID).Str("reason", req.Reason).Msg("guest checked out")

		return true, nil
	}

	return false, nil
}

// MarkUnderMaintenance withdraws an available room from service. Occupied
// rooms and rooms already in maintenance are left untouched.
func (s *serviceImpl) MarkUnderMaintenance(ctx context.Context, roomID int) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkUnderMaintenance")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.available[roomID]; !ok {
		return
	}

	delete(s.available, roomID)
	s.maintenance[roomID] = struct{}{}

	s.persistLocked(ctx)
	s.publish(ctx, deskEvent{Type: EventRoomMaintenance, RoomID: roomID})

	log.Info().Int("room_id", roomID).Msg("room marked under maintenance")
}

// MarkRepaired returns a maintenance room to the available pool.
func (s *serviceImpl) MarkRepaired(ctx context.Context, roomID int) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRepaired")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.maintenance[roomID]; !ok {
		return
	}

	delete(s.maintenance, roomID)
	s.available[roomID] = struct{}{}

	s.persistLocked(ctx)
	s.publish(ctx, deskEvent{Type: EventRoomRepaired, RoomID: roomID})

	log.Info().Int("room_id", roomID).Msg("room marked repaired")
}

func (s *serviceImpl) Booking(ctx context.Context, bookingID int) (res dto.BookingResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, booking := range s.bookings {
		if booking.ID == bookingID {
			res.FromModel(booking)

			return res, nil
		}
	}

	return res, failure.NotFound("booking not found") //nolint:wrapcheck
}

func (s *serviceImpl) Bookings(ctx context.Context) (res dto.GetBookingsResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bookings")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	res.FromModels(s.bookings)

	return res
}

func (s *serviceImpl) CurrentBookings(ctx context.Context) (res dto.GetBookingsResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CurrentBookings")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	res.FromModels(s.currentLocked())

	return res
}

func (s *serviceImpl) CheckedOutBookings(ctx context.Context) (res dto.GetBookingsResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckedOutBookings")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	checkedOut := make([]model.Booking, 0)
	for _, booking := range s.bookings {
		if !booking.IsCurrent() {
			checkedOut = append(checkedOut, booking)
		}
	}

	res.FromModels(checkedOut)

	return res
}

func (s *serviceImpl) TotalGuests(ctx context.Context) int {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TotalGuests")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalGuestsLocked()
}

func (s *serviceImpl) RoomStatus(ctx context.Context) dto.RoomStatusResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomStatus")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return dto.RoomStatusResponse{
		AvailableRooms:   sortedRoomIDs(s.available),
		OccupiedRooms:    s.occupiedLocked(),
		MaintenanceRooms: sortedRoomIDs(s.maintenance),
	}
}

func (s *serviceImpl) Stats(ctx context.Context) dto.StatsResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	occupied := s.occupiedLocked()

	return dto.StatsResponse{
		TotalGuests:      s.totalGuestsLocked(),
		CurrentBookings:  len(occupied),
		AvailableRooms:   len(s.available),
		OccupiedRooms:    len(occupied),
		MaintenanceRooms: len(s.maintenance),
	}
}

// ClearCheckedOut purges every checked-out booking from the ledger. The purge
// is irreversible; callers own any confirmation step.
func (s *serviceImpl) ClearCheckedOut(ctx context.Context) int {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClearCheckedOut")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]model.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		if booking.IsCurrent() {
			kept = append(kept, booking)
		}
	}

	removed := len(s.bookings) - len(kept)
	s.bookings = kept

	s.persistLocked(ctx)

	if removed > 0 {
		s.publish(ctx, deskEvent{Type: EventHistoryCleared, Removed: removed})
		log.Info().Int("removed", removed).Msg("cleared checked-out bookings")
	}

	return removed
}

// Save persists the full state to the given path, or to the default location
// when path is empty.
func (s *serviceImpl) Save(ctx context.Context, path string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	if path == "" {
		path = s.defaultSnapshotPath()
	}

	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	return s.store.Save(ctx, path, snapshot) //nolint:wrapcheck
}

// Load replaces all in-memory state from the given path (default location
// when empty). A missing source returns repository.ErrNoSnapshot and corrupt
// content a malformed-record failure; in both cases prior state is preserved.
func (s *serviceImpl) Load(ctx context.Context, path string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	if path == "" {
		path = s.defaultSnapshotPath()
	}

	snapshot, err := s.store.Load(ctx, path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	bookings := make([]model.Booking, 0, len(snapshot.Bookings))
	for _, rec := range snapshot.Bookings {
		booking, err := model.FromRecord(rec)
		if err != nil {
			return err //nolint:wrapcheck
		}

		bookings = append(bookings, booking)
	}

	nextID := snapshot.NextID
	if nextID < 1 {
		nextID = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = bookings
	s.nextID = nextID

	s.available = make(map[int]struct{}, len(snapshot.AvailableRooms))
	for _, roomID := range snapshot.AvailableRooms {
		s.available[roomID] = struct{}{}
	}

	s.maintenance = make(map[int]struct{}, len(snapshot.MaintenanceRooms))
	for _, roomID := range snapshot.MaintenanceRooms {
		s.maintenance[roomID] = struct{}{}
	}

	log.Info().Str("path", path).Int("bookings", len(bookings)).Msg("state restored from snapshot")

	return nil
}

func (s *serviceImpl) currentLocked() []model.Booking {
	current := make([]model.Booking, 0)
	for _, booking := range s.bookings {
		if booking.IsCurrent() {
			current = append(current, booking)
		}
	}

	return current
}

func (s *serviceImpl) totalGuestsLocked() int {
	total := 0
	for _, booking := range s.bookings {
		if booking.IsCurrent() {
			total += booking.NumGuests
		}
	}

	return total
}

func (s *serviceImpl) occupiedLocked() []int {
	occupied := make([]int, 0)
	for _, booking := range s.bookings {
		if booking.IsCurrent() {
			occupied = append(occupied, booking.RoomID)
		}
	}

	sort.Ints(occupied)

	return occupied
}

func (s *serviceImpl) snapshotLocked() repository.Snapshot {
	records := make([]model.Record, len(s.bookings))
	for i := range s.bookings {
		records[i] = s.bookings[i].ToRecord()
	}

	return repository.Snapshot{
		NextID:           s.nextID,
		AvailableRooms:   sortedRoomIDs(s.available),
		MaintenanceRooms: sortedRoomIDs(s.maintenance),
		Bookings:         records,
	}
}

// persistLocked writes the snapshot to the default location after a mutation.
// A failed write is logged but does not void the in-memory effect; memory is
// the source of truth.
func (s *serviceImpl) persistLocked(ctx context.Context) {
	path := s.defaultSnapshotPath()
	snapshot := s.snapshotLocked()

	if err := s.store.Save(ctx, path, snapshot); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to persist snapshot, in-memory state unchanged")

		return
	}

	s.backupSnapshot(ctx, snapshot)
}

// backupSnapshot ships the snapshot off-site when the backup target is
// configured. Fire and forget.
func (s *serviceImpl) backupSnapshot(ctx context.Context, snapshot repository.Snapshot) {
	if !s.cfg.External.S3.Enable || s.backup == nil {
		return
	}

	data, err := snapshot.Encode()
	if err != nil {
		log.Error().Err(err).Msg("failed to encode snapshot for backup")

		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.backup.UploadSnapshot(c, s.snapshotFileName(), data); err != nil {
			log.Error().Err(err).Msg("failed to back up snapshot")
		}
	}()
}

func (s *serviceImpl) snapshotFileName() string {
	if s.cfg.Storage.SnapshotFile != "" {
		return s.cfg.Storage.SnapshotFile
	}

	return constant.DefaultSnapshotFile
}

func (s *serviceImpl) defaultSnapshotPath() string {
	return filepath.Join(s.dataDir(), s.snapshotFileName())
}

func (s *serviceImpl) reportPath() string {
	name := s.cfg.Storage.ReportFile
	if name == "" {
		name = constant.DefaultReportFile
	}

	return filepath.Join(s.dataDir(), name)
}

// dataDir resolves the storage directory: the configured one, or the
// per-user documents directory.
func (s *serviceImpl) dataDir() string {
	if s.cfg.Storage.DataDir != "" {
		return s.cfg.Storage.DataDir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve home directory, using working directory")

		return "."
	}

	return filepath.Join(home, "Documents")
}

func sortedRoomIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}
