package booking

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"
)

type Handler struct {
	service service.Desk
	otel    otel.Otel
}

func New(service service.Desk, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CheckIn)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/stats", handler.GetStats)
		routerGroup.Get("/{id}", handler.GetBooking)
		routerGroup.Post("/{id}/checkout", handler.CheckOut)
		routerGroup.Delete("/checked-out", handler.ClearCheckedOut)
	})
}

// CheckIn handles a new guest check-in.
// @Summary Check in a guest
// @Description Create a booking for an available room.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CheckInRequest true "Check-In Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Room not available"
// @Router /v1/bookings [post]
func (handler *Handler) CheckIn(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	req := dto.CheckInRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.CheckIn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Guest checked in")

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists bookings, optionally filtered by status.
// @Summary List bookings
// @Description List all bookings, or only current / checked-out ones.
// @Tags Booking
// @Produce json
// @Param status query string false "Filter by status (current, checked_out)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	var bookings dto.GetBookingsResponse

	switch status := r.URL.Query().Get(constant.RequestParamStatus); status {
	case constant.Empty:
		bookings = handler.service.Bookings(ctx)
	case constant.BookingStatusCurrent:
		bookings = handler.service.CurrentBookings(ctx)
	case constant.BookingStatusCheckedOut:
		bookings = handler.service.CheckedOutBookings(ctx)
	default:
		err := failure.BadRequestFromString("unknown status filter: " + status)
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBooking returns a single booking by id.
// @Summary Get a booking
// @Description Look up one booking by its id.
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "Booking not found"
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	bookingID, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		err = failure.BadRequestFromString("booking id must be an integer")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Booking(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetStats returns desk summary counters.
// @Summary Desk statistics
// @Description Current guest total and room pool counters.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse] "Desk statistics"
// @Router /v1/bookings/stats [get]
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Stats(ctx))
}

// CheckOut handles a guest check-out.
// @Summary Check out a booking
// @Description Check out a current booking with a reason and optional notes.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.CheckOutRequest true "Check-Out Request"
// @Success 200 {object} response.Message "Checked out"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Booking cannot be checked out"
// @Router /v1/bookings/{id}/checkout [post]
func (handler *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	bookingID, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		err = failure.BadRequestFromString("booking id must be an integer")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.CheckOutRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	ok, err := handler.service.CheckOut(ctx, bookingID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out")

		response.WithError(w, err)

		return
	}

	if !ok {
		err := failure.Conflict("booking cannot be checked out: it may not exist, may already be checked out, or the check-out time is not after check-in")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest checked out")

	response.WithMessage(w, http.StatusOK, "Checked out successfully")
}

// ClearCheckedOut purges checked-out bookings from the ledger.
// @Summary Clear checked-out bookings
// @Description Remove every checked-out booking. Irreversible; confirmation is the caller's responsibility.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.ClearCheckedOutResponse] "Number of bookings removed"
// @Router /v1/bookings/checked-out [delete]
func (handler *Handler) ClearCheckedOut(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearCheckedOut")
	defer scope.End()

	removed := handler.service.ClearCheckedOut(ctx)

	scope.AddEvent("Checked-out bookings cleared")

	response.WithJSON(w, http.StatusOK, dto.ClearCheckedOutResponse{Removed: removed})
}
