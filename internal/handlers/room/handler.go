package room

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
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
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRoomStatus)
		routerGroup.Put("/{id}/maintenance", handler.MarkUnderMaintenance)
		routerGroup.Delete("/{id}/maintenance", handler.MarkRepaired)
	})
}

// GetRoomStatus returns the three room-id sets.
// @Summary Room status
// @Description Available, occupied and maintenance room ids.
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.RoomStatusResponse] "Room status"
// @Router /v1/rooms [get]
func (handler *Handler) GetRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomStatus")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.RoomStatus(ctx))
}

// MarkUnderMaintenance withdraws a room from service.
// @Summary Mark a room under maintenance
// @Description Move an available room to the maintenance set. No-op when the room is occupied or already in maintenance.
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Message "Room marked under maintenance"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/{id}/maintenance [put]
func (handler *Handler) MarkUnderMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkUnderMaintenance")
	defer scope.End()

	roomID, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		err = failure.BadRequestFromString("room id must be an integer")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	handler.service.MarkUnderMaintenance(ctx, roomID)

	response.WithMessage(w, http.StatusOK, "Room marked under maintenance")
}

// MarkRepaired returns a maintenance room to the available pool.
// @Summary Mark a room repaired
// @Description Move a maintenance room back to the available set. No-op when the room is not in maintenance.
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Message "Room marked repaired"
// @Failure 400 {object} response.Error
// @Router /v1/rooms/{id}/maintenance [delete]
func (handler *Handler) MarkRepaired(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkRepaired")
	defer scope.End()

	roomID, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		err = failure.BadRequestFromString("room id must be an integer")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	handler.service.MarkRepaired(ctx, roomID)

	response.WithMessage(w, http.StatusOK, "Room marked repaired")
}
