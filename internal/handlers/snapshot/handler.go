package snapshot

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/repository"
	"frontdesk/internal/domains/booking/service"
	"frontdesk/shared/constant"
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
	router.Route("/snapshots", func(routerGroup chi.Router) {
		routerGroup.Post("/save", handler.Save)
		routerGroup.Post("/load", handler.Load)
	})
	router.Post("/reports", handler.WriteReport)
}

// Save persists the full desk state.
// @Summary Save a snapshot
// @Description Persist the full state to the default location, or to an explicit path.
// @Tags Snapshot
// @Accept json
// @Produce json
// @Param request body dto.SnapshotRequest false "Snapshot target"
// @Success 200 {object} response.Message "Snapshot saved"
// @Failure 503 {object} response.Error "Storage unavailable"
// @Router /v1/snapshots/save [post]
func (handler *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Save")
	defer scope.End()

	req := dto.SnapshotRequest{}
	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.Save(ctx, req.Path); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save snapshot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Snapshot saved")

	response.WithMessage(w, http.StatusOK, "Snapshot saved successfully")
}

// Load restores the full desk state.
// @Summary Load a snapshot
// @Description Replace all in-memory state from the default location, or from an explicit path. A missing source leaves state untouched.
// @Tags Snapshot
// @Accept json
// @Produce json
// @Param request body dto.SnapshotRequest false "Snapshot source"
// @Success 200 {object} response.Message "Snapshot loaded, or no prior state"
// @Failure 422 {object} response.Error "Snapshot content is malformed"
// @Failure 503 {object} response.Error "Storage unavailable"
// @Router /v1/snapshots/load [post]
func (handler *Handler) Load(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Load")
	defer scope.End()

	req := dto.SnapshotRequest{}
	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.Load(ctx, req.Path); err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			scope.AddEvent("No prior state")

			response.WithMessage(w, http.StatusOK, "No prior state found, state unchanged")

			return
		}

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load snapshot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Snapshot loaded")

	response.WithMessage(w, http.StatusOK, "Snapshot loaded successfully")
}

// WriteReport exports the plain-text desk report.
// @Summary Generate the desk report
// @Description Write the plain-text report to the fixed report location.
// @Tags Snapshot
// @Produce json
// @Success 201 {object} response.Data[dto.ReportResponse] "Report location"
// @Failure 503 {object} response.Error "Storage unavailable"
// @Router /v1/reports [post]
func (handler *Handler) WriteReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WriteReport")
	defer scope.End()

	path, err := handler.service.WriteReport(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to write report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Report written")

	response.WithJSON(w, http.StatusCreated, dto.ReportResponse{Path: path})
}
