package integrity

import (
	"errors"

	"relation-checker/core/logger"
	"relation-checker/core/utils"
	"relation-checker/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for relationship checks.
type Handler struct {
	service *Service
	enabled []Kind
}

// NewHandler creates a new HTTP handler. GET /integrity runs the enabled kinds.
func NewHandler(service *Service, enabled []Kind) *Handler {
	return &Handler{service: service, enabled: enabled}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/rooms", h.HandleRoomCheck)
	group.Get("/stations", h.HandleStationCheck)
	group.Get("/room-stations", h.HandleRoomStationCheck)
}

// HandleIntegrityCheck runs every enabled check concurrently.
// @Summary Run All Relationship Checks
// @Description Runs the enabled room, station and room-to-station checks. With report=true a CSV is written per check.
// @Tags integrity
// @Accept json
// @Produce json
// @Param report query boolean false "Write CSV reports"
// @Success 200 {array} Result "Check Results"
// @Failure 409 {object} checks.AmbiguousFeatureError "Ambiguous Or Missing Feature"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all relationship checks", zap.Int("checks", len(h.enabled)))

	results, err := h.service.CheckAll(c.Context(), h.enabled)
	if err != nil {
		return h.fail(c, l, err)
	}

	if utils.ToBool(c.Query("report")) {
		for i := range results {
			if err := h.service.WriteReport(c.Context(), &results[i]); err != nil {
				return h.fail(c, l, err)
			}
		}
	}
	return c.JSON(results)
}

// HandleRoomCheck runs the room to room detail check.
// @Summary Check Room Details
// @Description Reports room details whose stored room GUID differs from the room they contain.
// @Tags integrity
// @Produce json
// @Param report query boolean false "Write a CSV report"
// @Success 200 {object} Result "Check Result"
// @Failure 409 {object} checks.AmbiguousFeatureError "Ambiguous Or Missing Feature"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/rooms [get]
func (h *Handler) HandleRoomCheck(c *fiber.Ctx) error {
	return h.runKind(c, KindRooms)
}

// HandleStationCheck runs the station to station detail check.
// @Summary Check Station Details
// @Description Reports station details whose stored station GUID differs from the station they contain.
// @Tags integrity
// @Produce json
// @Param report query boolean false "Write a CSV report"
// @Success 200 {object} Result "Check Result"
// @Failure 409 {object} checks.AmbiguousFeatureError "Ambiguous Or Missing Feature"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/stations [get]
func (h *Handler) HandleStationCheck(c *fiber.Ctx) error {
	return h.runKind(c, KindStations)
}

// HandleRoomStationCheck runs the room to station check.
// @Summary Check Room Stations
// @Description Reports rooms whose stored station GUID differs from the station detail containing them.
// @Tags integrity
// @Produce json
// @Param report query boolean false "Write a CSV report"
// @Success 200 {object} Result "Check Result"
// @Failure 409 {object} checks.AmbiguousFeatureError "Ambiguous Or Missing Feature"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/room-stations [get]
func (h *Handler) HandleRoomStationCheck(c *fiber.Ctx) error {
	return h.runKind(c, KindRoomStations)
}

func (h *Handler) runKind(c *fiber.Ctx, kind Kind) error {
	l := logger.WithRayID(h.service.logger, c).With(zap.String("check", string(kind)))

	result, err := h.service.Check(c.Context(), kind)
	if err != nil {
		return h.fail(c, l, err)
	}
	if utils.ToBool(c.Query("report")) {
		if err := h.service.WriteReport(c.Context(), &result); err != nil {
			return h.fail(c, l, err)
		}
	}
	return c.JSON(result)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var ambiguous *checks.AmbiguousFeatureError
	if errors.As(err, &ambiguous) {
		l.Warn("Check aborted on inconsistent data", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
			"layer": ambiguous.Layer,
			"where": ambiguous.Where,
			"count": ambiguous.Count,
		})
	}
	l.Error("Check failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
