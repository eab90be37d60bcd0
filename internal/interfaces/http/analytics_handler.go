package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/analytics"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// AnalyticsHandler maneja el análisis de cannibalizzazione entre locali.
type AnalyticsHandler struct {
	uc  *analytics.CannibalizationUseCase
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.CannibalizationUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// Cannibalization godoc
// @Summary      Impacto de la apertura de un locale sobre los existentes
// @Description  Media diaria de ventas N días antes y después de la apertura del nuevo locale.
//
//	Sin existing_store_ids se comparan todos los demás locali.
//
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        new_store_id        query  string  true   "locale nuevo (con fecha de apertura)"
// @Param        existing_store_ids  query  string  false  "locali a comparar, separados por coma"
// @Param        window_days         query  int     false  "días por lado (default 30, max 365)"
// @Success      200  {object}  dto.CannibalizationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/cannibalization [get]
func (h *AnalyticsHandler) Cannibalization(c *fiber.Ctx) error {
	req := dto.CannibalizationRequest{
		NewStoreID:       c.Query("new_store_id"),
		ExistingStoreIDs: splitIDs(c.Query("existing_store_ids")),
		WindowDays:       c.QueryInt("window_days", 0),
	}
	if ok, err := validateStruct(c, &req); !ok {
		return err
	}
	out, err := h.uc.Analyze(c.Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
