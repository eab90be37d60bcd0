package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Ristoranti-api/internal/application/analytics"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
	now func() time.Time
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log, now: time.Now}
}

// GetSummary godoc
// @Summary      KPI de la cadena en el período
// @Description  Ventas, pedidos, ticket medio, descuentos, delivery, comisiones y costo de personal
//
//	por locale y total. Sin store_ids se incluyen todos los locali.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        range       query  string  false  "7|30|90|365|custom (default 30)"
// @Param        start_date  query  string  false  "YYYY-MM-DD, solo con range=custom"
// @Param        end_date    query  string  false  "YYYY-MM-DD, solo con range=custom"
// @Param        store_ids   query  string  false  "locali separados por coma"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	w, storeIDs, err := periodFromQuery(c, h.now())
	if err != nil {
		return respondError(c, h.log, err)
	}
	summary, err := h.uc.GetSummary(c.Context(), storeIDs, w)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
