package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/analytics"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/application/usecase"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// CostHandler costos fijos y reporte mensual de costos por locale.
type CostHandler struct {
	uc     *usecase.FixedCostUseCase
	report *analytics.CostReportUseCase
	log    *logger.Logger
}

// NewCostHandler construye el handler.
func NewCostHandler(uc *usecase.FixedCostUseCase, report *analytics.CostReportUseCase, log *logger.Logger) *CostHandler {
	return &CostHandler{uc: uc, report: report, log: log}
}

// Create godoc
// @Summary      Crear costo fijo
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FixedCostRequest  true  "costo fijo"
// @Success      201   {object}  dto.FixedCostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fixed-costs [post]
func (h *CostHandler) Create(c *fiber.Ctx) error {
	var in dto.FixedCostRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar costos fijos
// @Tags         costs
// @Produce      json
// @Param        active  query  bool  false  "solo activos"
// @Success      200  {array}  dto.FixedCostResponse
// @Router       /api/fixed-costs [get]
func (h *CostHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener costo fijo
// @Tags         costs
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.FixedCostResponse
// @Router       /api/fixed-costs/{id} [get]
func (h *CostHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar costo fijo
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.FixedCostRequest  true  "costo fijo"
// @Success      200   {object}  dto.FixedCostResponse
// @Router       /api/fixed-costs/{id} [put]
func (h *CostHandler) Update(c *fiber.Ctx) error {
	var in dto.FixedCostRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar costo fijo
// @Tags         costs
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/fixed-costs/{id} [delete]
func (h *CostHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Reporte mensual de costos por locale
// @Description  Costos fijos prorrateados, costo de personal y comisiones frente a las ventas del mes.
// @Tags         costs
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (vacío = mes actual)"
// @Success      200  {object}  dto.CostReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/costs/report [get]
func (h *CostHandler) Report(c *fiber.Ctx) error {
	month, err := analytics.ParseMonth(c.Query("month"), time.Now())
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.report.MonthlyReport(c.Context(), month)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
