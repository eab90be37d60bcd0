package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/application/usecase"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// RevenueHandler registros de ventas iPratico y reglas de comisión de delivery.
type RevenueHandler struct {
	uc  *usecase.RevenueUseCase
	log *logger.Logger
}

// NewRevenueHandler construye el handler.
func NewRevenueHandler(uc *usecase.RevenueUseCase, log *logger.Logger) *RevenueHandler {
	return &RevenueHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar ventas de un día
// @Tags         revenue
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RevenueRecordRequest  true  "registro iPratico"
// @Success      201   {object}  dto.RevenueRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/revenue [post]
func (h *RevenueHandler) Create(c *fiber.Ctx) error {
	var in dto.RevenueRecordRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Import godoc
// @Summary      Cargar un export iPratico de varios días
// @Description  Solo se guardan los registros cuya order_date cae dentro del período;
// @Description  los demás (o con fecha ilegible) se cuentan en skipped.
// @Tags         revenue
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RevenueImportRequest  true  "período y registros"
// @Success      200   {object}  dto.RevenueImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/revenue/import [post]
func (h *RevenueHandler) Import(c *fiber.Ctx) error {
	var in dto.RevenueImportRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	w, err := period.ParseRange(in.Range, in.StartDate, in.EndDate, time.Now().UTC())
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Import(c.Context(), w, in.Records)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas del período
// @Tags         revenue
// @Produce      json
// @Param        range       query  string  false  "7|30|90|365|custom"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        store_ids   query  string  false  "locali"
// @Success      200  {array}  dto.RevenueRecordResponse
// @Router       /api/revenue [get]
func (h *RevenueHandler) List(c *fiber.Ctx) error {
	w, storeIDs, err := periodFromQuery(c, time.Now())
	if err != nil {
		return respondError(c, h.log, err)
	}
	list, err := h.uc.List(c.Context(), storeIDs, w)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener registro de ventas
// @Tags         revenue
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.RevenueRecordResponse
// @Router       /api/revenue/{id} [get]
func (h *RevenueHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar registro de ventas
// @Tags         revenue
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID"
// @Param        body  body  dto.RevenueRecordRequest  true  "registro"
// @Success      200   {object}  dto.RevenueRecordResponse
// @Router       /api/revenue/{id} [put]
func (h *RevenueHandler) Update(c *fiber.Ctx) error {
	var in dto.RevenueRecordRequest
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
// @Summary      Eliminar registro de ventas
// @Tags         revenue
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/revenue/{id} [delete]
func (h *RevenueHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRules godoc
// @Summary      Reglas de comisión
// @Tags         revenue
// @Produce      json
// @Success      200  {array}  dto.CommissionRuleResponse
// @Router       /api/commission-rules [get]
func (h *RevenueHandler) ListRules(c *fiber.Ctx) error {
	list, err := h.uc.ListRules(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// CreateRule godoc
// @Summary      Crear regla de comisión
// @Tags         revenue
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommissionRuleRequest  true  "app_delivery, percentuale"
// @Success      201   {object}  dto.CommissionRuleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/commission-rules [post]
func (h *RevenueHandler) CreateRule(c *fiber.Ctx) error {
	var in dto.CommissionRuleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateRule(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRule godoc
// @Summary      Modificar regla de comisión
// @Tags         revenue
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID"
// @Param        body  body  dto.CommissionRuleRequest  true  "regla"
// @Success      200   {object}  dto.CommissionRuleResponse
// @Router       /api/commission-rules/{id} [put]
func (h *RevenueHandler) UpdateRule(c *fiber.Ctx) error {
	var in dto.CommissionRuleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateRule(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteRule godoc
// @Summary      Eliminar regla de comisión
// @Tags         revenue
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/commission-rules/{id} [delete]
func (h *RevenueHandler) DeleteRule(c *fiber.Ctx) error {
	if err := h.uc.DeleteRule(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
