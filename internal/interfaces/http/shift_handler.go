package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/application/planday"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// ShiftHandler turnos Planday. Los dipendenti solo ven sus propios turnos.
type ShiftHandler struct {
	uc  *planday.ShiftUseCase
	log *logger.Logger
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *planday.ShiftUseCase, log *logger.Logger) *ShiftHandler {
	return &ShiftHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear turno
// @Description  El turno se guarda aunque se solape; los conflictos vienen en la respuesta.
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShiftRequest  true  "turno"
// @Success      201   {object}  dto.ShiftSaveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shifts [post]
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var in dto.ShiftRequest
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
// @Summary      Listar turnos
// @Tags         shifts
// @Produce      json
// @Param        store_ids    query  string  false  "locali separados por coma"
// @Param        employee_id  query  string  false  "dipendente"
// @Param        from         query  string  false  "YYYY-MM-DD"
// @Param        to           query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.ShiftResponse
// @Router       /api/shifts [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	from, err := dateQuery(c, "from")
	if err != nil {
		return respondError(c, h.log, err)
	}
	to, err := endOfDayQuery(c, "to")
	if err != nil {
		return respondError(c, h.log, err)
	}
	f := repository.ShiftFilter{
		StoreIDs:   splitIDs(c.Query("store_ids")),
		EmployeeID: c.Query("employee_id"),
		From:       from,
		To:         to,
	}
	if GetRole(c) == entity.RoleDipendente {
		f.EmployeeID = GetUserID(c)
	}
	list, err := h.uc.List(c.Context(), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener turno
// @Tags         shifts
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id} [get]
func (h *ShiftHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if GetRole(c) == entity.RoleDipendente && out.EmployeeID != GetUserID(c) {
		return forbidden(c, "el turno pertenece a otro dipendente")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar turno
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID"
// @Param        body  body  dto.ShiftRequest  true  "turno"
// @Success      200   {object}  dto.ShiftSaveResponse
// @Router       /api/shifts/{id} [put]
func (h *ShiftHandler) Update(c *fiber.Ctx) error {
	var in dto.ShiftRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover turno (arrastrar en el calendario)
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.MoveShiftRequest  true  "nuevo día y/o dipendente"
// @Success      200   {object}  dto.ShiftSaveResponse
// @Router       /api/shifts/{id}/move [patch]
func (h *ShiftHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveShiftRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Move(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Verificar solapamientos sin guardar
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        id    query  string            false  "turno en edición (se excluye)"
// @Param        body  body   dto.ShiftRequest  true   "turno candidato"
// @Success      200   {object}  dto.OverlapCheckResponse
// @Router       /api/shifts/check [post]
func (h *ShiftHandler) Check(c *fiber.Ctx) error {
	var in dto.ShiftRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Check(c.Context(), c.Query("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar turno
// @Tags         shifts
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/shifts/{id} [delete]
func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Hours godoc
// @Summary      Horas y costo por dipendente en el período
// @Tags         shifts
// @Produce      json
// @Param        range       query  string  false  "7|30|90|365|custom"
// @Param        start_date  query  string  false  "YYYY-MM-DD (custom)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (custom)"
// @Param        store_ids   query  string  false  "locali"
// @Success      200  {object}  dto.EmployeeHoursResponse
// @Router       /api/shifts/hours [get]
func (h *ShiftHandler) Hours(c *fiber.Ctx) error {
	w, storeIDs, err := periodFromQuery(c, time.Now())
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.EmployeeHours(c.Context(), storeIDs, w)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SchedulePDF godoc
// @Summary      Cuadro semanal de turnos en PDF
// @Tags         shifts
// @Produce      application/pdf
// @Param        id    path   string  true   "locale"
// @Param        week  query  string  false  "cualquier día de la semana (YYYY-MM-DD); vacío = hoy"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/schedule.pdf [get]
func (h *ShiftHandler) SchedulePDF(c *fiber.Ctx) error {
	day, err := dateQuery(c, "week")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if day.IsZero() {
		day = time.Now()
	}
	pdf, filename, err := h.uc.WeeklySchedulePDF(c.Context(), c.Params("id"), day)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
