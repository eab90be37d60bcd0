package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/banking"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// BankHandler estados de cuenta, conciliación y reglas de categorización.
type BankHandler struct {
	uc  *banking.BankUseCase
	log *logger.Logger
}

// NewBankHandler construye el handler.
func NewBankHandler(uc *banking.BankUseCase, log *logger.Logger) *BankHandler {
	return &BankHandler{uc: uc, log: log}
}

// Import godoc
// @Summary      Importar estado de cuenta XLSX
// @Description  Detecta la fila de cabecera (Data, Descrizione, Importo o Dare/Avere), descarta duplicados
//
//	y aplica las reglas activas a los movimientos nuevos.
//
// @Tags         bank
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "estado de cuenta .xlsx"
// @Param        account   formData  string  true   "cuenta (IBAN o alias)"
// @Param        store_id  formData  string  false  "locale por defecto"
// @Success      200  {object}  dto.BankImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bank/import [post]
func (h *BankHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "archivo 'file' requerido")
	}
	account := c.FormValue("account")
	if account == "" {
		return badRequest(c, "account es requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	out, err := h.uc.ImportStatement(c.Context(), account, c.FormValue("store_id"), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().
		Str("batch_id", out.BatchID).
		Str("file", fh.Filename).
		Int("imported", out.Imported).
		Int("skipped", out.Skipped).
		Msg("estado de cuenta importado")
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos con resumen
// @Tags         bank
// @Produce      json
// @Param        store_id       query  string  false  "locale"
// @Param        account        query  string  false  "cuenta"
// @Param        category       query  string  false  "categoría"
// @Param        from           query  string  false  "YYYY-MM-DD"
// @Param        to             query  string  false  "YYYY-MM-DD"
// @Param        uncategorized  query  bool    false  "solo sin categoría"
// @Param        unreconciled   query  bool    false  "solo sin conciliar"
// @Success      200  {object}  dto.BankListResponse
// @Router       /api/bank/transactions [get]
func (h *BankHandler) List(c *fiber.Ctx) error {
	from, err := dateQuery(c, "from")
	if err != nil {
		return respondError(c, h.log, err)
	}
	to, err := endOfDayQuery(c, "to")
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.List(c.Context(), repository.BankTransactionFilter{
		StoreID:           c.Query("store_id"),
		Account:           c.Query("account"),
		Category:          c.Query("category"),
		From:              from,
		To:                to,
		OnlyUncategorized: c.QueryBool("uncategorized", false),
		OnlyUnreconciled:  c.QueryBool("unreconciled", false),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Categorizar o conciliar un movimiento
// @Tags         bank
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID"
// @Param        body  body  dto.UpdateBankTransactionRequest  true  "cambios"
// @Success      200   {object}  dto.BankTransactionResponse
// @Router       /api/bank/transactions/{id} [patch]
func (h *BankHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBankTransactionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ApplyRules godoc
// @Summary      Aplicar reglas a los movimientos sin categoría
// @Tags         bank
// @Produce      json
// @Success      200  {object}  dto.ApplyRulesResponse
// @Router       /api/bank/rules/apply [post]
func (h *BankHandler) ApplyRules(c *fiber.Ctx) error {
	out, err := h.uc.ApplyRules(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListRules godoc
// @Summary      Listar reglas
// @Tags         bank
// @Produce      json
// @Success      200  {array}  dto.RuleResponse
// @Router       /api/bank/rules [get]
func (h *BankHandler) ListRules(c *fiber.Ctx) error {
	list, err := h.uc.ListRules(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// CreateRule godoc
// @Summary      Crear regla
// @Tags         bank
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RuleRequest  true  "regla"
// @Success      201   {object}  dto.RuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bank/rules [post]
func (h *BankHandler) CreateRule(c *fiber.Ctx) error {
	var in dto.RuleRequest
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
// @Summary      Modificar regla
// @Tags         bank
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID"
// @Param        body  body  dto.RuleRequest  true  "regla"
// @Success      200   {object}  dto.RuleResponse
// @Router       /api/bank/rules/{id} [put]
func (h *BankHandler) UpdateRule(c *fiber.Ctx) error {
	var in dto.RuleRequest
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
// @Summary      Eliminar regla
// @Tags         bank
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/bank/rules/{id} [delete]
func (h *BankHandler) DeleteRule(c *fiber.Ctx) error {
	if err := h.uc.DeleteRule(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
