package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/application/fatture"
	"github.com/jhoicas/Ristoranti-api/internal/application/usecase"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// FattureHandler importación de fatture elettroniche y consulta de fornitori y materie prime.
type FattureHandler struct {
	importUC   *fatture.ImportUseCase
	supplierUC *usecase.SupplierUseCase
	maxBytes   int64
	log        *logger.Logger
}

// NewFattureHandler construye el handler. maxBytes <= 0 desactiva el límite del archivo subido.
func NewFattureHandler(importUC *fatture.ImportUseCase, supplierUC *usecase.SupplierUseCase, maxBytes int64, log *logger.Logger) *FattureHandler {
	return &FattureHandler{importUC: importUC, supplierUC: supplierUC, maxBytes: maxBytes, log: log}
}

// Import godoc
// @Summary      Importar fattura XML (FatturaPA)
// @Description  Acepta JSON {xml_content | file_url, file_name} o multipart con el campo file.
//
//	Crea o actualiza el fornitore y las materie prime y registra el histórico de precios.
//	Los errores por línea no anulan las líneas ya guardadas.
//
// @Tags         fatture
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        body  body      dto.ImportFatturaRequest  false  "contenido o URL"
// @Param        file  formData  file                      false  "archivo .xml"
// @Success      200  {object}  dto.ImportFatturaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/fatture/import [post]
func (h *FattureHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportFatturaRequest
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "archivo 'file' requerido")
		}
		if h.maxBytes > 0 && fh.Size > h.maxBytes {
			return badRequest(c, "el archivo supera el tamaño máximo permitido")
		}
		f, err := fh.Open()
		if err != nil {
			return respondError(c, h.log, err)
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return respondError(c, h.log, err)
		}
		in.XMLContent = string(raw)
		in.FileName = fh.Filename
	} else if ok, err := parseBody(c, &in); !ok {
		return err
	}

	out, err := h.importUC.Import(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar fornitori
// @Tags         fatture
// @Produce      json
// @Param        limit   query  int  false  "máx. 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *FattureHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	page.DefaultPage()
	list, err := h.supplierUC.List(c.Context(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// GetSupplier godoc
// @Summary      Obtener fornitore
// @Tags         fatture
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *FattureHandler) GetSupplier(c *fiber.Ctx) error {
	out, err := h.supplierUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SupplierProducts godoc
// @Summary      Materie prime de un fornitore
// @Tags         fatture
// @Produce      json
// @Param        id   path  string  true  "fornitore"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/suppliers/{id}/products [get]
func (h *FattureHandler) SupplierProducts(c *fiber.Ctx) error {
	list, err := h.supplierUC.Products(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// PriceHistory godoc
// @Summary      Histórico de precios de una materia prima
// @Tags         fatture
// @Produce      json
// @Param        id   path  string  true  "materia prima"
// @Success      200  {array}  dto.PriceHistoryResponse
// @Router       /api/products/{id}/prices [get]
func (h *FattureHandler) PriceHistory(c *fiber.Ctx) error {
	list, err := h.supplierUC.PriceHistory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}
