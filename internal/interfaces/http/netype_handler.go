package http

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ne-taxonomy/internal/application/dto"
	"github.com/jhoicas/ne-taxonomy/internal/application/usecase"
)

// NETypeHandler expone la taxonomía de tipos de entidades (protegido).
type NETypeHandler struct {
	uc *usecase.NETypeUseCase
}

// NewNETypeHandler construye el handler.
func NewNETypeHandler(uc *usecase.NETypeUseCase) *NETypeHandler {
	return &NETypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar tipos de entidades
// @Tags         ne-types
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Filtro por código o etiqueta"
// @Success      200     {object}  dto.NETypeListResponse
// @Router       /api/ne-types [get]
func (h *NETypeHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(c.Query("search")))
}

// Get godoc
// @Summary      Obtener tipo por código
// @Tags         ne-types
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código (p. ej. pf)"
// @Success      200   {object}  dto.NETypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ne-types/{code} [get]
func (h *NETypeHandler) Get(c *fiber.Ctx) error {
	code := strings.ToLower(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "code es requerido"})
	}
	out, err := h.uc.Get(code)
	if err != nil {
		return writeError(c, err, "tipo de entidad no encontrado")
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar taxonomía (CSV)
// @Tags         ne-types
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Router       /api/ne-types/export/csv [get]
func (h *NETypeHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(&buf); err != nil {
		return writeError(c, err, "")
	}
	return sendAttachment(c, buf.Bytes(), "ne-types.csv", "text/csv")
}

// ExportPDF godoc
// @Summary      Exportar hoja de referencia (PDF)
// @Tags         ne-types
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/ne-types/export/pdf [get]
func (h *NETypeHandler) ExportPDF(c *fiber.Ctx) error {
	out, err := h.uc.ExportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return sendAttachment(c, out, "ne-types.pdf", "application/pdf")
}

// ExportXML godoc
// @Summary      Exportar taxonomía (XML)
// @Tags         ne-types
// @Security     Bearer
// @Produce      application/xml
// @Success      200
// @Success      304
// @Router       /api/ne-types/export/xml [get]
func (h *NETypeHandler) ExportXML(c *fiber.Ctx) error {
	out, digest, err := h.uc.ExportXML()
	if err != nil {
		return writeError(c, err, "")
	}
	etag := `"` + digest + `"`
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderETag, etag)
	return sendAttachment(c, out, "ne-types.xml", "application/xml")
}

func sendAttachment(c *fiber.Ctx, body []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
