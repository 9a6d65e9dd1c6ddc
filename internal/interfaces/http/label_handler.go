package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ne-taxonomy/internal/application/dto"
	"github.com/jhoicas/ne-taxonomy/internal/application/usecase"
)

// LabelHandler maneja las etiquetas de seudonimización.
type LabelHandler struct {
	uc *usecase.LabelUseCase
}

// NewLabelHandler construye el handler.
func NewLabelHandler(uc *usecase.LabelUseCase) *LabelHandler {
	return &LabelHandler{uc: uc}
}

// List godoc
// @Summary      Listar etiquetas
// @Description  El reemplazo solo se incluye para administradores.
// @Tags         labels
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Filtro por etiqueta o reemplazo"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.LabelListResponse
// @Router       /api/labels [get]
func (h *LabelHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), c.Query("search"), page, IsAdmin(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear etiqueta
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLabelRequest  true  "Etiqueta y reemplazo"
// @Success      201   {object}  dto.LabelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/labels [post]
func (h *LabelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLabelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Label == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "label es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar un campo de la etiqueta
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la etiqueta"
// @Param        body  body  dto.UpdateLabelRequest  true  "name=label|replacement, value"
// @Success      200   {object}  dto.LabelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labels/{id} [put]
func (h *LabelHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateLabelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err, "etiqueta no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar etiqueta
// @Tags         labels
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la etiqueta"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labels/{id} [delete]
func (h *LabelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "etiqueta no encontrada")
	}
	return c.JSON(dto.StatusResponse{Status: "ok"})
}

// Export godoc
// @Summary      Exportar etiquetas (CSV)
// @Tags         labels
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Router       /api/labels/export [get]
func (h *LabelHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.UserContext(), &buf); err != nil {
		return writeError(c, err, "")
	}
	return sendAttachment(c, buf.Bytes(), "export.csv", "text/csv")
}

// Import godoc
// @Summary      Importar etiquetas (CSV label,replacement)
// @Tags         labels
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Archivo CSV"
// @Param        charset  formData  string  false  "utf-8 | windows-1250 | iso-8859-2"
// @Success      200  {object}  dto.ImportLabelsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/labels/import [post]
func (h *LabelHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "file es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	out, err := h.uc.ImportCSV(c.UserContext(), f, c.FormValue("charset"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
