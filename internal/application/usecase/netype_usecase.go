package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/ne-taxonomy/internal/application/dto"
	"github.com/jhoicas/ne-taxonomy/internal/application/ports"
	"github.com/jhoicas/ne-taxonomy/internal/domain"
	"github.com/jhoicas/ne-taxonomy/pkg/netype"
)

// NETypeUseCase consulta y exporta la taxonomía de tipos de entidades.
// La tabla se inyecta por referencia y nunca se modifica.
type NETypeUseCase struct {
	table *netype.Table
	pdf   ports.TaxonomyPDFGenerator
	xml   ports.TaxonomyXMLBuilder
}

// NewNETypeUseCase construye el caso de uso. pdf y xml pueden ser nil si la
// exportación correspondiente no está habilitada.
func NewNETypeUseCase(table *netype.Table, pdf ports.TaxonomyPDFGenerator, xml ports.TaxonomyXMLBuilder) *NETypeUseCase {
	return &NETypeUseCase{table: table, pdf: pdf, xml: xml}
}

// List devuelve la taxonomía completa o filtrada por search.
func (uc *NETypeUseCase) List(search string) *dto.NETypeListResponse {
	found := uc.table.Search(search)
	items := make([]dto.NETypeResponse, 0, len(found))
	for _, c := range found {
		items = append(items, toNETypeResponse(c))
	}
	return &dto.NETypeListResponse{
		Items:            items,
		Total:            len(items),
		TotalNotFiltered: uc.table.Len(),
	}
}

// Get devuelve un tipo por código. domain.ErrNotFound si no existe.
func (uc *NETypeUseCase) Get(code string) (*dto.NETypeResponse, error) {
	c, err := uc.table.Category(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	out := toNETypeResponse(c)
	return &out, nil
}

// Contains indica si el código existe.
func (uc *NETypeUseCase) Contains(code string) bool {
	return uc.table.Contains(netype.Code(code))
}

// ExportCSV escribe la taxonomía como CSV code,label.
func (uc *NETypeUseCase) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"code", "label"}); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for c := range uc.table.All() {
		if err := cw.Write([]string{string(c.Code), c.Label}); err != nil {
			return fmt.Errorf("csv row %s: %w", c.Code, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportPDF genera la hoja de referencia para anotadores.
func (uc *NETypeUseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("exportación PDF no configurada")
	}
	return uc.pdf.GenerateTaxonomyPDF(ctx, uc.table)
}

// ExportXML genera el documento XML de la taxonomía y su digest canónico.
func (uc *NETypeUseCase) ExportXML() ([]byte, string, error) {
	if uc.xml == nil {
		return nil, "", fmt.Errorf("exportación XML no configurada")
	}
	out, err := uc.xml.BuildTaxonomyXML(uc.table)
	if err != nil {
		return nil, "", err
	}
	digest, err := uc.xml.Digest(out)
	if err != nil {
		return nil, "", err
	}
	return out, digest, nil
}

func toNETypeResponse(c netype.Category) dto.NETypeResponse {
	return dto.NETypeResponse{
		Code:           string(c.Code),
		Label:          c.Label,
		Supertype:      string(c.Code.Supertype()),
		Underspecified: c.Code.Underspecified(),
	}
}
