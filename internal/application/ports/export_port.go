package ports

import (
	"context"

	"github.com/jhoicas/ne-taxonomy/pkg/netype"
)

// TaxonomyPDFGenerator puerto de salida para la hoja de referencia en PDF que
// se entrega a los anotadores. El adaptador recibe la tabla por referencia.
type TaxonomyPDFGenerator interface {
	GenerateTaxonomyPDF(ctx context.Context, table *netype.Table) ([]byte, error)
}

// TaxonomyXMLBuilder puerto de salida para exportar la taxonomía como XML
// (mismo vocabulario de atributos que las marcas <ne type="..."> de los textos).
// Digest resume el documento en su forma canónica (C14N); se publica como ETag.
type TaxonomyXMLBuilder interface {
	BuildTaxonomyXML(table *netype.Table) ([]byte, error)
	Digest(doc []byte) (string, error)
}
