// Package xmldoc serializa la taxonomía como documento XML con etree.
package xmldoc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/ne-taxonomy/internal/application/ports"
	"github.com/jhoicas/ne-taxonomy/pkg/netype"
)

var _ ports.TaxonomyXMLBuilder = (*XMLBuilderService)(nil)

// XMLBuilderService construye el XML de la taxonomía:
//
//	<ne-types count="46">
//	  <group supertype="a">
//	    <ne-type code="ah">street numbers</ne-type>
//	  </group>
//	</ne-types>
type XMLBuilderService struct{}

// NewXMLBuilderService construye el servicio.
func NewXMLBuilderService() *XMLBuilderService { return &XMLBuilderService{} }

// BuildTaxonomyXML devuelve el documento indentado, con declaración XML.
func (s *XMLBuilderService) BuildTaxonomyXML(table *netype.Table) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("ne-types")
	root.CreateAttr("count", fmt.Sprint(table.Len()))

	var group *etree.Element
	var current byte
	for c := range table.All() {
		if st := c.Code.Supertype(); group == nil || st != current {
			current = st
			group = root.CreateElement("group")
			group.CreateAttr("supertype", string(st))
		}
		el := group.CreateElement("ne-type")
		el.CreateAttr("code", string(c.Code))
		if c.Code.Underspecified() {
			el.CreateAttr("underspecified", "true")
		}
		el.SetText(c.Label)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar taxonomía: %w", err)
	}
	return out, nil
}

// Digest devuelve el SHA-256 en hex del documento canonicalizado. Solo entra
// el elemento raíz: la declaración XML no forma parte del digest.
func (s *XMLBuilderService) Digest(doc []byte) (string, error) {
	parsed := etree.NewDocument()
	if err := parsed.ReadFromBytes(doc); err != nil {
		return "", fmt.Errorf("xml: leer documento: %w", err)
	}
	if parsed.Root() == nil {
		return "", fmt.Errorf("xml: documento sin elemento raíz")
	}
	bare := etree.NewDocument()
	bare.SetRoot(parsed.Root().Copy())
	rootXML, err := bare.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xml: serializar raíz: %w", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(rootXML))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
