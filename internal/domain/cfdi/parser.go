package cfdi

import (
	"bytes"
	"encoding/xml"
	"io"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
)

const (
	NamespaceV3     = "http://www.sat.gob.mx/cfd/3"
	NamespaceV4     = "http://www.sat.gob.mx/cfd/4"
	NamespaceTimbre = "http://www.sat.gob.mx/TimbreFiscalDigital"
)

// SupportedNamespace reports whether ns is a CFDI schema this parser understands.
func SupportedNamespace(ns string) bool {
	return ns == NamespaceV3 || ns == NamespaceV4
}

type comprobante struct {
	XMLName           xml.Name
	Version           entities.Text `xml:"Version,attr"`
	Serie             entities.Text `xml:"Serie,attr"`
	Folio             entities.Text `xml:"Folio,attr"`
	Fecha             entities.Text `xml:"Fecha,attr"`
	CondicionesDePago entities.Text `xml:"CondicionesDePago,attr"`
	SubTotal          entities.Text `xml:"SubTotal,attr"`
	Moneda            entities.Text `xml:"Moneda,attr"`
	Total             entities.Text `xml:"Total,attr"`
	TipoDeComprobante entities.Text `xml:"TipoDeComprobante,attr"`
	Exportacion       entities.Text `xml:"Exportacion,attr"`
	MetodoPago        entities.Text `xml:"MetodoPago,attr"`
	FormaPago         entities.Text `xml:"FormaPago,attr"`
	LugarExpedicion   entities.Text `xml:"LugarExpedicion,attr"`

	Emisor      *emisor       `xml:"Emisor"`
	Receptor    *receptor     `xml:"Receptor"`
	Conceptos   conceptos     `xml:"Conceptos"`
	Impuestos   *impuestos    `xml:"Impuestos"`
	Complemento []complemento `xml:"Complemento"`
}

type conceptos struct {
	Concepto []concepto `xml:"Concepto"`
}

type emisor struct {
	Rfc           entities.Text `xml:"Rfc,attr"`
	Nombre        entities.Text `xml:"Nombre,attr"`
	RegimenFiscal entities.Text `xml:"RegimenFiscal,attr"`
}

type receptor struct {
	Rfc                     entities.Text `xml:"Rfc,attr"`
	Nombre                  entities.Text `xml:"Nombre,attr"`
	DomicilioFiscalReceptor entities.Text `xml:"DomicilioFiscalReceptor,attr"`
	RegimenFiscalReceptor   entities.Text `xml:"RegimenFiscalReceptor,attr"`
	UsoCFDI                 entities.Text `xml:"UsoCFDI,attr"`
}

type concepto struct {
	ClaveProdServ    entities.Text `xml:"ClaveProdServ,attr"`
	NoIdentificacion entities.Text `xml:"NoIdentificacion,attr"`
	Cantidad         entities.Text `xml:"Cantidad,attr"`
	ClaveUnidad      entities.Text `xml:"ClaveUnidad,attr"`
	Unidad           entities.Text `xml:"Unidad,attr"`
	Descripcion      entities.Text `xml:"Descripcion,attr"`
	ValorUnitario    entities.Text `xml:"ValorUnitario,attr"`
	Importe          entities.Text `xml:"Importe,attr"`
	ObjetoImp        entities.Text `xml:"ObjetoImp,attr"`
}

type impuestos struct {
	TotalImpuestosTrasladados entities.Text `xml:"TotalImpuestosTrasladados,attr"`
}

type complemento struct {
	Timbre *timbre `xml:"TimbreFiscalDigital"`
}

type timbre struct {
	XMLName xml.Name
	Version entities.Text `xml:"Version,attr"`
	UUID    entities.Text `xml:"UUID,attr"`
}

// Parse decodes one CFDI 3.3 or 4.0 document.
func Parse(data []byte) (entities.InvoiceDocument, error) {
	var c comprobante
	if err := xml.Unmarshal(data, &c); err != nil {
		return entities.InvoiceDocument{}, failures.Wrap(err, failures.KindMalformedDocument, "document is not well-formed XML")
	}
	if c.XMLName.Local != "Comprobante" {
		return entities.InvoiceDocument{}, failures.Newf(failures.KindMalformedDocument, "root element is %s, expected Comprobante", c.XMLName.Local)
	}
	if !SupportedNamespace(c.XMLName.Space) {
		return entities.InvoiceDocument{}, failures.Newf(failures.KindUnsupportedSchema, "unsupported CFDI namespace %q", c.XMLName.Space)
	}
	if c.Emisor == nil {
		return entities.InvoiceDocument{}, failures.New(failures.KindMalformedDocument, "Comprobante has no Emisor")
	}
	if c.Receptor == nil {
		return entities.InvoiceDocument{}, failures.New(failures.KindMalformedDocument, "Comprobante has no Receptor")
	}

	doc := entities.InvoiceDocument{
		Version:       c.Version,
		Namespace:     c.XMLName.Space,
		Series:        c.Serie,
		Folio:         c.Folio,
		Date:          c.Fecha,
		PaymentTerms:  c.CondicionesDePago,
		Subtotal:      c.SubTotal,
		Currency:      c.Moneda,
		Total:         c.Total,
		DocumentType:  c.TipoDeComprobante,
		Export:        c.Exportacion,
		PaymentMethod: c.MetodoPago,
		PaymentForm:   c.FormaPago,
		IssuingPlace:  c.LugarExpedicion,
		Issuer: entities.InvoiceIssuer{
			ID:     c.Emisor.Rfc,
			Name:   c.Emisor.Nombre,
			Regime: c.Emisor.RegimenFiscal,
		},
		Recipient: entities.InvoiceRecipient{
			ID:            c.Receptor.Rfc,
			Name:          c.Receptor.Nombre,
			FiscalAddress: c.Receptor.DomicilioFiscalReceptor,
			Regime:        c.Receptor.RegimenFiscalReceptor,
			Usage:         c.Receptor.UsoCFDI,
		},
		Items: make([]entities.InvoiceItem, 0, len(c.Conceptos.Concepto)),
	}
	for _, it := range c.Conceptos.Concepto {
		doc.Items = append(doc.Items, entities.InvoiceItem{
			ProductKey:  it.ClaveProdServ,
			Identifier:  it.NoIdentificacion,
			Quantity:    it.Cantidad,
			UnitKey:     it.ClaveUnidad,
			Unit:        it.Unidad,
			Description: it.Descripcion,
			UnitValue:   it.ValorUnitario,
			Amount:      it.Importe,
			TaxObject:   it.ObjetoImp,
		})
	}
	if c.Impuestos != nil {
		doc.TransferredTaxTotal = c.Impuestos.TotalImpuestosTrasladados
	}
	for _, comp := range c.Complemento {
		if comp.Timbre != nil && comp.Timbre.UUID.Present {
			doc.UUID = comp.Timbre.UUID
			break
		}
	}
	return doc, nil
}

// ProbeResult is what a cheap scan of a document reveals without a full parse.
type ProbeResult struct {
	Root      string
	Namespace string
	UUID      string
}

// IsInvoice reports whether the root is a Comprobante in a supported namespace.
func (p ProbeResult) IsInvoice() bool {
	return p.Root == "Comprobante" && SupportedNamespace(p.Namespace)
}

// Probe reads the root element and the stamp UUID, stopping at the first stamp.
func Probe(data []byte) (ProbeResult, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var res ProbeResult
	rootSeen := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, failures.Wrap(err, failures.KindMalformedDocument, "document is not well-formed XML")
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !rootSeen {
			rootSeen = true
			res.Root = se.Name.Local
			res.Namespace = se.Name.Space
			if !res.IsInvoice() {
				return res, nil
			}
			continue
		}
		if se.Name.Local == "TimbreFiscalDigital" {
			for _, a := range se.Attr {
				if a.Name.Local == "UUID" {
					res.UUID = a.Value
					return res, nil
				}
			}
		}
	}
	if !rootSeen {
		return res, failures.New(failures.KindMalformedDocument, "document has no root element")
	}
	return res, nil
}
