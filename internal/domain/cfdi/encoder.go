package cfdi

import (
	"encoding/xml"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
)

// Encode renders doc as CFDI XML in doc.Namespace (4.0 when empty). Attributes
// that are not present are omitted, so Parse(Encode(doc)) yields doc back.
func Encode(doc entities.InvoiceDocument) ([]byte, error) {
	ns := doc.Namespace
	if ns == "" {
		ns = NamespaceV4
	}
	if !SupportedNamespace(ns) {
		return nil, failures.Newf(failures.KindUnsupportedSchema, "unsupported CFDI namespace %q", ns)
	}

	c := comprobante{
		XMLName:           xml.Name{Space: ns, Local: "Comprobante"},
		Version:           doc.Version,
		Serie:             doc.Series,
		Folio:             doc.Folio,
		Fecha:             doc.Date,
		CondicionesDePago: doc.PaymentTerms,
		SubTotal:          doc.Subtotal,
		Moneda:            doc.Currency,
		Total:             doc.Total,
		TipoDeComprobante: doc.DocumentType,
		Exportacion:       doc.Export,
		MetodoPago:        doc.PaymentMethod,
		FormaPago:         doc.PaymentForm,
		LugarExpedicion:   doc.IssuingPlace,
		Emisor: &emisor{
			Rfc:           doc.Issuer.ID,
			Nombre:        doc.Issuer.Name,
			RegimenFiscal: doc.Issuer.Regime,
		},
		Receptor: &receptor{
			Rfc:                     doc.Recipient.ID,
			Nombre:                  doc.Recipient.Name,
			DomicilioFiscalReceptor: doc.Recipient.FiscalAddress,
			RegimenFiscalReceptor:   doc.Recipient.Regime,
			UsoCFDI:                 doc.Recipient.Usage,
		},
	}
	for _, it := range doc.Items {
		c.Conceptos.Concepto = append(c.Conceptos.Concepto, concepto{
			ClaveProdServ:    it.ProductKey,
			NoIdentificacion: it.Identifier,
			Cantidad:         it.Quantity,
			ClaveUnidad:      it.UnitKey,
			Unidad:           it.Unit,
			Descripcion:      it.Description,
			ValorUnitario:    it.UnitValue,
			Importe:          it.Amount,
			ObjetoImp:        it.TaxObject,
		})
	}
	if doc.TransferredTaxTotal.Present {
		c.Impuestos = &impuestos{TotalImpuestosTrasladados: doc.TransferredTaxTotal}
	}
	if doc.UUID.Present {
		c.Complemento = []complemento{{Timbre: &timbre{
			XMLName: xml.Name{Space: NamespaceTimbre, Local: "TimbreFiscalDigital"},
			Version: entities.NewText("1.1"),
			UUID:    doc.UUID,
		}}}
	}

	out, err := xml.Marshal(c)
	if err != nil {
		return nil, failures.Wrap(err, failures.KindMalformedDocument, "encode CFDI")
	}
	return append([]byte(xml.Header), out...), nil
}
