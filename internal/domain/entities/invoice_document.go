package entities

import (
	"encoding/json"
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// NotAvailable is how an optional attribute that was not specified is rendered.
const NotAvailable = "N/A"

// Text is an optional attribute value. Present distinguishes "not specified"
// from an empty value; the lexical form is kept as written in the document.
type Text struct {
	Value   string
	Present bool
}

func NewText(v string) Text {
	return Text{Value: v, Present: true}
}

// String renders the value, or N/A when it was not specified.
func (t Text) String() string {
	if !t.Present {
		return NotAvailable
	}
	return t.Value
}

// Decimal parses the lexical value; ok is false when absent or not a number.
func (t Text) Decimal() (decimal.Decimal, bool) {
	if !t.Present {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(t.Value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func (t *Text) UnmarshalXMLAttr(attr xml.Attr) error {
	t.Value = attr.Value
	t.Present = true
	return nil
}

// MarshalXMLAttr omits the attribute when it was not specified.
func (t Text) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if !t.Present {
		return xml.Attr{}, nil
	}
	return xml.Attr{Name: name, Value: t.Value}, nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Present {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Text{}
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = NewText(v)
	return nil
}

// InvoiceDocument is the structured view of one CFDI XML. It is derived from a
// package on demand and never persisted.
type InvoiceDocument struct {
	Version             Text             `json:"version"`
	Namespace           string           `json:"namespace"`
	UUID                Text             `json:"uuid"`
	Series              Text             `json:"series"`
	Folio               Text             `json:"folio"`
	Date                Text             `json:"date"`
	PaymentTerms        Text             `json:"payment_terms"`
	Subtotal            Text             `json:"subtotal"`
	Currency            Text             `json:"currency"`
	Total               Text             `json:"total"`
	DocumentType        Text             `json:"document_type"`
	Export              Text             `json:"export"`
	PaymentMethod       Text             `json:"payment_method"`
	PaymentForm         Text             `json:"payment_form"`
	IssuingPlace        Text             `json:"issuing_place"`
	Issuer              InvoiceIssuer    `json:"issuer"`
	Recipient           InvoiceRecipient `json:"recipient"`
	Items               []InvoiceItem    `json:"items"`
	TransferredTaxTotal Text             `json:"transferred_tax_total"`
}

type InvoiceIssuer struct {
	ID     Text `json:"id"`
	Name   Text `json:"name"`
	Regime Text `json:"regime"`
}

type InvoiceRecipient struct {
	ID            Text `json:"id"`
	Name          Text `json:"name"`
	FiscalAddress Text `json:"fiscal_address"`
	Regime        Text `json:"regime"`
	Usage         Text `json:"usage"`
}

// InvoiceItem is one Concepto, in document order.
type InvoiceItem struct {
	ProductKey  Text `json:"product_key"`
	Identifier  Text `json:"identifier"`
	Quantity    Text `json:"quantity"`
	UnitKey     Text `json:"unit_key"`
	Unit        Text `json:"unit"`
	Description Text `json:"description"`
	UnitValue   Text `json:"unit_value"`
	Amount      Text `json:"amount"`
	TaxObject   Text `json:"tax_object"`
}

// InvoiceEntry pairs a manifest row with its parsed document, when one was found.
type InvoiceEntry struct {
	Metadata InvoiceMetadata  `json:"metadata"`
	Document *InvoiceDocument `json:"document,omitempty"`
	Error    string           `json:"error,omitempty"`
}
