package packagereader

import (
	"archive/zip"
	"bytes"
	"encoding/csv"

	"descarga_masiva/internal/domain/entities"

	"github.com/cockroachdb/errors"
)

// Builder writes archives in the SAT package layout: an optional "~"-separated
// manifest plus any number of XML documents.
type Builder struct {
	manifestName string
	rows         [][]string
	docs         []Document
}

// NewBuilder returns a builder whose manifest, if any rows are added, is stored as manifestName.
func NewBuilder(manifestName string) *Builder {
	return &Builder{manifestName: manifestName}
}

func (b *Builder) AddMetadata(m entities.InvoiceMetadata) *Builder {
	b.rows = append(b.rows, manifestRow(m))
	return b
}

func (b *Builder) AddDocument(name string, xml []byte) *Builder {
	b.docs = append(b.docs, Document{Name: name, XML: xml})
	return b
}

func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if len(b.rows) > 0 {
		w, err := zw.Create(b.manifestName)
		if err != nil {
			return nil, errors.Wrap(err, "create manifest entry")
		}
		cw := csv.NewWriter(w)
		cw.Comma = '~'
		cw.UseCRLF = true
		if err := cw.Write(manifestHeader); err != nil {
			return nil, errors.Wrap(err, "write manifest header")
		}
		if err := cw.WriteAll(b.rows); err != nil {
			return nil, errors.Wrap(err, "write manifest rows")
		}
	}

	for _, d := range b.docs {
		w, err := zw.Create(d.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "create entry %s", d.Name)
		}
		if _, err := w.Write(d.XML); err != nil {
			return nil, errors.Wrapf(err, "write entry %s", d.Name)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "close archive")
	}
	return buf.Bytes(), nil
}
