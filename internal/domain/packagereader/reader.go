package packagereader

import (
	"archive/zip"
	"bytes"
	"io"
	"iter"
	"path"
	"strings"
	"time"

	"descarga_masiva/internal/domain/cfdi"
	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"

	"github.com/shopspring/decimal"
)

// maxEntrySize bounds how much of a single archive entry is read into memory.
const maxEntrySize = 64 << 20

// Entry is one invoice found in a package. XML is nil when the package carries
// no document for the metadata row, which is normal for metadata packages.
type Entry struct {
	Metadata entities.InvoiceMetadata
	XMLName  string
	XML      []byte
}

// Document is a raw XML entry of a package.
type Document struct {
	Name string
	XML  []byte
}

// Package is an opened SAT package archive. It holds no state between
// iterations, so every call to Entries or Documents starts over.
type Package struct {
	zr        *zip.Reader
	manifests []*zip.File
	xmls      []*zip.File
}

func Open(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, failures.Wrap(err, failures.KindMalformedDocument, "package is not a readable archive")
	}
	p := &Package{zr: zr}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(f.Name)) {
		case ".txt":
			p.manifests = append(p.manifests, f)
		case ".xml":
			p.xmls = append(p.xmls, f)
		}
	}
	return p, nil
}

func (p *Package) HasManifest() bool {
	return len(p.manifests) > 0
}

// Manifest reads every metadata row of every manifest file, in archive order.
func (p *Package) Manifest() ([]entities.InvoiceMetadata, error) {
	var rows []entities.InvoiceMetadata
	for _, f := range p.manifests {
		rc, err := f.Open()
		if err != nil {
			return nil, failures.Wrap(err, failures.KindMalformedDocument, "open manifest "+f.Name)
		}
		got, err := readManifest(f.Name, io.LimitReader(rc, maxEntrySize))
		rc.Close()
		if err != nil {
			return nil, err
		}
		rows = append(rows, got...)
	}
	return rows, nil
}

// Documents yields every XML entry in archive order.
func (p *Package) Documents() iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		for _, f := range p.xmls {
			data, err := readEntry(f)
			if !yield(Document{Name: f.Name, XML: data}, err) {
				return
			}
		}
	}
}

// Entries yields one Entry per manifest row, paired with its XML when the package
// has one. A package without a manifest yields one Entry per XML document, with
// metadata taken from the parsed document.
func (p *Package) Entries() iter.Seq2[Entry, error] {
	if !p.HasManifest() {
		return p.documentEntries()
	}
	return func(yield func(Entry, error) bool) {
		rows, err := p.Manifest()
		if err != nil {
			yield(Entry{}, err)
			return
		}
		m := newMatcher(p.xmls, rows)
		for i, row := range rows {
			var err error
			e := Entry{Metadata: row}
			if f := m.match(i); f != nil {
				e.XMLName = f.Name
				e.XML, err = readEntry(f)
			}
			if !yield(e, err) {
				return
			}
		}
	}
}

func (p *Package) documentEntries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for d, err := range p.Documents() {
			if err != nil {
				if !yield(Entry{XMLName: d.Name}, err) {
					return
				}
				continue
			}
			doc, err := cfdi.Parse(d.XML)
			e := Entry{XMLName: d.Name, XML: d.XML}
			if err == nil {
				e.Metadata = metadataFromDocument(doc)
			}
			if !yield(e, err) {
				return
			}
		}
	}
}

func metadataFromDocument(doc entities.InvoiceDocument) entities.InvoiceMetadata {
	m := entities.InvoiceMetadata{
		UUID:           strings.ToUpper(doc.UUID.Value),
		IssuerID:       doc.Issuer.ID.Value,
		IssuerName:     doc.Issuer.Name.Value,
		RecipientID:    doc.Recipient.ID.Value,
		RecipientName:  doc.Recipient.Name.Value,
		EffectStatus:   doc.DocumentType.Value,
		DocumentStatus: entities.DocumentStatusUndefined,
	}
	if total, ok := doc.Total.Decimal(); ok {
		m.Total = total
	} else {
		m.Total = decimal.Zero
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", doc.Date.Value, satLocation); err == nil {
		m.IssueDate = t
	}
	return m
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, failures.Wrap(err, failures.KindMalformedDocument, "open entry "+f.Name)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, failures.Wrap(err, failures.KindMalformedDocument, "read entry "+f.Name)
	}
	if len(data) > maxEntrySize {
		return nil, failures.Newf(failures.KindMalformedDocument, "entry %s exceeds %d bytes", f.Name, maxEntrySize)
	}
	return data, nil
}
