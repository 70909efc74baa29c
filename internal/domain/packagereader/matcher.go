package packagereader

import (
	"archive/zip"
	"path"
	"strings"

	"descarga_masiva/internal/domain/cfdi"
	"descarga_masiva/internal/domain/entities"
)

// matcher pairs manifest rows with XML entries. The whole pairing is settled
// before the first row is yielded, so it does not depend on row order.
//
// An entry literally named {uuid}.xml always wins. Every other XML entry is a
// fallback candidate when its root is a Comprobante in a supported namespace;
// candidates are paired by stamp UUID, then by the uuid appearing in the entry
// name, then by elimination when exactly one unstamped candidate and one
// unpaired row remain. A candidate is paired at most once.
type matcher struct {
	pairs []*zip.File
}

type candidate struct {
	file    *zip.File
	uuid    string
	claimed bool
}

func newMatcher(xmls []*zip.File, rows []entities.InvoiceMetadata) *matcher {
	m := &matcher{pairs: make([]*zip.File, len(rows))}

	byName := make(map[string]*zip.File, len(xmls))
	for _, f := range xmls {
		byName[strings.ToLower(path.Base(f.Name))] = f
	}
	direct := map[*zip.File]bool{}
	var unpaired []int
	for i, row := range rows {
		if f, ok := byName[strings.ToLower(row.UUID)+".xml"]; ok {
			m.pairs[i] = f
			direct[f] = true
			continue
		}
		unpaired = append(unpaired, i)
	}
	if len(unpaired) == 0 {
		return m
	}

	candidates := probe(xmls, direct)
	pass := func(fits func(c *candidate, uuid string) bool) {
		rest := unpaired[:0]
		for _, i := range unpaired {
			if c := firstFit(candidates, rows[i].UUID, fits); c != nil {
				c.claimed = true
				m.pairs[i] = c.file
				continue
			}
			rest = append(rest, i)
		}
		unpaired = rest
	}
	pass(func(c *candidate, uuid string) bool {
		return c.uuid != "" && strings.EqualFold(c.uuid, uuid)
	})
	pass(func(c *candidate, uuid string) bool {
		return uuid != "" && strings.Contains(strings.ToLower(path.Base(c.file.Name)), strings.ToLower(uuid))
	})

	if len(unpaired) == 1 {
		var left []*candidate
		for _, c := range candidates {
			if !c.claimed {
				left = append(left, c)
			}
		}
		if len(left) == 1 && left[0].uuid == "" {
			left[0].claimed = true
			m.pairs[unpaired[0]] = left[0].file
		}
	}
	return m
}

// match returns the XML entry paired with row i, or nil when the package has none.
func (m *matcher) match(i int) *zip.File {
	if i < 0 || i >= len(m.pairs) {
		return nil
	}
	return m.pairs[i]
}

func firstFit(candidates []*candidate, uuid string, fits func(c *candidate, uuid string) bool) *candidate {
	for _, c := range candidates {
		if !c.claimed && fits(c, uuid) {
			return c
		}
	}
	return nil
}

// probe inspects the entries not claimed by name. Entries that are not
// readable invoices are not candidates.
func probe(xmls []*zip.File, direct map[*zip.File]bool) []*candidate {
	var out []*candidate
	for _, f := range xmls {
		if direct[f] {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			continue
		}
		res, err := cfdi.Probe(data)
		if err != nil || !res.IsInvoice() {
			continue
		}
		out = append(out, &candidate{file: f, uuid: res.UUID})
	}
	return out
}
