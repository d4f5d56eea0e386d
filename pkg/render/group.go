package render

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"suratjalan/pkg/slip"
)

// GroupField names the slip attribute Grouped partitions on.
type GroupField string

const (
	ByPlate          GroupField = "plate"
	ByDocumentNumber GroupField = "document_number"
	ByDriver         GroupField = "driver"
	ByGoods          GroupField = "goods"
	ByTransporter    GroupField = "transporter"
	ByEntryDate      GroupField = "entry_date"
)

func (f GroupField) key(s slip.Slip) (string, error) {
	switch f {
	case ByPlate:
		return s.Plate, nil
	case ByDocumentNumber:
		return s.DocumentNumber, nil
	case ByDriver:
		return s.Driver, nil
	case ByGoods:
		return s.Goods, nil
	case ByTransporter:
		return s.Transporter, nil
	case ByEntryDate:
		return s.EntryDate, nil
	}
	return "", fmt.Errorf("unknown group field %q", string(f))
}

// Keys returns the distinct values of f over slips, sorted.
func (f GroupField) Keys(slips []slip.Slip) ([]string, error) {
	seen := map[string]bool{}
	var keys []string
	for _, s := range slips {
		k, err := f.key(s)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

type Group struct {
	Key string
	Doc *Document
}

var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// FileName is surat_jalan_<key>.pdf with spaces and path separators as "_".
func (g Group) FileName() string {
	return "surat_jalan_" + fileNameReplacer.Replace(g.Key) + ".pdf"
}

// Grouped renders one document per distinct value of field, sorted by key.
// A group that fails to render is logged and left out; the others are unaffected.
func (r *Renderer) Grouped(slips []slip.Slip, field GroupField) ([]Group, error) {
	if len(slips) == 0 {
		return nil, &Error{Index: -1, Err: ErrEmpty}
	}
	parts := map[string][]slip.Slip{}
	var keys []string
	for _, s := range slips {
		k, err := field.key(s)
		if err != nil {
			return nil, err
		}
		if _, ok := parts[k]; !ok {
			keys = append(keys, k)
		}
		parts[k] = append(parts[k], s)
	}
	sort.Strings(keys)

	out := make([]Group, 0, len(keys))
	for _, k := range keys {
		doc, err := r.Batch(parts[k])
		if err != nil {
			log.Printf("[render] group %q skipped: %v", k, err)
			continue
		}
		out = append(out, Group{Key: k, Doc: doc})
	}
	return out, nil
}

// ParseGroupField accepts the names used by the HTTP and CLI surfaces.
func ParseGroupField(s string) (GroupField, error) {
	f := GroupField(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return ByPlate, nil
	}
	if _, err := f.key(slip.Slip{}); err != nil {
		return "", err
	}
	return f, nil
}
