package table

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Search keeps the records where any of fields contains term, ignoring case
// and accents ("debut" matches "Début"). No fields means every field.
func Search(records []Record, term string, fields ...string) []Record {
	needle := foldAccents(strings.TrimSpace(term))
	if needle == "" {
		return Filter(records, func(Record) bool { return true })
	}

	return Filter(records, func(r Record) bool {
		if len(fields) == 0 {
			for i := 0; i < r.Len(); i++ {
				_, v := r.At(i)
				if strings.Contains(foldAccents(v.String()), needle) {
					return true
				}
			}
			return false
		}
		for _, f := range fields {
			v, ok := r.Value(f)
			if ok && strings.Contains(foldAccents(v.String()), needle) {
				return true
			}
		}
		return false
	})
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}
