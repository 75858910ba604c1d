package presenter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/medwatch/disease-insights-api/extractor/entities"
)

const fallbackFilename = "disease_info.pdf"

// foldDiacritics strips combining marks so accented names survive the ASCII
// filename filter ("Rougeole sévère" -> "Rougeole severe").
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DocumentFilename derives the download filename from the record's display
// name: diacritics folded, unsafe runes dropped, spaces underscored, with a
// fixed .pdf extension.
func DocumentFilename(record *entities.DiseaseRecord) string {
	name := strings.TrimSpace(record.Name)
	if name == "" {
		return fallbackFilename
	}

	if folded, _, err := transform.String(foldDiacritics, name); err == nil {
		name = folded
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	if b.Len() == 0 {
		return fallbackFilename
	}
	return b.String() + ".pdf"
}
