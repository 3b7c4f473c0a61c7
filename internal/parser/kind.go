package parser

import (
	"strings"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/normalize"
)

// kindSynonyms substring synonym table driving kind classification. Longer
// forms collapse to the tagged variant ("venda credito a vista" → CREDIT);
// anything unrecognized stays UNKNOWN.
var kindSynonyms = []struct {
	substrings []string
	kind       model.Kind
}{
	{[]string{"CRÉDITO", "CREDITO", "CREDIT"}, model.KindCredit},
	{[]string{"DÉBITO", "DEBITO", "DEBIT"}, model.KindDebit},
}

// ClassifyKind collapses free-text entry-kind labels to a tagged variant.
func ClassifyKind(raw string) model.Kind {
	text := normalize.Text(raw)
	if text == "" {
		return model.KindUnknown
	}
	for _, syn := range kindSynonyms {
		for _, sub := range syn.substrings {
			if strings.Contains(text, sub) {
				return syn.kind
			}
		}
	}
	return model.KindUnknown
}

// SplitBrandKind splits a combined "brand / modality" label into the brand
// (first token) and the kind classified from the remaining tokens.
func SplitBrandKind(raw string) (brand string, kind model.Kind) {
	text := strings.NewReplacer("/", " ", "-", " ").Replace(normalize.Text(raw))
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", model.KindUnknown
	}
	return fields[0], ClassifyKind(strings.Join(fields[1:], " "))
}
