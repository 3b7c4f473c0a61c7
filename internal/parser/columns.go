package parser

import (
	"strings"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
)

// LogicalField one required (or optional) column of the bank report source.
type LogicalField string

const (
	FieldAuthorizer  LogicalField = "authorizer"
	FieldSaleDate    LogicalField = "sale_date"
	FieldEntryDate   LogicalField = "entry_date"
	FieldDueDate     LogicalField = "due_date"
	FieldBrandKind   LogicalField = "brand_kind"
	FieldInstallment LogicalField = "installment"
	FieldGross       LogicalField = "gross"
	FieldNet         LogicalField = "net"
	FieldDiscount    LogicalField = "discount"
	FieldEntryType   LogicalField = "entry_type"
)

// columnVariants accepted header spellings per logical field. Matching is
// exact (normalized) first, then keyword containment: every word of a
// variant must appear somewhere in the candidate header.
var columnVariants = map[LogicalField][]string{
	FieldAuthorizer: {
		"codigo de autorizacao", "cod autorizacao", "autorizacao",
		"autorizador", "nsu",
	},
	FieldSaleDate: {
		"data da venda", "data venda",
	},
	FieldEntryDate: {
		"data de lancamento", "data do lancamento", "data lancamento",
	},
	FieldDueDate: {
		"data de vencimento", "vencimento", "previsao de pagamento",
		"data de pagamento",
	},
	FieldBrandKind: {
		"bandeira/modalidade", "bandeira / modalidade",
		"bandeira e modalidade", "bandeira modalidade",
	},
	FieldInstallment: {
		"parcela", "parcelas", "numero da parcela",
	},
	FieldGross: {
		"valor da venda", "valor bruto", "valor bruto da venda",
	},
	FieldNet: {
		"valor liquido da parcela", "valor liquido",
	},
	FieldDiscount: {
		"valor do desconto", "desconto",
	},
	FieldEntryType: {
		"tipo de lancamento", "tipo lancamento",
	},
}

// requiredFields fields the report mapper cannot work without. Entry type
// and entry date are optional refinements.
var requiredFields = []LogicalField{
	FieldAuthorizer,
	FieldSaleDate,
	FieldDueDate,
	FieldBrandKind,
	FieldInstallment,
	FieldGross,
	FieldNet,
	FieldDiscount,
}

var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "õ", "o", "ô", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
	"º", "", "°", "",
)

// normalizeHeader folds a header label for comparison: trim, lower-case,
// strip accents, squeeze whitespace.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = accentFolder.Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// matchVariant reports whether a normalized candidate header satisfies one
// accepted variant.
func matchVariant(candidate, variant string) bool {
	if candidate == variant {
		return true
	}
	for _, word := range strings.Fields(variant) {
		if !strings.Contains(candidate, word) {
			return false
		}
	}
	return true
}

// ResolveColumns maps every known logical field to its column index in the
// header row. Fields with no accepted header are simply absent from the map.
func ResolveColumns(headers []string) map[LogicalField]int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	out := make(map[LogicalField]int)
	for field, variants := range columnVariants {
		if idx := findColumn(normalized, variants); idx >= 0 {
			out[field] = idx
		}
	}
	return out
}

func findColumn(normalized []string, variants []string) int {
	for _, v := range variants {
		for i, h := range normalized {
			if h == v {
				return i
			}
		}
	}
	for _, v := range variants {
		for i, h := range normalized {
			if h != "" && matchVariant(h, v) {
				return i
			}
		}
	}
	return -1
}

// ValidateStructure reports which required logical fields have no accepted
// header in the row. Advisory only; it never aborts a run.
func ValidateStructure(headers []string) model.StructureReport {
	resolved := ResolveColumns(headers)

	missing := make([]string, 0)
	for _, field := range requiredFields {
		if _, ok := resolved[field]; !ok {
			missing = append(missing, string(field))
		}
	}

	return model.StructureReport{
		IsValid:       len(missing) == 0,
		MissingFields: missing,
	}
}

// HeaderKeywords words that identify the effective header row of a detailed
// settlement report whose first rows are titles and filter echoes.
var HeaderKeywords = []string{"autorizacao", "bandeira", "venda", "lancamento", "parcela"}

// LooksLikeReportHeader reports whether a raw row carries enough known
// header keywords to be the effective header.
func LooksLikeReportHeader(row []string) bool {
	hits := 0
	for _, cell := range row {
		c := normalizeHeader(cell)
		if c == "" {
			continue
		}
		for _, kw := range HeaderKeywords {
			if strings.Contains(c, kw) {
				hits++
				break
			}
		}
	}
	return hits >= 2
}
