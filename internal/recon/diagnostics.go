package recon

import (
	"fmt"
	"sort"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/normalize"
)

const (
	issueAuthorizerNotFound = "authorizer not found in bank report"
	issueRecordNotFound     = "matching bank record not found"
)

// diagnose explains why a primary row failed to match. With no candidate
// sharing the authorizer there is exactly one issue; otherwise every
// mismatching key field of every candidate contributes one issue, and the
// union is deduplicated. The result is never empty.
func diagnose(row model.CanonicalRow, candidates []*candidate) []string {
	if len(candidates) == 0 {
		return []string{issueAuthorizerNotFound}
	}

	seen := make(map[string]struct{})
	issues := make([]string, 0)
	add := func(issue string) {
		if _, dup := seen[issue]; dup {
			return
		}
		seen[issue] = struct{}{}
		issues = append(issues, issue)
	}

	for _, c := range candidates {
		for _, issue := range fieldIssues(row, c.row) {
			add(issue)
		}
	}

	if len(issues) == 0 {
		// Candidates existed but no enumerated field explains the failure
		// (e.g. the only agreeing candidate was already consumed).
		return []string{issueRecordNotFound}
	}

	sort.Strings(issues)
	return issues
}

func fieldIssues(a, b model.CanonicalRow) []string {
	out := make([]string, 0, 5)

	if normalize.Text(a.SaleDate) != normalize.Text(b.SaleDate) {
		out = append(out, divergence("sale date", a.SaleDate, b.SaleDate))
	}
	if normalize.Text(a.Brand) != normalize.Text(b.Brand) {
		out = append(out, divergence("brand", a.Brand, b.Brand))
	}
	if normalize.Text(string(a.Kind)) != normalize.Text(string(b.Kind)) {
		out = append(out, divergence("kind", string(a.Kind), string(b.Kind)))
	}
	if a.Installment != b.Installment {
		out = append(out, divergence("installment", fmt.Sprint(a.Installment), fmt.Sprint(b.Installment)))
	}
	if !grossEqual(a.Gross, b.Gross) {
		out = append(out, divergence("gross amount", a.Gross.StringFixed(2), b.Gross.StringFixed(2)))
	}

	return out
}

func divergence(field, primary, secondary string) string {
	return fmt.Sprintf("%s divergent: %s vs %s", field, primary, secondary)
}
