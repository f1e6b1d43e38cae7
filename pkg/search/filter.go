// Package search builds the WHERE-clause fragments used by the repositories:
// a disjunctive substring filter for free-text search and AND-combined
// equality pairs for exact lookups.
package search

import (
	"fmt"
	"strings"
)

// Equality is one exact-match condition. Column must name a column the target
// repository knows about; repositories validate it against their allow-list so
// request payloads can never smuggle in arbitrary column names.
type Equality struct {
	Column string
	Value  any
}

// SubstringOrFilter builds a case-insensitive substring predicate over the
// given columns, OR-combined:
//
//	(name::text ILIKE $1 OR mail::text ILIKE $1 ...)
//
// It returns the parenthesized clause and the single wildcarded argument bound
// at argPos. Callers with an empty parameter skip the filter entirely instead
// of calling this; emptiness is not special-cased here.
func SubstringOrFilter(columns []string, parameter string, argPos int) (string, any) {
	conds := make([]string, 0, len(columns))
	for _, column := range columns {
		conds = append(conds, fmt.Sprintf("%s::text ILIKE $%d", column, argPos))
	}
	return "(" + strings.Join(conds, " OR ") + ")", "%" + parameter + "%"
}

// EqualityClause AND-combines the given equality pairs into a clause with
// placeholders starting at argPos. Every column is checked against allowed;
// an unknown column is an error, not a pass-through.
func EqualityClause(conds []Equality, allowed map[string]bool, argPos int) (string, []any, error) {
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for i, cond := range conds {
		if !allowed[cond.Column] {
			return "", nil, fmt.Errorf("unknown filter column %q", cond.Column)
		}
		parts = append(parts, fmt.Sprintf("%s = $%d", cond.Column, argPos+i))
		args = append(args, cond.Value)
	}
	return strings.Join(parts, " AND "), args, nil
}
