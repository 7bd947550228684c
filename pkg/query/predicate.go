package query

import (
	"fmt"
	"strings"
)

type Op string

const (
	Eq  Op = "="
	Gte Op = ">="
	Lte Op = "<="
)

// Predicate is a single column comparison. Predicates are only ever combined with AND.
type Predicate struct {
	Column string
	Op     Op
	Arg    any
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s ?", p.Column, p.Op)
}

// And drops the absent fragments and returns the rest in order.
func And(fragments ...Opt[Predicate]) []Predicate {
	preds := make([]Predicate, 0, len(fragments))
	for _, f := range fragments {
		if p, ok := f.Get(); ok {
			preds = append(preds, p)
		}
	}
	return preds
}

// whereClause renders " WHERE a = ? AND b >= ?" or the empty string when there is nothing to filter on.
func whereClause(preds []Predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}
	parts := make([]string, len(preds))
	args := make([]any, len(preds))
	for i, p := range preds {
		parts[i] = p.String()
		args[i] = p.Arg
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}
