package member

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"memberquery/pkg/query"
)

const (
	columnUsername = "m.username"
	columnAge      = "m.age"
	columnTeamName = "t.name"
)

// SearchCondition narrows a member search. Every field is optional and absent fields do not filter.
type SearchCondition struct {
	Username query.Opt[string]
	TeamName query.Opt[string]
	AgeGoe   query.Opt[int]
	AgeLoe   query.Opt[int]
}

type conditionRule struct {
	field    string
	fragment func(SearchCondition) query.Opt[query.Predicate]
}

func fragment[T any](o query.Opt[T], column string, op query.Op) query.Opt[query.Predicate] {
	return query.Map(o, func(v T) query.Predicate {
		return query.Predicate{Column: column, Op: op, Arg: v}
	})
}

// conditionRules holds exactly one rule per SearchCondition field, in WHERE clause order.
var conditionRules = []conditionRule{
	{field: "Username", fragment: func(c SearchCondition) query.Opt[query.Predicate] {
		return fragment(c.Username, columnUsername, query.Eq)
	}},
	{field: "TeamName", fragment: func(c SearchCondition) query.Opt[query.Predicate] {
		return fragment(c.TeamName, columnTeamName, query.Eq)
	}},
	{field: "AgeGoe", fragment: func(c SearchCondition) query.Opt[query.Predicate] {
		return fragment(c.AgeGoe, columnAge, query.Gte)
	}},
	{field: "AgeLoe", fragment: func(c SearchCondition) query.Opt[query.Predicate] {
		return fragment(c.AgeLoe, columnAge, query.Lte)
	}},
}

// Predicates returns the conjunction for c. An empty condition yields no predicates.
func (c SearchCondition) Predicates() []query.Predicate {
	fragments := make([]query.Opt[query.Predicate], len(conditionRules))
	for i, rule := range conditionRules {
		fragments[i] = rule.fragment(c)
	}
	return query.And(fragments...)
}

func (c SearchCondition) needsTeam() bool {
	return c.TeamName.IsSome()
}

// ConditionFromValues reads username, teamName, ageGoe and ageLoe from v. Blank values count as absent.
func ConditionFromValues(v url.Values) (SearchCondition, error) {
	cond := SearchCondition{
		Username: query.Text(v.Get("username")),
		TeamName: query.Text(v.Get("teamName")),
	}

	var err error
	if cond.AgeGoe, err = intParam(v, "ageGoe"); err != nil {
		return SearchCondition{}, err
	}
	if cond.AgeLoe, err = intParam(v, "ageLoe"); err != nil {
		return SearchCondition{}, err
	}
	return cond, nil
}

func intParam(v url.Values, key string) (query.Opt[int], error) {
	raw, ok := query.Text(v.Get(key)).Get()
	if !ok {
		return query.None[int](), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return query.None[int](), fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return query.Some(n), nil
}
