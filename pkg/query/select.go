package query

import (
	"fmt"
	"strings"
)

// Join is an inner join clause, e.g. {Table: "teams t", On: "m.team_id = t.team_id"}.
type Join struct {
	Table string
	On    string
}

// Select describes one SELECT statement. Bind vars are rendered as '?'; callers rebind for their driver.
type Select struct {
	Columns []string
	From    string
	Joins   []Join
	Where   []Predicate
	OrderBy []string
}

// Window limits a rendered query to Limit rows starting at Offset.
type Window struct {
	Limit  int
	Offset int
}

// SQL renders the content query. A nil window fetches every row.
func (s Select) SQL(w *Window) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(s.Columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(s.Columns, ", "))
	}
	args := s.writeSource(&b)
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(s.OrderBy, ", "))
	}
	if w != nil {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, w.Limit, w.Offset)
	}
	return b.String(), args
}

// CountSQL renders a COUNT(*) over the same source and filter, ignoring columns, order and window.
func (s Select) CountSQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*)")
	args := s.writeSource(&b)
	return b.String(), args
}

func (s Select) writeSource(b *strings.Builder) []any {
	fmt.Fprintf(b, " FROM %s", s.From)
	for _, j := range s.Joins {
		fmt.Fprintf(b, " INNER JOIN %s ON %s", j.Table, j.On)
	}
	where, args := whereClause(s.Where)
	b.WriteString(where)
	return args
}
