package tagsearch

import (
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// Predicate is the composed boolean condition for one TagQuery, not yet
// bound to a query. Empty tag lists produce an identity predicate that
// leaves the query untouched.
type Predicate struct {
	query TagQuery
}

func BuildPredicate(q TagQuery) Predicate {
	if q.Join == "" {
		q.Join = JoinOr
	}
	return Predicate{query: q}
}

// Identity reports whether applying the predicate is a no-op.
func (p Predicate) Identity() bool {
	return len(p.query.Tags) == 0 || len(p.query.Columns) == 0
}

// Apply attaches the predicate to the select query and returns it.
func (p Predicate) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	if p.Identity() {
		return q
	}

	columns := p.query.Columns
	if len(columns) == 1 {
		cond, args := p.condition(columns[0])
		return q.Where(cond, args...)
	}

	return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, column := range columns {
			cond, args := p.condition(column)
			if p.query.Join == JoinAnd {
				q = q.Where(cond, args...)
			} else {
				q = q.WhereOr(cond, args...)
			}
		}
		return q
	})
}

// condition builds the atomic array check for one column. Column names
// are not validated here; bad identifiers surface from the database.
func (p Predicate) condition(column string) (string, []any) {
	op := "@>"
	if p.query.Any {
		op = "&&"
	}
	args := []any{bun.Ident(column), pgdialect.Array(p.query.Tags)}
	if p.query.Exclude {
		// NULL columns count as "without", so coalesce before negating
		return fmt.Sprintf("NOT (COALESCE(?, '{}') %s ?)", op), args
	}
	return fmt.Sprintf("? %s ?", op), args
}
