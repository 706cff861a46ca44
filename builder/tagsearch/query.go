package tagsearch

// JoinOperator selects how conditions on different tag columns are
// combined. It never changes how tags combine within one column; there
// the whole tag list is a single containment or overlap check.
type JoinOperator string

const (
	JoinAnd JoinOperator = "AND"
	JoinOr  JoinOperator = "OR"
)

// TagQuery describes a single tag filter invocation. It is built per
// call and never persisted.
type TagQuery struct {
	// Columns are the target tag columns; callers default it to every
	// configured column.
	Columns []string
	// Tags is the parsed tag list. Empty means "match everything".
	Tags []string
	Join JoinOperator
	// Any switches a column condition from containment (all tags
	// present) to overlap (at least one tag present).
	Any bool
	// Exclude negates each column condition.
	Exclude bool
}

type QueryOption func(*TagQuery)

// On restricts the query to the given columns.
func On(columns ...string) QueryOption {
	return func(q *TagQuery) {
		if len(columns) > 0 {
			q.Columns = columns
		}
	}
}

// MatchAny requires a column to overlap the tag list instead of
// containing all of it.
func MatchAny() QueryOption {
	return func(q *TagQuery) {
		q.Any = true
	}
}

// Without inverts the match, selecting records the filter would reject.
func Without() QueryOption {
	return func(q *TagQuery) {
		q.Exclude = true
	}
}

// CombineWith sets the operator joining per-column conditions.
func CombineWith(op JoinOperator) QueryOption {
	return func(q *TagQuery) {
		q.Join = op
	}
}
