package tagsearch

import (
	"context"
	"strings"

	"github.com/uptrace/bun"
)

// CloudEntry is one tag value with its occurrence count across all rows.
type CloudEntry struct {
	Tag   string `bun:"tag" json:"tag"`
	Count int64  `bun:"count" json:"count"`
}

// RefineFunc narrows the unnested subquery before aggregation.
type RefineFunc func(*bun.SelectQuery) *bun.SelectQuery

// unnested selects the column's tags one row per tag, aliased by the
// singularized column name.
func (c *ColumnScope) unnested(db bun.IDB) *bun.SelectQuery {
	return db.NewSelect().
		Table(c.scope.table).
		ColumnExpr("UNNEST(?) AS ?", bun.Ident(c.column), bun.Ident(c.name))
}

// Cloud returns every distinct tag in the column with its occurrence
// count. Order is unspecified.
func (c *ColumnScope) Cloud(ctx context.Context, db bun.IDB, refine RefineFunc) ([]CloudEntry, error) {
	sub := c.unnested(db)
	if refine != nil {
		sub = refine(sub)
	}

	var entries []CloudEntry
	err := db.NewSelect().
		TableExpr("(?) AS ?", sub, bun.Ident(c.scope.table)).
		ColumnExpr("? AS tag", bun.Ident(c.name)).
		ColumnExpr("COUNT(*) AS count").
		GroupExpr("?", bun.Ident(c.name)).
		Scan(ctx, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// List returns the distinct tag values present in the column,
// unordered unless refined.
func (c *ColumnScope) List(ctx context.Context, db bun.IDB, refine RefineFunc) ([]string, error) {
	sub := c.unnested(db)
	if refine != nil {
		sub = refine(sub)
	}

	var tags []string
	err := db.NewSelect().
		TableExpr("(?) AS ?", sub, bun.Ident(c.scope.table)).
		ColumnExpr("DISTINCT ?", bun.Ident(c.name)).
		Scan(ctx, &tags)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Search matches tags by substring. The term is split on whitespace and
// every non-blank sub-term must match, each one further restricting the
// same unnested query. Results are distinct, ordered and capped at the
// scope's search limit.
func (c *ColumnScope) Search(ctx context.Context, db bun.IDB, term string) ([]string, error) {
	q := db.NewSelect().
		TableExpr("(?) AS ?", c.unnested(db), bun.Ident(c.scope.table)).
		ColumnExpr("DISTINCT ?", bun.Ident(c.name))
	for _, sub := range strings.Fields(term) {
		q = q.Where("? LIKE ?", bun.Ident(c.name), "%"+sub+"%")
	}

	var tags []string
	err := q.
		OrderExpr("?", bun.Ident(c.name)).
		Limit(c.scope.searchLimit).
		Scan(ctx, &tags)
	if err != nil {
		return nil, err
	}
	return tags, nil
}
