package tagsearch

import (
	"strings"
	"sync"

	"github.com/jinzhu/inflection"
	"github.com/uptrace/bun"

	"github.com/ruby-gems/metka/common/errorx"
	"github.com/ruby-gems/metka/component/tagparser"
)

var defaultSearchLimit = 25

// Scope is the query surface installed for one table: the registration
// table mapping each configured tag column to its statically-typed
// filter and aggregate handlers.
type Scope struct {
	table       string
	columns     []string
	colScopes   map[string]*ColumnScope
	parser      tagparser.Parser
	searchLimit int
}

type Option func(*Scope)

// WithColumns configures the tag columns. At least one non-blank column
// is required.
func WithColumns(columns ...string) Option {
	return func(s *Scope) {
		s.columns = append(s.columns, columns...)
	}
}

// WithParser injects a parser, overriding the process-wide default.
func WithParser(p tagparser.Parser) Option {
	return func(s *Scope) {
		s.parser = p
	}
}

// WithSearchLimit caps the number of rows tag search returns.
func WithSearchLimit(n int) Option {
	return func(s *Scope) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

// New builds the scope for a table. It fails fast on a missing or blank
// column configuration, before anything is installed.
func New(table string, opts ...Option) (*Scope, error) {
	s := &Scope{
		table:       table,
		colScopes:   make(map[string]*ColumnScope),
		searchLimit: defaultSearchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.columns) == 0 {
		return nil, errorx.NoTagColumns(table)
	}
	columns := s.columns
	s.columns = nil
	if err := s.install(columns); err != nil {
		return nil, err
	}
	return s, nil
}

// install registers handler sets for columns not yet installed.
// Re-installing an existing column is a no-op, never a replacement.
func (s *Scope) install(columns []string) error {
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			return errorx.BlankTagColumn(s.table)
		}
		if _, ok := s.colScopes[column]; ok {
			continue
		}
		s.columns = append(s.columns, column)
		s.colScopes[column] = &ColumnScope{
			scope:  s,
			column: column,
			name:   inflection.Singular(column),
		}
	}
	return nil
}

func (s *Scope) Table() string {
	return s.table
}

// Columns returns the configured tag columns in registration order.
func (s *Scope) Columns() []string {
	columns := make([]string, len(s.columns))
	copy(columns, s.columns)
	return columns
}

// Column returns the handler set for one configured column.
func (s *Scope) Column(name string) (*ColumnScope, error) {
	cs, ok := s.colScopes[name]
	if !ok {
		return nil, errorx.ColumnNotTagged(s.table, name)
	}
	return cs, nil
}

// MustColumn is Column for statically known configuration.
func (s *Scope) MustColumn(name string) *ColumnScope {
	cs, err := s.Column(name)
	if err != nil {
		panic(err)
	}
	return cs
}

func (s *Scope) parserOrDefault() tagparser.Parser {
	if s.parser != nil {
		return s.parser
	}
	return tagparser.Default()
}

// TaggedWith is the general entry point. Defaults: all configured
// columns, OR join, containment match, no exclusion. An empty tag list
// applies no filter.
func (s *Scope) TaggedWith(q *bun.SelectQuery, tags []string, opts ...QueryOption) *bun.SelectQuery {
	tq := TagQuery{
		Columns: s.Columns(),
		Tags:    tags,
		Join:    JoinOr,
	}
	for _, opt := range opts {
		opt(&tq)
	}
	return BuildPredicate(tq).Apply(q)
}

// ColumnScope fixes the target column for the four convenience filters
// and the UNNEST-backed aggregates.
type ColumnScope struct {
	scope  *Scope
	column string
	// singularized column name, used as the unnest alias in generated
	// SQL (column "tags" unnests as "tag")
	name string
}

func (c *ColumnScope) Column() string {
	return c.column
}

// Name is the singularized helper name derived from the column.
func (c *ColumnScope) Name() string {
	return c.name
}

// WithAll selects records whose column contains every given tag.
func (c *ColumnScope) WithAll(q *bun.SelectQuery, tags []string) *bun.SelectQuery {
	return c.scope.TaggedWith(q, tags, On(c.column))
}

// WithAny selects records whose column shares at least one given tag.
func (c *ColumnScope) WithAny(q *bun.SelectQuery, tags []string) *bun.SelectQuery {
	return c.scope.TaggedWith(q, tags, On(c.column), MatchAny())
}

// WithoutAll selects the complement of WithAll.
func (c *ColumnScope) WithoutAll(q *bun.SelectQuery, tags []string) *bun.SelectQuery {
	return c.scope.TaggedWith(q, tags, On(c.column), Without())
}

// WithoutAny selects the complement of WithAny.
func (c *ColumnScope) WithoutAny(q *bun.SelectQuery, tags []string) *bun.SelectQuery {
	return c.scope.TaggedWith(q, tags, On(c.column), MatchAny(), Without())
}

// Registry maps table names to installed scopes. Registering the same
// table again merges new columns into the existing scope instead of
// replacing it.
type Registry struct {
	mu     sync.RWMutex
	scopes map[string]*Scope
}

func NewRegistry() *Registry {
	return &Registry{scopes: make(map[string]*Scope)}
}

func (r *Registry) Register(table string, opts ...Option) (*Scope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.scopes[table]
	if !ok {
		scope, err := New(table, opts...)
		if err != nil {
			return nil, err
		}
		r.scopes[table] = scope
		return scope, nil
	}

	// idempotent guard: keep the installed scope, only merge columns
	probe := &Scope{table: table}
	for _, opt := range opts {
		opt(probe)
	}
	if err := existing.install(probe.columns); err != nil {
		return nil, err
	}
	return existing, nil
}

// MustRegister is Register for statically known configuration.
func (r *Registry) MustRegister(table string, opts ...Option) *Scope {
	scope, err := r.Register(table, opts...)
	if err != nil {
		panic(err)
	}
	return scope
}

func (r *Registry) Lookup(table string) (*Scope, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scope, ok := r.scopes[table]
	return scope, ok
}
