package database

import (
	"context"

	"github.com/ruby-gems/metka/builder/tagsearch"
)

// tagScopes holds the tag query surface installed per table.
// Registration is idempotent, so every store constructor may register
// its own table.
var tagScopes = tagsearch.NewRegistry()

type Post struct {
	ID         int64    `bun:",pk,autoincrement" json:"id"`
	Title      string   `bun:",notnull" json:"title"`
	Body       string   `bun:",nullzero" json:"body"`
	Tags       []string `bun:",array,notnull,default:'{}'" json:"tags"`
	Categories []string `bun:",array,notnull,default:'{}'" json:"categories"`

	times
}

type PostStore interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	FindByID(ctx context.Context, id int64) (*Post, error)
	// TaggedWith filters posts by tags across the configured columns.
	TaggedWith(ctx context.Context, tags []string, opts ...tagsearch.QueryOption) ([]Post, error)
	WithAllTags(ctx context.Context, tags []string) ([]Post, error)
	WithAnyTags(ctx context.Context, tags []string) ([]Post, error)
	WithoutAllTags(ctx context.Context, tags []string) ([]Post, error)
	WithoutAnyTags(ctx context.Context, tags []string) ([]Post, error)
	// TagCloud returns each distinct tag with its occurrence count.
	TagCloud(ctx context.Context, refine tagsearch.RefineFunc) ([]tagsearch.CloudEntry, error)
	TagList(ctx context.Context) ([]string, error)
	TagSearch(ctx context.Context, term string) ([]string, error)
	CategoryCloud(ctx context.Context, refine tagsearch.RefineFunc) ([]tagsearch.CloudEntry, error)
	// SetTagList parses value and stores it on the post, an empty parse
	// storing an empty array.
	SetTagList(post *Post, value any) error
	GetTagList(post *Post) string
}

type postStoreImpl struct {
	db         *DB
	scope      *tagsearch.Scope
	tags       *tagsearch.ColumnScope
	categories *tagsearch.ColumnScope
}

func NewPostStore() PostStore {
	return NewPostStoreWithDB(defaultDB)
}

func NewPostStoreWithDB(db *DB) PostStore {
	scope := tagScopes.MustRegister("posts",
		tagsearch.WithColumns("tags", "categories"))
	return &postStoreImpl{
		db:         db,
		scope:      scope,
		tags:       scope.MustColumn("tags"),
		categories: scope.MustColumn("categories"),
	}
}

func (s *postStoreImpl) Create(ctx context.Context, post *Post) (*Post, error) {
	_, err := s.db.Operator.Core.NewInsert().Model(post).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postStoreImpl) FindByID(ctx context.Context, id int64) (*Post, error) {
	var post Post
	err := s.db.Operator.Core.NewSelect().
		Model(&post).
		Where("post.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *postStoreImpl) TaggedWith(ctx context.Context, tags []string, opts ...tagsearch.QueryOption) ([]Post, error) {
	var posts []Post
	q := s.db.Operator.Core.NewSelect().Model(&posts)
	q = s.scope.TaggedWith(q, tags, opts...)
	err := q.Order("id").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postStoreImpl) WithAllTags(ctx context.Context, tags []string) ([]Post, error) {
	var posts []Post
	err := s.tags.WithAll(s.db.Operator.Core.NewSelect().Model(&posts), tags).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postStoreImpl) WithAnyTags(ctx context.Context, tags []string) ([]Post, error) {
	var posts []Post
	err := s.tags.WithAny(s.db.Operator.Core.NewSelect().Model(&posts), tags).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postStoreImpl) WithoutAllTags(ctx context.Context, tags []string) ([]Post, error) {
	var posts []Post
	err := s.tags.WithoutAll(s.db.Operator.Core.NewSelect().Model(&posts), tags).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postStoreImpl) WithoutAnyTags(ctx context.Context, tags []string) ([]Post, error) {
	var posts []Post
	err := s.tags.WithoutAny(s.db.Operator.Core.NewSelect().Model(&posts), tags).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postStoreImpl) TagCloud(ctx context.Context, refine tagsearch.RefineFunc) ([]tagsearch.CloudEntry, error) {
	return s.tags.Cloud(ctx, s.db.Operator.Core, refine)
}

func (s *postStoreImpl) TagList(ctx context.Context) ([]string, error) {
	return s.tags.List(ctx, s.db.Operator.Core, nil)
}

func (s *postStoreImpl) TagSearch(ctx context.Context, term string) ([]string, error) {
	return s.tags.Search(ctx, s.db.Operator.Core, term)
}

func (s *postStoreImpl) CategoryCloud(ctx context.Context, refine tagsearch.RefineFunc) ([]tagsearch.CloudEntry, error) {
	return s.categories.Cloud(ctx, s.db.Operator.Core, refine)
}

func (s *postStoreImpl) SetTagList(post *Post, value any) error {
	return s.scope.Assign(&post.Tags, value)
}

func (s *postStoreImpl) GetTagList(post *Post) string {
	return s.scope.Format(post.Tags)
}
