package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/ruby-gems/metka/builder/store/database"
	"github.com/ruby-gems/metka/builder/tagsearch"
	"github.com/ruby-gems/metka/common/tests"
)

func seedPosts(t *testing.T, db *database.DB) database.PostStore {
	t.Helper()
	store := database.NewPostStoreWithDB(db)
	ctx := context.TODO()

	fixtures := []database.Post{
		{Title: "p1", Tags: []string{"a", "b"}, Categories: []string{"x"}},
		{Title: "p2", Tags: []string{"b"}, Categories: []string{"x", "y"}},
		{Title: "p3", Tags: []string{"b", "c"}, Categories: []string{}},
		{Title: "p4", Tags: []string{}, Categories: []string{"y"}},
		{Title: "p5", Tags: []string{"bc"}, Categories: []string{}},
	}
	for i := range fixtures {
		_, err := store.Create(ctx, &fixtures[i])
		require.Nil(t, err)
	}
	return store
}

func titles(posts []database.Post) []string {
	names := make([]string, 0, len(posts))
	for _, post := range posts {
		names = append(names, post.Title)
	}
	return names
}

func TestPostStore_WithAllWithAny(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := seedPosts(t, db)
	ctx := context.TODO()

	posts, err := store.WithAllTags(ctx, []string{"b", "c"})
	require.Nil(t, err)
	require.Equal(t, []string{"p3"}, titles(posts))

	posts, err = store.WithAnyTags(ctx, []string{"a", "c"})
	require.Nil(t, err)
	require.Equal(t, []string{"p1", "p3"}, titles(posts))
}

func TestPostStore_WithoutScopesComplement(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := seedPosts(t, db)
	ctx := context.TODO()

	posts, err := store.WithoutAllTags(ctx, []string{"b", "c"})
	require.Nil(t, err)
	require.Equal(t, []string{"p1", "p2", "p4", "p5"}, titles(posts))

	posts, err = store.WithoutAnyTags(ctx, []string{"a", "c"})
	require.Nil(t, err)
	require.Equal(t, []string{"p2", "p4", "p5"}, titles(posts))
}

func TestPostStore_TaggedWith(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := seedPosts(t, db)
	ctx := context.TODO()

	// empty tag list applies no filter
	posts, err := store.TaggedWith(ctx, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, titles(posts))

	// default join is OR across both configured columns
	posts, err = store.TaggedWith(ctx, []string{"x"})
	require.Nil(t, err)
	require.Equal(t, []string{"p1", "p2"}, titles(posts))

	// AND join requires every column to match
	posts, err = store.TaggedWith(ctx, []string{"b"},
		tagsearch.CombineWith(tagsearch.JoinAnd))
	require.Nil(t, err)
	require.Empty(t, titles(posts))

	// restricting to one column
	posts, err = store.TaggedWith(ctx, []string{"y"}, tagsearch.On("categories"))
	require.Nil(t, err)
	require.Equal(t, []string{"p2", "p4"}, titles(posts))

	posts, err = store.TaggedWith(ctx, []string{"x", "y"},
		tagsearch.On("categories"), tagsearch.MatchAny())
	require.Nil(t, err)
	require.Equal(t, []string{"p1", "p2", "p4"}, titles(posts))
}

func TestPostStore_TagCloud(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := seedPosts(t, db)
	ctx := context.TODO()

	entries, err := store.TagCloud(ctx, nil)
	require.Nil(t, err)

	counts := make(map[string]int64)
	for _, entry := range entries {
		counts[entry.Tag] = entry.Count
	}
	require.Equal(t, map[string]int64{"a": 1, "b": 3, "c": 1, "bc": 1}, counts)
}

func TestPostStore_TagCloudRefined(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := seedPosts(t, db)
	ctx := context.TODO()

	// refine the unnested rows before aggregation
	entries, err := store.TagCloud(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("categories @> ?", pgdialect.Array([]string{"x"}))
	})
	require.Nil(t, err)

	counts := make(map[string]int64)
	for _, entry := range entries {
		counts[entry.Tag] = entry.Count
	}
	require.Equal(t, map[string]int64{"a": 1, "b": 2}, counts)
}

func TestPostStore_CategoryCloud(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := seedPosts(t, db)
	ctx := context.TODO()

	entries, err := store.CategoryCloud(ctx, nil)
	require.Nil(t, err)

	counts := make(map[string]int64)
	for _, entry := range entries {
		counts[entry.Tag] = entry.Count
	}
	require.Equal(t, map[string]int64{"x": 2, "y": 2}, counts)
}

func TestPostStore_TagList(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := seedPosts(t, db)
	ctx := context.TODO()

	tags, err := store.TagList(ctx)
	require.Nil(t, err)
	require.ElementsMatch(t, []string{"a", "b", "bc", "c"}, tags)
}

func TestPostStore_TagSearch(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := seedPosts(t, db)
	ctx := context.TODO()

	// every sub-term must match as a substring
	tags, err := store.TagSearch(ctx, "b c")
	require.Nil(t, err)
	require.Equal(t, []string{"bc"}, tags)

	// blank sub-terms are skipped
	tags, err = store.TagSearch(ctx, "  b   c  ")
	require.Nil(t, err)
	require.Equal(t, []string{"bc"}, tags)

	// a blank term applies no filter; results are distinct and ordered
	tags, err = store.TagSearch(ctx, "")
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b", "bc", "c"}, tags)
	require.LessOrEqual(t, len(tags), 25)

	tags, err = store.TagSearch(ctx, "z")
	require.Nil(t, err)
	require.Empty(t, tags)
}

func TestPostStore_TagListAccessors(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()
	store := database.NewPostStoreWithDB(db)
	ctx := context.TODO()

	post := &database.Post{Title: "draft"}
	require.Nil(t, store.SetTagList(post, "ruby, go, ruby"))
	require.Equal(t, []string{"ruby", "go"}, post.Tags)
	require.Equal(t, "ruby, go", store.GetTagList(post))

	created, err := store.Create(ctx, post)
	require.Nil(t, err)
	found, err := store.FindByID(ctx, created.ID)
	require.Nil(t, err)
	require.Equal(t, "ruby, go", store.GetTagList(found))

	// a value parsing to nothing stores an empty array, not NULL
	blank := &database.Post{Title: "blank"}
	require.Nil(t, store.SetTagList(blank, " , "))
	require.NotNil(t, blank.Tags)
	created, err = store.Create(ctx, blank)
	require.Nil(t, err)

	var isNull bool
	err = db.Core.NewSelect().
		Table("posts").
		ColumnExpr("tags IS NULL").
		Where("id = ?", created.ID).
		Scan(ctx, &isNull)
	require.Nil(t, err)
	require.False(t, isNull)

	found, err = store.FindByID(ctx, created.ID)
	require.Nil(t, err)
	require.Len(t, found.Tags, 0)
}

func TestPostStore_RepeatedConstructionShareScope(t *testing.T) {
	db := tests.InitTestDB()
	defer db.Close()

	// constructing the store twice re-registers the same table; the
	// installed scope must survive untouched
	first := database.NewPostStoreWithDB(db)
	second := database.NewPostStoreWithDB(db)

	ctx := context.TODO()
	_, err := first.Create(ctx, &database.Post{Title: "only", Tags: []string{"t"}})
	require.Nil(t, err)

	posts, err := second.WithAnyTags(ctx, []string{"t"})
	require.Nil(t, err)
	require.Equal(t, []string{"only"}, titles(posts))
}
