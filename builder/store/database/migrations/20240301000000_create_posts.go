package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

type Post struct {
	ID         int64    `bun:",pk,autoincrement" json:"id"`
	Title      string   `bun:",notnull" json:"title"`
	Body       string   `bun:",nullzero" json:"body"`
	Tags       []string `bun:",array,notnull,default:'{}'" json:"tags"`
	Categories []string `bun:",array,notnull,default:'{}'" json:"categories"`
	times
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		err := createTables(ctx, db, Post{})
		if err != nil {
			return err
		}
		// array-containment and overlap filters hit these indexes
		_, err = db.NewCreateIndex().
			Model((*Post)(nil)).
			Index("idx_posts_tags").
			ColumnExpr("tags").
			Using("GIN").
			Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewCreateIndex().
			Model((*Post)(nil)).
			Index("idx_posts_categories").
			ColumnExpr("categories").
			Using("GIN").
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		return dropTables(ctx, db, Post{})
	})
}
