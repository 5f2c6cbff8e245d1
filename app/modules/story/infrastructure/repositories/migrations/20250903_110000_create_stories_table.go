package storymigrations

import (
	"context"
	"fmt"

	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating stories table...")

		if _, err := db.NewCreateTable().Model((*storydb.Story)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_stories_author_id ON stories (author_id)",
			"CREATE INDEX IF NOT EXISTS idx_stories_status_published_at ON stories (status, published_at DESC)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_stories_slug ON stories (slug)",
		}
		for _, stmt := range indexes {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Stories table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping stories table...")

		if _, err := db.NewDropTable().Model((*storydb.Story)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Stories table dropped successfully!")
		return nil
	})
}
