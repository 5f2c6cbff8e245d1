package usermigrations

import (
	"context"
	"fmt"

	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users tables...")

		if _, err := db.NewCreateTable().Model((*userdb.User)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*userdb.Follow)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		indexes := []string{
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users (username)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_follows_pair ON user_follows (follower_id, followed_id)",
			"CREATE INDEX IF NOT EXISTS idx_user_follows_followed ON user_follows (followed_id)",
		}
		for _, stmt := range indexes {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Users tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping users tables...")

		if _, err := db.NewDropTable().Model((*userdb.Follow)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*userdb.User)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Users tables dropped successfully!")
		return nil
	})
}
