package leaderboardmigrations

import (
	"context"
	"fmt"

	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating leaderboard_entries and leaderboard_rank_history tables...")

		if _, err := db.NewCreateTable().Model((*leaderboarddb.Entry)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().Model((*leaderboarddb.RankHistory)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Leaderboard pages order by score descending with user_id as tie-break.
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_leaderboard_entries_total_score ON leaderboard_entries (total_score DESC, user_id ASC) WHERE is_active",
			"CREATE INDEX IF NOT EXISTS idx_leaderboard_entries_weekly_score ON leaderboard_entries (weekly_score DESC, user_id ASC) WHERE is_active",
			"CREATE INDEX IF NOT EXISTS idx_leaderboard_entries_monthly_score ON leaderboard_entries (monthly_score DESC, user_id ASC) WHERE is_active",
			"CREATE INDEX IF NOT EXISTS idx_rank_history_user_timeframe ON leaderboard_rank_history (user_id, timeframe, recorded_at)",
		}
		for _, stmt := range indexes {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Leaderboard tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping leaderboard_entries and leaderboard_rank_history tables...")

		if _, err := db.NewDropTable().Model((*leaderboarddb.RankHistory)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewDropTable().Model((*leaderboarddb.Entry)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Leaderboard tables dropped successfully!")
		return nil
	})
}
