package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jakca/internal/service"
	"jakca/internal/store"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute [cafeID...]",
	Short: "Recompute aggregate ratings from stored reviews",
	Long: `Recompute rewrites each cafe's rating and review count from its reviews.
With no arguments every stored cafe is refreshed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, db, err := openDatabase(false)
		if err != nil {
			return err
		}
		defer disconnect(client)

		cafes := store.NewCafeStore(db)
		reviews := service.NewReviews(store.NewTransactor(db), cafes, store.NewReviewStore(db), nil, nil)
		return runRecompute(cmd.Context(), cmd, reviews, args)
	},
}

type recomputer interface {
	Recompute(ctx context.Context, cafeID string) (*float64, int, error)
	RecomputeAll(ctx context.Context) (int, error)
}

func runRecompute(ctx context.Context, cmd *cobra.Command, r recomputer, ids []string) error {
	if len(ids) == 0 {
		n, err := r.RecomputeAll(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "recomputed %d cafes\n", n)
		return nil
	}

	for _, id := range ids {
		rating, count, err := r.Recompute(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		if rating == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no reviews\n", id)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %.2f (%d reviews)\n", id, *rating, count)
	}
	return nil
}
