package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/progression"
	"github.com/abhisek/podium/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progression and session statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ledger, err := s.Load(ctx)
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}

		prof, onboarded := ledger.Profile()
		if !onboarded {
			fmt.Println("No profile yet. Run 'podium' to get started.")
			return nil
		}

		history := ledger.History()
		tier := progression.TierFor(prof.Level)

		fmt.Printf("Profile:   %s\n", prof.Name)
		fmt.Printf("Goal:      %s\n", prof.PrimaryGoal)
		fmt.Printf("Persona:   %s\n", prof.PersonaName())
		fmt.Println()
		fmt.Printf("Day:       %d (%s)\n", prof.Level, tier.Descriptor)
		fmt.Printf("Streak:    %d\n", prof.Streak)
		fmt.Printf("Sessions:  %d\n", len(history))

		if len(history) > 0 {
			var claritySum, eyeSum int
			for _, rec := range history {
				claritySum += rec.Analysis.Metrics.ClarityScore
				eyeSum += rec.Analysis.Metrics.EyeContactScore
			}
			fmt.Printf("Avg clarity:     %d\n", claritySum/len(history))
			fmt.Printf("Avg eye contact: %d\n", eyeSum/len(history))

			last := history[len(history)-1]
			fmt.Println()
			fmt.Printf("Last session:  %s\n", last.Topic)
			fmt.Printf("Last clarity:  %d\n", last.Analysis.Metrics.ClarityScore)
		}

		if wl := coach.WatchlistFrom(history); wl != "" {
			fmt.Println()
			fmt.Printf("Watchlist: %s\n", wl)
		}

		return nil
	},
}
