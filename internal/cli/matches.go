package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List recently finished matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchList

			path := fmt.Sprintf("/api/v1/matches/recent?limit=%d", limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of matches to list")

	return cmd
}
