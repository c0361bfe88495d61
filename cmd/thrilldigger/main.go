// Command thrilldigger drives the probability engine from the console,
// either interactively (play) or as a self-play benchmark (bench),
// following operator-lifecycle-manager's cmd/operator-cli/main.go shape:
// a cobra root command gating a --debug flag, with one subcommand per
// mode of operation.
package main

import (
	"github.com/spf13/cobra"

	"github.com/torgeiws/thrilldigger/internal/logx"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "thrilldigger",
		Short: "thrilldigger",
		Long:  `A probability solver for a Minesweeper-like cave-digging game.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logx.SetDebug(debug)
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		logx.Fatalf("thrilldigger: %v", err)
	}
}
