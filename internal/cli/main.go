package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mkrylatov/cutplan/internal/logging"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "cutplan <input>",
		Short:        "Plan cut points for splitting a video into segments",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logging.Init(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "out", "Output directory")
	root.Flags().Int("segments", 8, "Number of segments to plan")
	root.Flags().Bool("split", false, "Extract segment files (stream copy)")
	root.Flags().Bool("verbose", false, "Debug logging")

	// Hidden tuning flags (internal)
	root.Flags().Float64("target-duration", 0, "Target segment duration seconds (overrides even split)")
	root.Flags().Float64("scene-sensitivity", 0, "Scene detection sensitivity 0..1")
	_ = root.Flags().MarkHidden("target-duration")
	_ = root.Flags().MarkHidden("scene-sensitivity")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
