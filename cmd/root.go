package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/uidrive/internal/output"
	"github.com/mj1618/uidrive/internal/platform"
	"github.com/mj1618/uidrive/internal/store"
	"github.com/mj1618/uidrive/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "uidrive",
	Short: "Capture UI element snapshots and run automation scripts against them",
	Long: `uidrive captures a snapshot of on-screen UI elements into a persisted
session, lets you address those elements by stable identifiers, and executes
ordered automation scripts (click, type, scroll, clipboard, window ops)
against the snapshot.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("root", "", "Session storage root (default $UIDRIVE_DIR or ~/.uidrive/session)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, _ := rootCmd.PersistentFlags().GetBool("pretty"); pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}

// openStore opens the session store at the configured root.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		var err error
		root, err = store.DefaultRoot()
		if err != nil {
			return nil, err
		}
	}
	return store.New(root)
}
