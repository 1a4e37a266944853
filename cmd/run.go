package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/uidrive/internal/output"
	"github.com/mj1618/uidrive/internal/platform"
	"github.com/mj1618/uidrive/internal/script"
)

var runCmd = &cobra.Command{
	Use:   "run <script.json>",
	Short: "Execute an automation script",
	Long: `Execute an ordered script of UI actions against the session store.

The script is a JSON document (YAML accepted on stdin with "-"):

  {
    "description": "log in",
    "steps": [
      { "stepId": "focus", "command": "click", "params": { "query": "Username" } },
      { "stepId": "name",  "command": "type",  "params": { "text": "jane" } },
      { "stepId": "go",    "command": "press", "params": { "keys": "enter" } },
      { "stepId": "done",  "command": "wait",  "params": { "query": "Welcome", "timeout": 10 } }
    ]
  }

By default the run stops at the first failing step; steps after the failure
are absent from the results. With --fail-fast=false every step runs and is
reported with its own success flag.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("session", "", "Pin the run to this session id (default: most recent capture)")
	runCmd.Flags().Bool("fail-fast", true, "Stop at the first failing step")
	runCmd.Flags().Bool("verbose", false, "Include step comments in results")
}

func runRun(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}

	sc, err := script.LoadFile(args[0])
	if err != nil {
		return err
	}

	session, _ := cmd.Flags().GetString("session")
	failFast, _ := cmd.Flags().GetBool("fail-fast")
	verbose, _ := cmd.Flags().GetBool("verbose")

	engine := script.NewEngine(st, provider)
	result := engine.Execute(cmd.Context(), sc, script.Options{
		FailFast: failFast,
		Verbose:  verbose,
		Session:  session,
	})
	return output.Print(result)
}
