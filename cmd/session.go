package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/uidrive/internal/output"
	"github.com/mj1618/uidrive/internal/store"
)

// SessionListResult is the output of `session list`.
type SessionListResult struct {
	OK       bool                `yaml:"ok"       json:"ok"`
	Action   string              `yaml:"action"   json:"action"`
	Root     string              `yaml:"root"     json:"root"`
	Sessions []store.SessionInfo `yaml:"sessions" json:"sessions"`
}

// SessionCleanResult is the output of `session clean` and `session delete`.
type SessionCleanResult struct {
	OK      bool   `yaml:"ok"      json:"ok"`
	Action  string `yaml:"action"  json:"action"`
	Removed int    `yaml:"removed" json:"removed"`
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and clean persisted capture sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions, newest first",
	RunE:  runSessionList,
}

var sessionPathCmd = &cobra.Command{
	Use:   "path [session-id]",
	Short: "Print the storage root, or one session's directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionPath,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete one session and its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

var sessionCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old sessions",
	Long:  "Delete sessions older than --days. With --all, delete every session.",
	RunE:  runSessionClean,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionPathCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	sessionCmd.AddCommand(sessionCleanCmd)

	sessionCleanCmd.Flags().Int("days", 7, "Delete sessions older than this many days")
	sessionCleanCmd.Flags().Bool("all", false, "Delete every session")
}

func runSessionList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	infos, err := st.List()
	if err != nil {
		return err
	}
	return output.Print(SessionListResult{
		OK:       true,
		Action:   "session-list",
		Root:     st.Root(),
		Sessions: infos,
	})
}

func runSessionPath(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		fmt.Println(st.SessionDir(args[0]))
		return nil
	}
	fmt.Println(st.Root())
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	if err := st.Delete(args[0]); err != nil {
		return err
	}
	return output.Print(SessionCleanResult{OK: true, Action: "session-delete", Removed: 1})
}

func runSessionClean(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	days, _ := cmd.Flags().GetInt("days")

	var removed int
	if all {
		removed, err = st.DeleteAll()
	} else {
		removed, err = st.DeleteOlderThan(days)
	}
	if err != nil {
		return err
	}
	return output.Print(SessionCleanResult{OK: true, Action: "session-clean", Removed: removed})
}
