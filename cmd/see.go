package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/uidrive/internal/model"
	"github.com/mj1618/uidrive/internal/output"
	"github.com/mj1618/uidrive/internal/platform"
	"github.com/mj1618/uidrive/internal/script"
)

// SeeResult is the output of the see command.
type SeeResult struct {
	OK            bool                        `yaml:"ok"                      json:"ok"`
	Action        string                      `yaml:"action"                  json:"action"`
	Session       string                      `yaml:"session"                 json:"session"`
	App           string                      `yaml:"app,omitempty"           json:"app,omitempty"`
	Window        string                      `yaml:"window,omitempty"        json:"window,omitempty"`
	Screenshot    string                      `yaml:"screenshot,omitempty"    json:"screenshot,omitempty"`
	Annotated     string                      `yaml:"annotated,omitempty"     json:"annotated,omitempty"`
	ElementCount  int                         `yaml:"elementCount"            json:"elementCount"`
	Elements      map[string]model.UIElement  `yaml:"elements,omitempty"      json:"elements,omitempty"`
}

var seeCmd = &cobra.Command{
	Use:   "see",
	Short: "Capture on-screen UI elements into a session",
	Long: `Capture a screenshot, detect its UI elements, and persist the result as a
session snapshot. Subsequent commands and scripts address the detected
elements by id (e.g. "B1") or by query string until the next capture.`,
	RunE: runSee,
}

func init() {
	rootCmd.AddCommand(seeCmd)
	seeCmd.Flags().String("app", "", "Application to capture (frontmost window)")
	seeCmd.Flags().String("window", "", "Window title fragment")
	seeCmd.Flags().Int("pid", 0, "Process ID to capture")
	seeCmd.Flags().String("session", "", "Reuse an existing session id")
	seeCmd.Flags().Bool("quiet", false, "Omit the element map from output")
}

func runSee(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}

	app, _ := cmd.Flags().GetString("app")
	window, _ := cmd.Flags().GetString("window")
	pid, _ := cmd.Flags().GetInt("pid")
	session, _ := cmd.Flags().GetString("session")
	quiet, _ := cmd.Flags().GetBool("quiet")

	engine := script.NewEngine(st, provider)
	sessionID, snap, err := engine.Capture(script.CaptureOptions{
		SessionID: session,
		App:       app,
		Window:    window,
		PID:       pid,
	})
	if err != nil {
		return err
	}

	result := SeeResult{
		OK:           true,
		Action:       "see",
		Session:      sessionID,
		App:          snap.ApplicationName,
		Window:       snap.WindowTitle,
		Screenshot:   snap.ScreenshotPath,
		Annotated:    snap.AnnotatedPath,
		ElementCount: len(snap.Elements),
	}
	if !quiet {
		result.Elements = snap.Elements
	}
	return output.Print(result)
}
