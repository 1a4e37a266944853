package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/uidrive/internal/model"
	"github.com/mj1618/uidrive/internal/output"
	"github.com/mj1618/uidrive/internal/platform"
)

// ClipboardReadResult is the output of `clipboard read`.
type ClipboardReadResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Text   string `yaml:"text"   json:"text"`
}

// ClipboardWriteResult is the output of `clipboard write` and `clipboard clear`.
type ClipboardWriteResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
}

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Read, write, or clear the system clipboard",
}

var clipboardReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the current clipboard text",
	RunE:  runClipboardRead,
}

var clipboardWriteCmd = &cobra.Command{
	Use:   "write [text]",
	Short: "Write text to the clipboard",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClipboardWrite,
}

var clipboardClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the clipboard",
	RunE:  runClipboardClear,
}

func init() {
	rootCmd.AddCommand(clipboardCmd)
	clipboardCmd.AddCommand(clipboardReadCmd)
	clipboardCmd.AddCommand(clipboardWriteCmd)
	clipboardCmd.AddCommand(clipboardClearCmd)

	clipboardWriteCmd.Flags().String("text", "", "Text to write to the clipboard")
}

func clipboardService() (platform.Clipboard, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	if provider.Clipboard == nil {
		return nil, fmt.Errorf("clipboard not supported on this platform")
	}
	return provider.Clipboard, nil
}

func runClipboardRead(cmd *cobra.Command, args []string) error {
	clipboard, err := clipboardService()
	if err != nil {
		return err
	}
	payload, err := clipboard.Get()
	if err != nil {
		return err
	}
	return output.Print(ClipboardReadResult{
		OK:     true,
		Action: "clipboard-read",
		Text:   payload.Text(),
	})
}

func runClipboardWrite(cmd *cobra.Command, args []string) error {
	clipboard, err := clipboardService()
	if err != nil {
		return err
	}

	var text string
	if len(args) > 0 {
		text = args[0]
	}
	if flagText, _ := cmd.Flags().GetString("text"); flagText != "" {
		text = flagText
	}
	if text == "" {
		return fmt.Errorf("specify text as a positional argument or --text flag")
	}

	if err := clipboard.Set(model.TextPayload(text)); err != nil {
		return err
	}
	return output.Print(ClipboardWriteResult{OK: true, Action: "clipboard-write"})
}

func runClipboardClear(cmd *cobra.Command, args []string) error {
	clipboard, err := clipboardService()
	if err != nil {
		return err
	}
	if err := clipboard.Clear(); err != nil {
		return err
	}
	return output.Print(ClipboardWriteResult{OK: true, Action: "clipboard-clear"})
}
