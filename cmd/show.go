package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/ui"
)

var showIDOnly bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a business registration",
	Long:  "Display the full detail page of a business registration.",
	Example: `  bizdirctl show a3kf9x2m7q1z
  bizdirctl show a3kf9x2m7q1z --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	showCmd.Flags().BoolVar(&showIDOnly, "id-only", false, "print just the record ID")
	rootCmd.AddCommand(showCmd)
}

func runShow(ctx context.Context, w io.Writer, id string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if appConfig.Query.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, appConfig.Query.Timeout)
		defer cancel()
	}

	r, err := dir.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return fmt.Errorf("business %s not found: %w", id, directory.ErrNotFound)
		}
		return err
	}

	if showIDOnly {
		fmt.Fprintln(w, r.ID)
		return nil
	}
	if jsonOutput {
		return ui.FormatJSON(w, r)
	}

	theme := ui.ResolveTheme(appConfig.Theme)
	var buf bytes.Buffer
	ui.FormatRecordFull(&buf, r, theme.MarkdownStyle)
	return ui.OutputOrPage(w, buf.String(), false, appConfig.MaxWidth, theme)
}
