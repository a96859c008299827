package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/utahvbr/bizdirctl/internal/facet"
	"github.com/utahvbr/bizdirctl/internal/finder"
	"github.com/utahvbr/bizdirctl/internal/ui"
)

var facetsCmd = &cobra.Command{
	Use:   "facets [category|county]",
	Short: "List business category and county options",
	Long:  "List the selectable values of each facet, in the order the directory returns them.",
	Example: `  bizdirctl facets
  bizdirctl facets county
  bizdirctl facets --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := facet.Kinds
		if len(args) == 1 {
			k, err := facet.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []facet.Kind{k}
		}

		fcfg, err := finderConfig(appConfig)
		if err != nil {
			return err
		}
		return runFacets(cmd.Context(), cmd.OutOrStdout(), fcfg, kinds)
	},
}

func init() {
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(ctx context.Context, w io.Writer, fcfg finder.Config, kinds []facet.Kind) error {
	if ctx == nil {
		ctx = context.Background()
	}
	h := finder.NewHeadless(fcfg, dir)
	if err := h.Run(ctx, h.LoadOptions()); err != nil {
		return err
	}

	failures := map[string]string{}
	for _, n := range h.Notifications() {
		failures[n.Title] = n.Message
	}
	if msg, ok := failures[finder.TitleRecordTypeFailed]; ok {
		return fmt.Errorf("%s: %s", finder.TitleRecordTypeFailed, msg)
	}

	if jsonOutput {
		listings := make([]ui.FacetListing, 0, len(kinds))
		for _, k := range kinds {
			listings = append(listings, ui.FacetListing{
				Facet:   k.String(),
				Field:   k.Field(),
				Options: h.Options(k),
				Error:   failures[k.LoadErrorTitle()],
			})
		}
		return ui.FormatJSON(w, listings)
	}

	var buf bytes.Buffer
	for i, k := range kinds {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		if msg, ok := failures[k.LoadErrorTitle()]; ok {
			fmt.Fprintf(&buf, "%s: %s\n", k.LoadErrorTitle(), msg)
			continue
		}
		ui.FormatFacetOptions(&buf, k, h.Options(k), nil)
	}
	return ui.OutputOrPage(w, buf.String(), false, appConfig.MaxWidth, ui.ResolveTheme(appConfig.Theme))
}
