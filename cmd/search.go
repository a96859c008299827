package cmd

import (
	"github.com/spf13/cobra"
	"github.com/utahvbr/bizdirctl/internal/finder"
)

var (
	searchQuery         string
	searchCategories    []string
	searchCounties      []string
	searchAllCategories bool
	searchAllCounties   bool
	searchIDOnly        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Filter businesses",
	Long: `Filter businesses by name text, business category and county.

Categories and counties are matched any-of within a facet; the name text and
both facets must all match. An empty facet does not constrain the results.`,
	Example: `  bizdirctl search bee
  bizdirctl search --query "red rock" --county Utah --county Salt_Lake
  bizdirctl search hardware --category Retail --all-counties
  bizdirctl search --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fcfg, err := finderConfig(appConfig)
		if err != nil {
			return err
		}

		req := finder.Request{
			Categories:    searchCategories,
			Counties:      searchCounties,
			AllCategories: searchAllCategories,
			AllCounties:   searchAllCounties,
		}
		req.SearchText = searchQuery
		if len(args) == 1 {
			req.SearchText = args[0]
		}
		return runSearch(cmd.Context(), cmd.OutOrStdout(), fcfg, req, searchIDOnly)
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "text the business name must contain")
	searchCmd.Flags().StringSliceVar(&searchCategories, "category", nil, "business category value (repeatable)")
	searchCmd.Flags().StringSliceVar(&searchCounties, "county", nil, "county value (repeatable)")
	searchCmd.Flags().BoolVar(&searchAllCategories, "all-categories", false, "select every business category")
	searchCmd.Flags().BoolVar(&searchAllCounties, "all-counties", false, "select every county")
	searchCmd.Flags().BoolVar(&searchIDOnly, "id-only", false, "print just record IDs, one per line")
	rootCmd.AddCommand(searchCmd)
}
