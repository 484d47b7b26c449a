package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ctxgen/pkg/catalog"
	"ctxgen/pkg/errors"
)

func newListCommand() *cobra.Command {
	var (
		category     string
		patternsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list-exclusions",
		Short: "List all default exclusions organized by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			out := cmd.OutOrStdout()

			switch {
			case category != "":
				if _, ok := cat.Category(category); !ok {
					msg := fmt.Sprintf("invalid category ID: %s. Use 'list-exclusions' to see valid IDs", category)
					return errors.NewError(errors.InvalidCategory, msg, "", nil)
				}
				return cat.PrintCategory(out, category)
			case patternsOnly:
				return cat.PrintPatternsOnly(out)
			default:
				return cat.PrintExclusions(out)
			}
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "show patterns for a specific category ID only")
	cmd.Flags().BoolVar(&patternsOnly, "patterns-only", false, "show only patterns (wildcards first, then literals)")
	return cmd
}
