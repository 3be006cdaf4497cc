package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/gdpdash/internal/query"
)

// countriesCmd represents the countries command
var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "선택 가능한 국가 목록",
	RunE:  runCountries,
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ds, err := a.provider.Dataset(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	out := cmd.OutOrStdout()
	defaults := query.DefaultParams(ds.Observations, a.defaults).EntityIDs

	PrintHeader(out, fmt.Sprintf("%d countries, %d ~ %d", len(ds.Entities), ds.MinYear, ds.MaxYear),
		"Default selection : "+strings.Join(defaults, ", "))

	widths := []int{6, 40}
	PrintTableHeader(out, []string{"Code", "Name"}, widths)
	for _, e := range ds.Entities {
		PrintTableRow(out, []string{e.ID, e.Name}, widths)
	}
	return nil
}
