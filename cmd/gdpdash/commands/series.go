package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/query"
)

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "기간/국가별 GDP 시계열 조회",
	Long: `선택한 기간과 국가의 GDP 관측값을 출력합니다 (단위: 십억 달러).

Example:
  go run ./cmd/gdpdash series
  go run ./cmd/gdpdash series --from 2000 --to 2023 --countries USA,CHN
  go run ./cmd/gdpdash series --countries KOR --json`,
	RunE: runSeries,
}

var seriesFlags selectionFlags

func init() {
	rootCmd.AddCommand(seriesCmd)
	seriesFlags.register(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
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

	params, err := seriesFlags.params(cmd, ds, a.defaults)
	if err != nil {
		return err
	}

	points := query.Filter(ds.Observations, params)
	out := cmd.OutOrStdout()

	if seriesFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	}

	if !params.HasSelection() {
		PrintWarning(out, "Select at least one country")
		return nil
	}

	printSeriesTable(cmd, params, points)
	return nil
}

// printSeriesTable prints one row per year and one column per country
func printSeriesTable(cmd *cobra.Command, params contracts.QueryParams, points []contracts.SeriesPoint) {
	out := cmd.OutOrStdout()

	values := make(map[string]map[int]contracts.Value, len(params.EntityIDs))
	for _, p := range points {
		if values[p.EntityID] == nil {
			values[p.EntityID] = make(map[int]contracts.Value)
		}
		values[p.EntityID][p.Year] = p.Value
	}

	PrintHeader(out, "GDP over time (billions of US$)",
		fmt.Sprintf("Period    : %d ~ %d", params.YearFrom, params.YearTo))

	columns := append([]string{"Year"}, params.EntityIDs...)
	widths := make([]int, len(columns))
	widths[0] = 6
	for i := 1; i < len(widths); i++ {
		widths[i] = 10
	}
	PrintTableHeader(out, columns, widths)

	for year := params.YearFrom; year <= params.YearTo; year++ {
		row := []string{strconv.Itoa(year)}
		for _, id := range params.EntityIDs {
			v, ok := values[id][year]
			if !ok {
				v = contracts.Missing()
			}
			row = append(row, formatBillions(v))
		}
		PrintTableRow(out, row, widths)
	}
}
