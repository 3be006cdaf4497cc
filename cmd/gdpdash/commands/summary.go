package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/query"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "기간 시작/종료 GDP와 성장 배수",
	Long: `선택한 국가별로 기간 시작/종료 시점의 GDP와 성장 배수(end / start)를 출력합니다.
시작 값이 없거나 0이면 배수는 N/A 입니다.

Example:
  go run ./cmd/gdpdash summary
  go run ./cmd/gdpdash summary --from 1990 --to 2020 --countries USA,CHN,KOR`,
	RunE: runSummary,
}

var summaryFlags selectionFlags

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryFlags.register(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
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

	params, err := summaryFlags.params(cmd, ds, a.defaults)
	if err != nil {
		return err
	}

	summaries, err := query.Summarize(ds.Observations, params)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	out := cmd.OutOrStdout()
	if summaryFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if !params.HasSelection() {
		PrintWarning(out, "Select at least one country")
		return nil
	}

	printSummaryTable(out, ds, params, summaries)
	return nil
}

func printSummaryTable(out io.Writer, ds *contracts.Dataset, params contracts.QueryParams, summaries []contracts.Summary) {
	names := make(map[string]string, len(ds.Entities))
	for _, e := range ds.Entities {
		names[e.ID] = e.Name
	}

	PrintHeader(out, fmt.Sprintf("GDP in %d", params.YearTo),
		fmt.Sprintf("Period    : %d ~ %d", params.YearFrom, params.YearTo))

	widths := []int{24, 12, 12, 8}
	PrintTableHeader(out, []string{"Country", fmt.Sprint(params.YearFrom), fmt.Sprint(params.YearTo), "Growth"}, widths)

	for _, s := range summaries {
		label := s.EntityID
		if name := names[s.EntityID]; name != "" {
			label = fmt.Sprintf("%s (%s)", name, s.EntityID)
		}
		PrintTableRow(out, []string{
			label,
			formatBillions(s.ValueAtStart),
			formatBillions(s.ValueAtEnd),
			formatRatio(s.Ratio),
		}, widths)
	}
}
