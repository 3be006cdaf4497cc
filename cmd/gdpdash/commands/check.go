package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/gdpdash/internal/contracts"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "데이터셋 품질(결측 비율) 확인",
	Long: `데이터셋을 로드하고 결측 비율을 확인합니다.

확인 항목:
- 국가 수 / 관측값 수
- 전체 커버리지 (결측이 아닌 값의 비율)
- 연도별 커버리지 (가장 희박한 연도)
- 값이 전혀 없는 국가

커버리지가 MIN_COVERAGE 미만이면 0이 아닌 코드로 종료합니다.

Example:
  go run ./cmd/gdpdash check
  MIN_COVERAGE=0.8 go run ./cmd/gdpdash check`,
	RunE: runCheck,
}

var checkJSON bool

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the report as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	report := a.gate.Check(ds)
	out := cmd.OutOrStdout()

	if checkJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(cmd, report)
	}

	if !report.Passed {
		return fmt.Errorf("coverage %.1f%% is below the minimum %.1f%%", report.Coverage*100, report.MinCoverage*100)
	}
	return nil
}

func printReport(cmd *cobra.Command, report *contracts.QualityReport) {
	out := cmd.OutOrStdout()

	PrintHeader(out, "📊 Dataset Quality", "Source    : "+report.Source)

	PrintKeyValue(out, "Countries", fmt.Sprint(report.TotalEntities), 14)
	PrintKeyValue(out, "Observations", fmt.Sprint(report.Observations), 14)
	PrintKeyValue(out, "Missing", fmt.Sprint(report.MissingValues), 14)
	PrintKeyValue(out, "Coverage", fmt.Sprintf("%.1f%%", report.Coverage*100), 14)
	PrintKeyValue(out, "Minimum", fmt.Sprintf("%.1f%%", report.MinCoverage*100), 14)

	if year, coverage, ok := report.SparsestYear(); ok {
		PrintKeyValue(out, "Sparsest year", fmt.Sprintf("%d (%.1f%%)", year, coverage*100), 14)
	}

	if len(report.EmptyEntities) > 0 {
		PrintKeyValue(out, "No data", strings.Join(report.EmptyEntities, ", "), 14)
	}

	fmt.Fprintln(out)
	if report.Passed {
		PrintSuccess(out, "Quality check passed")
	} else {
		PrintError(out, "Quality check failed")
	}
}
