package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile  string
	datasetFile string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gdpdash",
	Short: "GDP dashboard - 국가별 GDP 시계열 조회",
	Long: `gdpdash Unified CLI

World Bank 형식의 wide GDP 테이블(연도별 컬럼)을 읽어
국가/연도 단위 관측값으로 변환하고, 기간 필터와 성장 배수를 제공합니다.

Usage:
  go run ./cmd/gdpdash [command]

Examples:
  go run ./cmd/gdpdash api
  go run ./cmd/gdpdash summary --from 1960 --to 2023
  go run ./cmd/gdpdash series --countries USA,CHN
  go run ./cmd/gdpdash check
  go run ./cmd/gdpdash test-db`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "env file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&datasetFile, "dataset", "", "dataset definition YAML (overrides DATASET_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
