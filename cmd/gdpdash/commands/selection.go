package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/query"
)

// selectionFlags are the range/country flags shared by series and summary
type selectionFlags struct {
	from      int
	to        int
	countries []string
	asJSON    bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.from, "from", 0, "first year (default: dataset min)")
	cmd.Flags().IntVar(&f.to, "to", 0, "last year (default: dataset max)")
	cmd.Flags().StringSliceVar(&f.countries, "countries", nil, "country codes, e.g. USA,CHN (default: DEU,FRA,GBR,BRA,MEX,JPN,KOR,CHN,USA)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON instead of a table")
}

// params starts from the default selection and applies the flags that were set
func (f *selectionFlags) params(cmd *cobra.Command, ds *contracts.Dataset, defaults []string) (contracts.QueryParams, error) {
	params := query.DefaultParams(ds.Observations, defaults)

	if cmd.Flags().Changed("from") {
		params.YearFrom = f.from
	}
	if cmd.Flags().Changed("to") {
		params.YearTo = f.to
	}
	if cmd.Flags().Changed("countries") {
		ids := make([]string, 0, len(f.countries))
		for _, c := range f.countries {
			if c = strings.TrimSpace(c); c != "" {
				ids = append(ids, strings.ToUpper(c))
			}
		}
		params.EntityIDs = ids
	}

	return params, query.CheckSelection(ds, params)
}
