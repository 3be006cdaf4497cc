package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/gdpdash/internal/contracts"
)

func TestEntities(t *testing.T) {
	assert.Equal(t, []string{"USA", "XYZ", "ZER"}, Entities(fixture()))
	assert.Empty(t, Entities(nil))
}

func TestYearBounds(t *testing.T) {
	first, last, ok := YearBounds(fixture())
	assert.True(t, ok)
	assert.Equal(t, 1960, first)
	assert.Equal(t, 1962, last)

	_, _, ok = YearBounds(nil)
	assert.False(t, ok)
}

func TestDefaultParams(t *testing.T) {
	data := append(fixture(),
		obs("KOR", 1960, contracts.Some(1)),
		obs("DEU", 1960, contracts.Some(1)),
	)

	params := DefaultParams(data, nil)
	assert.Equal(t, contracts.QueryParams{
		YearFrom:  1960,
		YearTo:    1962,
		EntityIDs: []string{"DEU", "KOR", "USA"}, // DefaultEntities order
	}, params)

	custom := DefaultParams(data, []string{"XYZ", "ATL"})
	assert.Equal(t, []string{"XYZ"}, custom.EntityIDs)
}

func TestCheckSelection(t *testing.T) {
	ds := &contracts.Dataset{
		Entities:     []contracts.Entity{{ID: "USA"}, {ID: "XYZ"}, {ID: "ZER"}},
		Observations: fixture(),
		MinYear:      1960,
		MaxYear:      1962,
	}

	tests := []struct {
		name    string
		params  contracts.QueryParams
		wantErr error
	}{
		{"full range", contracts.QueryParams{YearFrom: 1960, YearTo: 1962, EntityIDs: []string{"USA", "ZER"}}, nil},
		{"empty selection", contracts.QueryParams{YearFrom: 1961, YearTo: 1961}, nil},
		{"reversed range", contracts.QueryParams{YearFrom: 1962, YearTo: 1960}, contracts.ErrInvalidRange},
		{"start before dataset", contracts.QueryParams{YearFrom: 1959, YearTo: 1961, EntityIDs: []string{"USA"}}, ErrInvalidSelection},
		{"end after dataset", contracts.QueryParams{YearFrom: 1960, YearTo: 1963, EntityIDs: []string{"USA"}}, ErrInvalidSelection},
		{"unknown country", contracts.QueryParams{YearFrom: 1960, YearTo: 1961, EntityIDs: []string{"USA", "ATL"}}, ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSelection(ds, tt.params)
			if tt.wantErr == nil {
				require.NoError(t, err)
				_, err = Summarize(ds.Observations, tt.params)
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
