package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/gdpdash/internal/contracts"
)

func obs(entity string, year int, v contracts.Value) contracts.Observation {
	return contracts.Observation{EntityID: entity, Year: year, Value: v}
}

func fixture() []contracts.Observation {
	return []contracts.Observation{
		obs("USA", 1960, contracts.Some(5)),
		obs("USA", 1961, contracts.Some(10)),
		obs("USA", 1962, contracts.Some(15)),
		obs("XYZ", 1960, contracts.Missing()),
		obs("XYZ", 1961, contracts.Some(8)),
		obs("XYZ", 1962, contracts.Some(12)),
		obs("ZER", 1960, contracts.Some(0)),
		obs("ZER", 1961, contracts.Some(4)),
		obs("ZER", 1962, contracts.Missing()),
	}
}

func TestFilter_RoundTrip(t *testing.T) {
	points := Filter(fixture(), contracts.QueryParams{YearFrom: 1960, YearTo: 1961, EntityIDs: []string{"USA"}})

	assert.Equal(t, []contracts.SeriesPoint{
		{EntityID: "USA", Year: 1960, Value: contracts.Some(5)},
		{EntityID: "USA", Year: 1961, Value: contracts.Some(10)},
	}, points)
}

func TestFilter_EmptySelection(t *testing.T) {
	ranges := [][2]int{{1960, 1962}, {1961, 1961}, {1900, 2100}}
	for _, r := range ranges {
		points := Filter(fixture(), contracts.QueryParams{YearFrom: r[0], YearTo: r[1]})
		assert.NotNil(t, points)
		assert.Empty(t, points)
	}
}

func TestFilter_MissingValuesPassThrough(t *testing.T) {
	points := Filter(fixture(), contracts.QueryParams{YearFrom: 1960, YearTo: 1960, EntityIDs: []string{"XYZ"}})

	require.Len(t, points, 1)
	assert.True(t, points[0].Value.IsMissing())
}

func TestFilter_UnknownEntity(t *testing.T) {
	points := Filter(fixture(), contracts.QueryParams{YearFrom: 1960, YearTo: 1962, EntityIDs: []string{"ATL"}})
	assert.Empty(t, points)
}

func TestFilter_MonotonicInRange(t *testing.T) {
	ids := []string{"USA", "XYZ", "ZER"}
	data := fixture()

	for from := 1960; from <= 1962; from++ {
		for to := from; to <= 1962; to++ {
			narrow := Filter(data, contracts.QueryParams{YearFrom: from, YearTo: to, EntityIDs: ids})

			for wideFrom := 1960; wideFrom <= from; wideFrom++ {
				for wideTo := to; wideTo <= 1962; wideTo++ {
					wide := Filter(data, contracts.QueryParams{YearFrom: wideFrom, YearTo: wideTo, EntityIDs: ids})
					for _, p := range narrow {
						assert.Contains(t, wide, p, "[%d,%d] ⊂ [%d,%d]", from, to, wideFrom, wideTo)
					}
				}
			}
		}
	}
}

func TestSummarize_RoundTrip(t *testing.T) {
	summaries, err := Summarize(fixture(), contracts.QueryParams{YearFrom: 1960, YearTo: 1961, EntityIDs: []string{"USA"}})
	require.NoError(t, err)

	assert.Equal(t, []contracts.Summary{{
		EntityID:     "USA",
		ValueAtStart: contracts.Some(5),
		ValueAtEnd:   contracts.Some(10),
		Ratio:        contracts.Some(2),
	}}, summaries)
}

func TestSummarize_MissingStart(t *testing.T) {
	summaries, err := Summarize(fixture(), contracts.QueryParams{YearFrom: 1960, YearTo: 1961, EntityIDs: []string{"XYZ"}})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.True(t, summaries[0].ValueAtStart.IsMissing())
	assert.Equal(t, contracts.Some(8), summaries[0].ValueAtEnd)
	assert.True(t, summaries[0].Ratio.IsMissing())
}

func TestSummarize_OrderFollowsSelection(t *testing.T) {
	summaries, err := Summarize(fixture(), contracts.QueryParams{YearFrom: 1961, YearTo: 1962, EntityIDs: []string{"ZER", "USA", "XYZ"}})
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "ZER", summaries[0].EntityID)
	assert.Equal(t, "USA", summaries[1].EntityID)
	assert.Equal(t, "XYZ", summaries[2].EntityID)

	assert.True(t, summaries[0].Ratio.IsMissing(), "missing end value")
	assert.InDelta(t, 1.5, summaries[1].Ratio.Float, 1e-12)
	assert.InDelta(t, 1.5, summaries[2].Ratio.Float, 1e-12)
}

func TestSummarize_SingleYearRange(t *testing.T) {
	// from == to is a valid boundary: every present, non-zero value grows 1x
	summaries, err := Summarize(fixture(), contracts.QueryParams{YearFrom: 1961, YearTo: 1961, EntityIDs: []string{"USA", "XYZ", "ZER"}})
	require.NoError(t, err)

	for _, s := range summaries {
		assert.Equal(t, contracts.Some(1), s.Ratio, s.EntityID)
	}
}

func TestSummarize_MissingYearRow(t *testing.T) {
	tests := []struct {
		name   string
		params contracts.QueryParams
	}{
		{"unknown entity", contracts.QueryParams{YearFrom: 1960, YearTo: 1961, EntityIDs: []string{"ATL"}}},
		{"start out of range", contracts.QueryParams{YearFrom: 1959, YearTo: 1961, EntityIDs: []string{"USA"}}},
		{"end out of range", contracts.QueryParams{YearFrom: 1960, YearTo: 1963, EntityIDs: []string{"USA"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries, err := Summarize(fixture(), tt.params)
			assert.ErrorIs(t, err, ErrMissingYearRow)
			assert.Nil(t, summaries)
		})
	}
}

func TestSummarize_EmptySelection(t *testing.T) {
	summaries, err := Summarize(fixture(), contracts.QueryParams{YearFrom: 1960, YearTo: 1962})
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name       string
		start, end contracts.Value
		want       contracts.Value
	}{
		{"both present", contracts.Some(4), contracts.Some(10), contracts.Some(2.5)},
		{"missing start", contracts.Missing(), contracts.Some(10), contracts.Missing()},
		{"zero start", contracts.Some(0), contracts.Some(10), contracts.Missing()},
		{"missing end", contracts.Some(4), contracts.Missing(), contracts.Missing()},
		{"zero end", contracts.Some(4), contracts.Some(0), contracts.Some(0)},
		{"negative start", contracts.Some(-2), contracts.Some(4), contracts.Some(-2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ratio(tt.start, tt.end))
		})
	}
}

func TestIndex_Lookup(t *testing.T) {
	idx := NewIndex(fixture())

	v, ok := idx.Lookup("USA", 1962)
	assert.True(t, ok)
	assert.Equal(t, contracts.Some(15), v)

	v, ok = idx.Lookup("XYZ", 1960)
	assert.True(t, ok, "a missing value is still a row")
	assert.True(t, v.IsMissing())

	_, ok = idx.Lookup("USA", 2000)
	assert.False(t, ok)
}
