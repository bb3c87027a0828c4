package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// FILTER TESTS
// ============================================================================

func TestFilterSearchPreservesOrder(t *testing.T) {
	records := []Record{{Title: "Apple"}, {Title: "Banana"}, {Title: "Avocado"}}
	state := DefaultQueryState()
	state.Search = "a"

	// "Banana" contains "a" too; the search is a substring match.
	got := Filter(NewView(records), state)
	assert.Equal(t, []string{"Apple", "Banana", "Avocado"}, viewTitles(got))

	state.Search = "av"
	got = Filter(NewView(records), state)
	assert.Equal(t, []string{"Avocado"}, viewTitles(got))
}

func TestFilterSearchIsCaseInsensitiveAndTrimmed(t *testing.T) {
	records := []Record{{Title: "Apple"}, {Title: "Cherry"}, {Title: "Avocado"}}
	state := DefaultQueryState()
	state.Search = "  A  "

	got := Filter(NewView(records), state)
	assert.Equal(t, []string{"Apple", "Avocado"}, viewTitles(got))
}

func TestFilterSearchMatchesCategory(t *testing.T) {
	state := DefaultQueryState()
	state.Search = "healthcare"

	got := FilterRecords(sampleRecords(), state)
	assert.Equal(t, []string{"Registered Nurse"}, titles(got))
}

func TestFilterCategoryAndRiskAreExact(t *testing.T) {
	records := sampleRecords()

	state := DefaultQueryState()
	state.Category = "Technology & Engineering"
	assert.Equal(t, []string{"Software Developer", "Network Engineer"}, titles(FilterRecords(records, state)))

	state.Category = "technology & engineering"
	assert.Empty(t, FilterRecords(records, state), "category match is case-sensitive")

	state = DefaultQueryState()
	state.Risk = RiskVeryHigh
	assert.Equal(t, []string{"Data Entry Clerk", "Bookkeeper"}, titles(FilterRecords(records, state)))
}

func TestFilterConjunction(t *testing.T) {
	state := DefaultQueryState()
	state.Category = "Finance & Business Services"
	state.Risk = RiskVeryHigh
	state.Search = "book"

	got := FilterRecords(sampleRecords(), state)
	assert.Equal(t, []string{"Bookkeeper"}, titles(got))
}

func TestFilterEmptyResultIsValid(t *testing.T) {
	state := DefaultQueryState()
	state.Search = "astronaut"

	got := Filter(NewView(sampleRecords()), state)
	assert.Equal(t, 0, got.Len())
	assert.Empty(t, got.Records())
}

func TestFilterDefaultStateReturnsEverything(t *testing.T) {
	records := sampleRecords()
	got := Filter(NewView(records), DefaultQueryState())
	assert.Equal(t, titles(records), viewTitles(got))

	// Zero-value filter fields behave like "all".
	got = Filter(NewView(records), QueryState{Page: 1})
	assert.Equal(t, len(records), got.Len())
}

func TestFilterIsIdempotent(t *testing.T) {
	state := DefaultQueryState()
	state.Search = "e"
	state.Risk = RiskMedium

	once := Filter(NewView(sampleRecords()), state)
	twice := Filter(once, state)
	assert.Equal(t, viewTitles(once), viewTitles(twice))
}

func TestFilterIsOrderedSubsetOfInput(t *testing.T) {
	records := sampleRecords()
	state := DefaultQueryState()
	state.Search = "n"

	got := Filter(NewView(records), state)
	require.NotZero(t, got.Len())

	prev := -1
	for i := 0; i < got.Len(); i++ {
		idx := got.SourceIndex(i)
		assert.Greater(t, idx, prev, "source indices must be strictly increasing")
		assert.Equal(t, records[idx], got.At(i))
		prev = idx
	}
}
