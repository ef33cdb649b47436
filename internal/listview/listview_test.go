package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name      string
	Category  string
	Active    bool
	CreatedAt time.Time
	Tokens    int64
}

func day(n int) time.Time {
	return time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC)
}

var testSchema = Schema[record]{
	Text: []func(record) string{
		func(r record) string { return r.Name },
	},
	Category: func(r record) []string {
		status := "inactive"
		if r.Active {
			status = "active"
		}
		return []string{status, r.Category}
	},
	Keys: map[string]func(record) any{
		"name":      func(r record) any { return r.Name },
		"createdAt": func(r record) any { return r.CreatedAt },
		"active":    func(r record) any { return r.Active },
		"tokens":    func(r record) any { return r.Tokens },
	},
}

func names(rs []record) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestApplySortStability(t *testing.T) {
	items := []record{
		{Name: "b", Tokens: 1},
		{Name: "a", Tokens: 2},
		{Name: "B", Tokens: 3},
		{Name: "A", Tokens: 4},
	}

	// "b" and "B" compare equal under case-insensitive collation, as do
	// "a" and "A"; ties must keep their input order in both directions.
	asc := Apply(items, Spec{SortField: "name", Page: 1, PageSize: 10}, testSchema)
	require.Len(t, asc.All, 4)
	assert.Equal(t, []string{"a", "A", "b", "B"}, names(asc.All))

	desc := Apply(items, Spec{SortField: "name", Descending: true, Page: 1, PageSize: 10}, testSchema)
	assert.Equal(t, []string{"b", "B", "a", "A"}, names(desc.All))
}

func TestApplyFilterIdempotence(t *testing.T) {
	items := []record{
		{Name: "Grammar Coach", Category: "grammar", Active: true},
		{Name: "Travel Buddy", Category: "travel", Active: false},
		{Name: "Grammar Drills", Category: "grammar", Active: true},
	}
	spec := Spec{Query: "grammar", Category: "active", Page: 1, PageSize: 10}

	once := Apply(items, spec, testSchema)
	twice := Apply(once.All, spec, testSchema)
	assert.Equal(t, once.All, twice.All)
	assert.Equal(t, once.TotalPages, twice.TotalPages)
}

func TestApplyPaginationCoverage(t *testing.T) {
	items := make([]record, 7)
	for i := range items {
		items[i] = record{Name: string(rune('a' + i))}
	}

	spec := Spec{SortField: "name", PageSize: 3}
	first := Apply(items, Spec{SortField: "name", Page: 1, PageSize: 3}, testSchema)
	require.Equal(t, 3, first.TotalPages)

	var combined []record
	for p := 1; p <= first.TotalPages; p++ {
		spec.Page = p
		combined = append(combined, Apply(items, spec, testSchema).Page...)
	}
	assert.Equal(t, first.All, combined)
}

func TestApplyClampsOutOfRangePage(t *testing.T) {
	items := []record{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	view := Apply(items, Spec{SortField: "name", Page: 9, PageSize: 2}, testSchema)
	assert.Equal(t, 2, view.PageNum)
	assert.Equal(t, 2, view.TotalPages)
	assert.Equal(t, []string{"c"}, names(view.Page))

	empty := Apply(nil, Spec{Page: 3, PageSize: 2}, testSchema)
	assert.Equal(t, 1, empty.PageNum)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Page)
}

func TestApplyCategorySentinel(t *testing.T) {
	items := []record{
		{Name: "a", Active: true, Category: "grammar"},
		{Name: "b", Active: false, Category: "travel"},
	}

	all := Apply(items, Spec{Category: CategoryAll, Page: 1, PageSize: 10}, testSchema)
	assert.Len(t, all.All, 2)

	blank := Apply(items, Spec{Page: 1, PageSize: 10}, testSchema)
	assert.Len(t, blank.All, 2)

	active := Apply(items, Spec{Category: "active", Page: 1, PageSize: 10}, testSchema)
	assert.Equal(t, []string{"a"}, names(active.All))

	travel := Apply(items, Spec{Category: "travel", Page: 1, PageSize: 10}, testSchema)
	assert.Equal(t, []string{"b"}, names(travel.All))
}

func TestApplyQueryIsCaseInsensitive(t *testing.T) {
	items := []record{
		{Name: "Grammar Coach"},
		{Name: "Travel Buddy"},
	}
	view := Apply(items, Spec{Query: "GRAMMAR", Page: 1, PageSize: 10}, testSchema)
	assert.Equal(t, []string{"Grammar Coach"}, names(view.All))
}

func TestApplySortsByTypedKeys(t *testing.T) {
	items := []record{
		{Name: "c", Active: true, CreatedAt: day(3), Tokens: 30},
		{Name: "a", Active: false, CreatedAt: day(1), Tokens: 10},
		{Name: "b", Active: true, CreatedAt: day(2), Tokens: 20},
	}

	byDate := Apply(items, Spec{SortField: "createdAt", Page: 1, PageSize: 10}, testSchema)
	assert.Equal(t, []string{"a", "b", "c"}, names(byDate.All))

	byActive := Apply(items, Spec{SortField: "active", Page: 1, PageSize: 10}, testSchema)
	assert.Equal(t, "a", byActive.All[0].Name) // false sorts before true

	byTokensDesc := Apply(items, Spec{SortField: "tokens", Descending: true, Page: 1, PageSize: 10}, testSchema)
	assert.Equal(t, []string{"c", "b", "a"}, names(byTokensDesc.All))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := []record{{Name: "b"}, {Name: "a"}}
	Apply(items, Spec{SortField: "name", Page: 1, PageSize: 10}, testSchema)
	assert.Equal(t, []string{"b", "a"}, names(items))
}

func TestApplyPanicsOnUnknownSortField(t *testing.T) {
	assert.Panics(t, func() {
		Apply([]record{{Name: "a"}}, Spec{SortField: "nope", Page: 1, PageSize: 10}, testSchema)
	})
}

func TestApplyPanicsOnUnsupportedKeyType(t *testing.T) {
	schema := Schema[record]{
		Keys: map[string]func(record) any{
			"bad": func(r record) any { return struct{}{} },
		},
	}
	assert.Panics(t, func() {
		Apply([]record{{Name: "a"}, {Name: "b"}}, Spec{SortField: "bad", Page: 1, PageSize: 10}, schema)
	})
}

// The end-to-end example: sorting by name with stable ties on creation
// order, then slicing pages of two.
func TestApplyEndToEndScenario(t *testing.T) {
	items := []record{
		{Name: "B", CreatedAt: day(2)},
		{Name: "A", CreatedAt: day(1)},
		{Name: "A", CreatedAt: day(3)},
	}

	page1 := Apply(items, Spec{SortField: "name", Page: 1, PageSize: 2}, testSchema)
	require.Equal(t, 2, page1.TotalPages)
	require.Len(t, page1.Page, 2)
	assert.Equal(t, day(1), page1.Page[0].CreatedAt)
	assert.Equal(t, day(3), page1.Page[1].CreatedAt)

	page2 := Apply(items, Spec{SortField: "name", Page: 2, PageSize: 2}, testSchema)
	require.Len(t, page2.Page, 1)
	assert.Equal(t, "B", page2.Page[0].Name)
}

func TestControllerResetsPageOnFilterChange(t *testing.T) {
	c := NewController(testSchema, 10)
	c.SetPage(3)
	require.Equal(t, 3, c.Spec().Page)

	c.SetQuery("grammar")
	assert.Equal(t, 1, c.Spec().Page)

	c.SetPage(3)
	c.SetQuery("grammar") // unchanged value, page stays
	assert.Equal(t, 3, c.Spec().Page)

	c.SetCategory("active")
	assert.Equal(t, 1, c.Spec().Page)
}

func TestControllerSortDoesNotResetPage(t *testing.T) {
	c := NewController(testSchema, 10)
	c.SetPage(2)
	c.SetSort("name", true)
	assert.Equal(t, 2, c.Spec().Page)

	spec := c.Spec()
	assert.Equal(t, "name", spec.SortField)
	assert.True(t, spec.Descending)
}
