// Package listview derives a displayed subset of a record list from a
// filter specification: free-text search over designated fields, a
// categorical selector, a stable multi-type sort and 1-indexed
// pagination. It never mutates the source list.
//
// Every admin list endpoint (assistants, API keys, models, videos) runs
// through Apply so the filtering rules stay identical across screens.
package listview

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll is the sentinel selector value that bypasses the
// categorical filter. An empty selector behaves the same way.
const CategoryAll = "all"

// Spec describes the requested view: which records to keep, how to
// order them and which page to slice out.
type Spec struct {
	// Query is matched case-insensitively as a substring against the
	// schema's text fields. Empty matches everything.
	Query string

	// Category must equal the schema's category value exactly, except
	// for the CategoryAll sentinel (or empty), which passes all records.
	Category string

	// SortField selects a key from Schema.Keys. Empty skips sorting.
	SortField  string
	Descending bool

	// Page is 1-indexed. Out-of-range values are clamped into the valid
	// range, so a page that disappears after a filter narrows the list
	// shows the last remaining page instead of an empty one.
	Page     int
	PageSize int
}

// Schema tells the engine how to read records of type T. The set of
// sortable keys is closed and known at compile time; asking for a key
// of an unsupported type is a programming error and panics.
type Schema[T any] struct {
	// Text lists the fields searched by Spec.Query.
	Text []func(T) string

	// Category extracts the categorical terms a record belongs to
	// (e.g. ["active", "grammar"]); the selector passes when it equals
	// any of them. A nil Category disables categorical filtering.
	Category func(T) []string

	// Keys maps sort-field names to key extractors. Supported key types:
	// string (locale-aware, case-insensitive), time.Time, bool
	// (false before true), int, int64, float64.
	Keys map[string]func(T) any
}

// View is the result of applying a Spec: the full filtered+sorted list
// (for counts and export), the requested page slice, the page number
// actually served after clamping, and the total page count.
type View[T any] struct {
	All        []T
	Page       []T
	PageNum    int
	TotalPages int
}

// Apply filters, sorts and paginates items according to spec. The input
// slice is left untouched.
func Apply[T any](items []T, spec Spec, schema Schema[T]) View[T] {
	kept := make([]T, 0, len(items))

	query := strings.ToLower(strings.TrimSpace(spec.Query))
	for _, it := range items {
		if query != "" && !matchesQuery(it, query, schema.Text) {
			continue
		}
		if !matchesCategory(it, spec.Category, schema.Category) {
			continue
		}
		kept = append(kept, it)
	}

	if spec.SortField != "" {
		key, ok := schema.Keys[spec.SortField]
		if !ok {
			panic(fmt.Sprintf("listview: unknown sort field %q", spec.SortField))
		}
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(kept, func(i, j int) bool {
			c := compareKeys(key(kept[i]), key(kept[j]), coll)
			if spec.Descending {
				return c > 0
			}
			return c < 0
		})
	}

	pageSize := spec.PageSize
	if pageSize <= 0 {
		pageSize = len(kept)
		if pageSize == 0 {
			pageSize = 1
		}
	}

	totalPages := (len(kept) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := spec.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(kept) {
		start = len(kept)
	}
	if end > len(kept) {
		end = len(kept)
	}

	return View[T]{
		All:        kept,
		Page:       kept[start:end],
		PageNum:    page,
		TotalPages: totalPages,
	}
}

func matchesQuery[T any](it T, query string, text []func(T) string) bool {
	for _, f := range text {
		if strings.Contains(strings.ToLower(f(it)), query) {
			return true
		}
	}
	return false
}

func matchesCategory[T any](it T, category string, get func(T) []string) bool {
	if get == nil || category == "" || category == CategoryAll {
		return true
	}
	for _, term := range get(it) {
		if term == category {
			return true
		}
	}
	return false
}

// compareKeys orders two sort-key values of the same dynamic type.
// The direction flag is applied by the caller, uniformly, so ties keep
// their prior relative order under sort.SliceStable in both directions.
func compareKeys(a, b any, coll *collate.Collator) int {
	switch av := a.(type) {
	case string:
		return coll.CompareString(av, b.(string))
	case time.Time:
		bv := b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	case bool:
		bv := b.(bool)
		switch {
		case !av && bv:
			return -1
		case av && !bv:
			return 1
		}
		return 0
	case int:
		return cmpOrdered(av, b.(int))
	case int64:
		return cmpOrdered(av, b.(int64))
	case float64:
		return cmpOrdered(av, b.(float64))
	default:
		panic(fmt.Sprintf("listview: unsupported sort key type %T", a))
	}
}

func cmpOrdered[N int | int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
