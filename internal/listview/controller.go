package listview

// Controller owns the filter state for one screen session. It exists so
// the page-reset rule lives in one place: narrowing the result set via
// a new query or category always lands the caller back on page 1.
type Controller[T any] struct {
	spec   Spec
	schema Schema[T]
}

// NewController returns a controller starting on page 1 with the given
// page size and no filters.
func NewController[T any](schema Schema[T], pageSize int) *Controller[T] {
	return &Controller[T]{
		spec:   Spec{Category: CategoryAll, Page: 1, PageSize: pageSize},
		schema: schema,
	}
}

// SetQuery updates the free-text query. A changed value resets the
// current page to 1.
func (c *Controller[T]) SetQuery(q string) {
	if q == c.spec.Query {
		return
	}
	c.spec.Query = q
	c.spec.Page = 1
}

// SetCategory updates the categorical selector. A changed value resets
// the current page to 1.
func (c *Controller[T]) SetCategory(category string) {
	if category == c.spec.Category {
		return
	}
	c.spec.Category = category
	c.spec.Page = 1
}

// SetSort updates the sort field and direction without touching the page.
func (c *Controller[T]) SetSort(field string, descending bool) {
	c.spec.SortField = field
	c.spec.Descending = descending
}

// SetPage moves to the given 1-indexed page. Out-of-range values are
// clamped when the view is computed, not here, since the list length is
// not known yet.
func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.spec.Page = page
}

// Spec returns the current filter specification.
func (c *Controller[T]) Spec() Spec {
	return c.spec
}

// View applies the current specification to items.
func (c *Controller[T]) View(items []T) View[T] {
	return Apply(items, c.spec, c.schema)
}
