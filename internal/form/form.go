// Package form manages a single draft record through create/edit
// lifecycles with field-level validation, independent of how the record
// is persisted. The admin UI's create and edit dialogs both sit on top
// of the same controller; only the seed differs.
package form

// Rule is one field-level validation check. Check returns an empty
// string when the draft passes and a human-readable message otherwise.
type Rule[D any] struct {
	Field string
	Check func(D) string
}

// Required builds a rule failing with message when the field is empty.
func Required[D any](field, message string, get func(D) string) Rule[D] {
	return Rule[D]{Field: field, Check: func(d D) string {
		if get(d) == "" {
			return message
		}
		return ""
	}}
}

// MinLength builds a rule failing with message when the field is empty
// or shorter than min characters.
func MinLength[D any](field, message string, min int, get func(D) string) Rule[D] {
	return Rule[D]{Field: field, Check: func(d D) string {
		if len(get(d)) < min {
			return message
		}
		return ""
	}}
}

// Controller holds one draft record plus its validation state. The
// controller has two states: clean (no validation run since the last
// change) and validated (Errors reflects the current draft). Any update
// moves it back to clean. Submission and persistence are the caller's
// business; nothing here is asynchronous.
type Controller[D any] struct {
	defaults  D
	draft     D
	rules     []Rule[D]
	errors    map[string]string
	validated bool
}

// New returns a controller in create mode: the draft starts from the
// given defaults. The defaults are captured by value and reused by Reset.
func New[D any](defaults D, rules ...Rule[D]) *Controller[D] {
	return &Controller[D]{defaults: defaults, draft: defaults, rules: rules}
}

// Load seeds the draft from an existing record (edit mode) and clears
// any previous validation state. The persisted record is not touched.
func (c *Controller[D]) Load(seed D) {
	c.draft = seed
	c.markClean()
}

// Draft returns the current draft value.
func (c *Controller[D]) Draft() D {
	return c.draft
}

// Update applies a patch to the draft. The patch function runs exactly
// once against the live draft, so the merge is all-or-nothing: fields
// the patch does not touch keep their values. The controller returns to
// the clean state.
func (c *Controller[D]) Update(patch func(*D)) {
	patch(&c.draft)
	c.markClean()
}

// Toggle flips membership of value in the tag set selected by sel:
// absent values are appended, present values are removed. Remaining
// entries keep their insertion order and duplicates are collapsed.
// The controller returns to the clean state.
func (c *Controller[D]) Toggle(sel func(*D) *[]string, value string) {
	tags := sel(&c.draft)
	*tags = ToggleTag(*tags, value)
	c.markClean()
}

// Validate runs every rule against the current draft and returns a map
// from field name to error message for each failing rule. The map is
// empty (never nil) when all rules pass. Validate never panics and has
// no side effects beyond recording the result.
func (c *Controller[D]) Validate() map[string]string {
	errs := map[string]string{}
	for _, r := range c.rules {
		if _, dup := errs[r.Field]; dup {
			continue
		}
		if msg := r.Check(c.draft); msg != "" {
			errs[r.Field] = msg
		}
	}
	c.errors = errs
	c.validated = true
	return errs
}

// Validated reports whether Validate has run since the last change.
func (c *Controller[D]) Validated() bool {
	return c.validated
}

// Errors returns the result of the last Validate, or an empty map in
// the clean state.
func (c *Controller[D]) Errors() map[string]string {
	if c.errors == nil {
		return map[string]string{}
	}
	return c.errors
}

// Reset restores the create-mode defaults and clears all errors.
func (c *Controller[D]) Reset() {
	c.draft = c.defaults
	c.markClean()
}

func (c *Controller[D]) markClean() {
	c.errors = nil
	c.validated = false
}

// ToggleTag returns tags with value added if absent or removed if
// present. Existing duplicates of value are all removed; the order of
// the remaining entries is preserved.
func ToggleTag(tags []string, value string) []string {
	out := make([]string, 0, len(tags)+1)
	found := false
	for _, t := range tags {
		if t == value {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, value)
	}
	return out
}
