package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type personaDraft struct {
	Name         string
	Description  string
	SystemPrompt string
	Capabilities []string
}

func personaController() *Controller[personaDraft] {
	return New(
		personaDraft{Capabilities: []string{"conversation"}},
		Required("name", "name is required", func(d personaDraft) string { return d.Name }),
		Required("description", "description is required", func(d personaDraft) string { return d.Description }),
		MinLength("systemPrompt", "system prompt must be at least 20 characters", 20,
			func(d personaDraft) string { return d.SystemPrompt }),
	)
}

func TestValidateCompleteness(t *testing.T) {
	c := personaController()
	c.Update(func(d *personaDraft) {
		d.SystemPrompt = "too short." // 10 characters
	})

	errs := c.Validate()
	require.Len(t, errs, 3)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "systemPrompt")

	c.Update(func(d *personaDraft) {
		d.Name = "Grammar Coach"
		d.Description = "Helps with grammar drills"
		d.SystemPrompt = "You are a patient grammar tutor for language learners."
	})
	assert.Empty(t, c.Validate())
}

func TestValidateReturnsEmptyMapNotNil(t *testing.T) {
	c := New(personaDraft{Name: "x"})
	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Empty(t, errs)
}

func TestToggleIdempotence(t *testing.T) {
	c := personaController()
	sel := func(d *personaDraft) *[]string { return &d.Capabilities }

	c.Toggle(sel, "grammar")
	assert.Equal(t, []string{"conversation", "grammar"}, c.Draft().Capabilities)

	c.Toggle(sel, "grammar")
	assert.Equal(t, []string{"conversation"}, c.Draft().Capabilities)
}

func TestTogglePreservesOrder(t *testing.T) {
	tags := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "c"}, ToggleTag(tags, "b"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ToggleTag(tags, "d"))

	// Pre-existing duplicates collapse on removal.
	assert.Equal(t, []string{"b"}, ToggleTag([]string{"a", "b", "a"}, "a"))
}

func TestUpdateIsAllOrNothing(t *testing.T) {
	c := personaController()
	c.Update(func(d *personaDraft) {
		d.Name = "Tutor"
		d.Description = "A tutor"
	})

	d := c.Draft()
	assert.Equal(t, "Tutor", d.Name)
	assert.Equal(t, "A tutor", d.Description)
	// Untouched fields keep their values.
	assert.Equal(t, []string{"conversation"}, d.Capabilities)
	assert.Empty(t, d.SystemPrompt)
}

func TestStateTransitions(t *testing.T) {
	c := personaController()
	assert.False(t, c.Validated())

	c.Validate()
	assert.True(t, c.Validated())
	assert.NotEmpty(t, c.Errors())

	// Any change returns the controller to the clean state.
	c.Update(func(d *personaDraft) { d.Name = "x" })
	assert.False(t, c.Validated())
	assert.Empty(t, c.Errors())

	c.Validate()
	c.Toggle(func(d *personaDraft) *[]string { return &d.Capabilities }, "grammar")
	assert.False(t, c.Validated())
}

func TestLoadSeedsEditMode(t *testing.T) {
	c := personaController()
	c.Validate()

	seed := personaDraft{Name: "Existing", Description: "d", SystemPrompt: "a prompt that is long enough"}
	c.Load(seed)
	assert.Equal(t, seed, c.Draft())
	assert.False(t, c.Validated())
}

func TestResetRestoresDefaults(t *testing.T) {
	c := personaController()
	c.Update(func(d *personaDraft) {
		d.Name = "Changed"
		d.Capabilities = append(d.Capabilities, "extra")
	})
	c.Validate()

	c.Reset()
	assert.Equal(t, "", c.Draft().Name)
	assert.Equal(t, []string{"conversation"}, c.Draft().Capabilities)
	assert.False(t, c.Validated())
	assert.Empty(t, c.Errors())
}
