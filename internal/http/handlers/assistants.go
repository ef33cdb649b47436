package handlers

import (
	"log"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "lingoadmin/internal/db"
	"lingoadmin/internal/form"
	"lingoadmin/internal/listview"
)

// assistantSchema drives search, categorical filtering and sorting for
// the assistants list. The selector matches the active/inactive flag or
// the persona category.
var assistantSchema = listview.Schema[assistantView]{
	Text: []func(assistantView) string{
		func(a assistantView) string { return a.Name },
		func(a assistantView) string { return a.Description },
	},
	Category: func(a assistantView) []string {
		status := "inactive"
		if a.IsActive {
			status = "active"
		}
		return []string{status, a.Category}
	},
	Keys: map[string]func(assistantView) any{
		"name":          func(a assistantView) any { return a.Name },
		"category":      func(a assistantView) any { return a.Category },
		"createdAt":     func(a assistantView) any { return a.CreatedAt },
		"isActive":      func(a assistantView) any { return a.IsActive },
		"conversations": func(a assistantView) any { return a.ConversationCount },
		"tokens":        func(a assistantView) any { return a.TokenCount },
	},
}

// assistantRules are the form rules shared by the create and edit flows.
func assistantRules() []form.Rule[assistantInput] {
	return []form.Rule[assistantInput]{
		form.Required("name", "name is required", func(d assistantInput) string { return d.Name }),
		form.Required("description", "description is required", func(d assistantInput) string { return d.Description }),
		form.MinLength("systemPrompt", "system prompt must be at least 20 characters", 20,
			func(d assistantInput) string { return d.SystemPrompt }),
	}
}

func validateAssistant(in assistantInput) map[string]string {
	c := form.New(assistantInput{}, assistantRules()...)
	c.Load(in)
	return c.Validate()
}

func ListAssistants(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var assistants []dbpkg.Assistant
		if err := db.Order("id").Find(&assistants).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load assistants")
			return
		}

		views := make([]assistantView, 0, len(assistants))
		for _, a := range assistants {
			views = append(views, toAssistantView(a))
		}

		listResponse(ctx, listview.Apply(views, parseListSpec(ctx, "name"), assistantSchema))
	}
}

func CreateAssistant(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var in assistantInput
		if !decodeBody(ctx, &in) {
			return
		}
		if errs := validateAssistant(in); len(errs) > 0 {
			validationResponse(ctx, errs)
			return
		}

		var a dbpkg.Assistant
		in.apply(&a)
		if err := db.Create(&a).Error; err != nil {
			log.Printf("failed to create assistant: %v", err)
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to create assistant")
			return
		}

		ctx.SetStatusCode(fasthttp.StatusCreated)
		jsonResponse(ctx, toAssistantView(a))
	}
}

func UpdateAssistant(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var in assistantInput
		if !decodeBody(ctx, &in) {
			return
		}
		if errs := validateAssistant(in); len(errs) > 0 {
			validationResponse(ctx, errs)
			return
		}

		var a dbpkg.Assistant
		if err := db.First(&a, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "assistant not found")
			return
		}

		in.apply(&a)
		if err := db.Save(&a).Error; err != nil {
			log.Printf("failed to update assistant %d: %v", id, err)
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update assistant")
			return
		}

		jsonResponse(ctx, toAssistantView(a))
	}
}

func DeleteAssistant(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var a dbpkg.Assistant
		if err := db.First(&a, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "assistant not found")
			return
		}
		if err := db.Delete(&a).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete assistant")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	}
}

// ToggleAssistant flips the active flag without running the full form
// validation, matching the quick toggle on the assistant card.
func ToggleAssistant(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var a dbpkg.Assistant
		if err := db.First(&a, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "assistant not found")
			return
		}
		if err := db.Model(&a).Update("is_active", !a.IsActive).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update assistant")
			return
		}
		a.IsActive = !a.IsActive
		jsonResponse(ctx, toAssistantView(a))
	}
}
