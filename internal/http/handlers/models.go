package handlers

import (
	"log"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "lingoadmin/internal/db"
	"lingoadmin/internal/listview"
)

var aiModelSchema = listview.Schema[aiModelView]{
	Text: []func(aiModelView) string{
		func(m aiModelView) string { return m.Name },
		func(m aiModelView) string { return m.Description },
	},
	Category: func(m aiModelView) []string {
		status := "disabled"
		if m.Enabled {
			status = "enabled"
		}
		return append([]string{status, m.Provider}, m.Capabilities...)
	},
	Keys: map[string]func(aiModelView) any{
		"name":          func(m aiModelView) any { return m.Name },
		"provider":      func(m aiModelView) any { return m.Provider },
		"contextLength": func(m aiModelView) any { return m.ContextLength },
		"cost":          func(m aiModelView) any { return m.CostPer1K },
		"enabled":       func(m aiModelView) any { return m.Enabled },
		"createdAt":     func(m aiModelView) any { return m.CreatedAt },
	},
}

func validateAIModelInput(in aiModelInput) map[string]string {
	errs := map[string]string{}
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	provider, ok := dbpkg.ParseProvider(in.Provider)
	if !ok {
		errs["provider"] = "unknown provider"
	}
	for _, c := range in.Capabilities {
		if !dbpkg.ValidCapability(c) {
			errs["capabilities"] = "capabilities may only contain text, image or code"
			break
		}
	}
	if in.ContextLength < 0 {
		errs["contextLength"] = "context length must not be negative"
	}
	if in.CostPer1K < 0 {
		errs["costPer1kTokens"] = "cost must not be negative"
	}
	if ok && provider == dbpkg.ProviderCustom && in.Endpoint == "" {
		errs["endpoint"] = "custom provider models need an endpoint"
	}
	return errs
}

func applyAIModelInput(in aiModelInput, m *dbpkg.AIModel) {
	provider, _ := dbpkg.ParseProvider(in.Provider)
	m.Name = in.Name
	m.Provider = provider
	m.Description = in.Description
	m.Capabilities = append([]string{}, in.Capabilities...)
	m.Enabled = in.Enabled
	m.ContextLength = in.ContextLength
	m.CostPer1K = in.CostPer1K
	m.Strengths = append([]string{}, in.Strengths...)
	m.Endpoint = in.Endpoint
}

func ListAIModels(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var models []dbpkg.AIModel
		if err := db.Order("id").Find(&models).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load models")
			return
		}

		views := make([]aiModelView, 0, len(models))
		for _, m := range models {
			views = append(views, toAIModelView(m))
		}
		listResponse(ctx, listview.Apply(views, parseListSpec(ctx, "name"), aiModelSchema))
	}
}

func CreateAIModel(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var in aiModelInput
		if !decodeBody(ctx, &in) {
			return
		}
		if errs := validateAIModelInput(in); len(errs) > 0 {
			validationResponse(ctx, errs)
			return
		}

		var m dbpkg.AIModel
		applyAIModelInput(in, &m)
		if err := db.Create(&m).Error; err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "failed to create model (name may already exist)")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusCreated)
		jsonResponse(ctx, toAIModelView(m))
	}
}

func UpdateAIModel(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var in aiModelInput
		if !decodeBody(ctx, &in) {
			return
		}
		if errs := validateAIModelInput(in); len(errs) > 0 {
			validationResponse(ctx, errs)
			return
		}

		var m dbpkg.AIModel
		if err := db.First(&m, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "model not found")
			return
		}
		applyAIModelInput(in, &m)
		if err := db.Save(&m).Error; err != nil {
			log.Printf("failed to update model %d: %v", id, err)
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update model")
			return
		}
		jsonResponse(ctx, toAIModelView(m))
	}
}

func DeleteAIModel(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var m dbpkg.AIModel
		if err := db.First(&m, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "model not found")
			return
		}
		if err := db.Delete(&m).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete model")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	}
}

func ToggleAIModel(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var m dbpkg.AIModel
		if err := db.First(&m, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "model not found")
			return
		}
		if err := db.Model(&m).Update("enabled", !m.Enabled).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update model")
			return
		}
		m.Enabled = !m.Enabled
		jsonResponse(ctx, toAIModelView(m))
	}
}
