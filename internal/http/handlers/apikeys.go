package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"log"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "lingoadmin/internal/db"
	"lingoadmin/internal/listview"
)

// generateAPIKey mints a secret for keys created without one (custom
// provider keys consumed by the platform itself).
func generateAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "la_" + base64.URLEncoding.EncodeToString(b), nil
}

var apiKeySchema = listview.Schema[apiKeyView]{
	Text: []func(apiKeyView) string{
		func(k apiKeyView) string { return k.Name },
	},
	Category: func(k apiKeyView) []string {
		status := "inactive"
		if k.IsActive {
			status = "active"
		}
		return []string{status, k.Provider}
	},
	Keys: map[string]func(apiKeyView) any{
		"name":       func(k apiKeyView) any { return k.Name },
		"provider":   func(k apiKeyView) any { return k.Provider },
		"createdAt":  func(k apiKeyView) any { return k.CreatedAt },
		"isDefault":  func(k apiKeyView) any { return k.IsDefault },
		"usageCount": func(k apiKeyView) any { return k.UsageCount },
	},
}

func validateAPIKeyInput(in apiKeyInput) map[string]string {
	errs := map[string]string{}
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	if _, ok := dbpkg.ParseProvider(in.Provider); !ok {
		errs["provider"] = "unknown provider"
	}
	if in.UsageLimit != nil && *in.UsageLimit <= 0 {
		errs["usageLimit"] = "usage limit must be positive"
	}
	return errs
}

func ListAPIKeys(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var keys []dbpkg.APIKey
		if err := db.Order("created_at DESC").Find(&keys).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load API keys")
			return
		}

		views := make([]apiKeyView, 0, len(keys))
		for _, k := range keys {
			views = append(views, toAPIKeyView(k))
		}
		listResponse(ctx, listview.Apply(views, parseListSpec(ctx, "createdAt"), apiKeySchema))
	}
}

func CreateAPIKey(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var in apiKeyInput
		if !decodeBody(ctx, &in) {
			return
		}
		if errs := validateAPIKeyInput(in); len(errs) > 0 {
			validationResponse(ctx, errs)
			return
		}

		secret := in.Key
		if secret == "" {
			var err error
			if secret, err = generateAPIKey(); err != nil {
				errResponse(ctx, fasthttp.StatusInternalServerError, "failed to generate API key")
				return
			}
		}

		provider, _ := dbpkg.ParseProvider(in.Provider)
		key := &dbpkg.APIKey{
			Name:       in.Name,
			Provider:   provider,
			Key:        secret,
			Active:     in.IsActive,
			UsageLimit: in.UsageLimit,
			ExpiresAt:  in.ExpiresAt,
		}

		if err := db.Create(key).Error; err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "failed to create API key (value may already exist)")
			return
		}

		// The full secret is shown exactly once, in the create response.
		view := toAPIKeyView(*key)
		view.Key = secret
		ctx.SetStatusCode(fasthttp.StatusCreated)
		jsonResponse(ctx, view)
	}
}

func UpdateAPIKey(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var in apiKeyInput
		if !decodeBody(ctx, &in) {
			return
		}
		if errs := validateAPIKeyInput(in); len(errs) > 0 {
			validationResponse(ctx, errs)
			return
		}

		var key dbpkg.APIKey
		if err := db.First(&key, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "API key not found")
			return
		}

		provider, _ := dbpkg.ParseProvider(in.Provider)
		key.Name = in.Name
		key.Provider = provider
		key.Active = in.IsActive
		key.UsageLimit = in.UsageLimit
		key.ExpiresAt = in.ExpiresAt
		// The secret itself is immutable after creation; rotating means
		// creating a new key and deleting the old one.

		if err := db.Save(&key).Error; err != nil {
			log.Printf("failed to update API key %d: %v", id, err)
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update API key")
			return
		}
		jsonResponse(ctx, toAPIKeyView(key))
	}
}

func DeleteAPIKey(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var key dbpkg.APIKey
		if err := db.First(&key, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "API key not found")
			return
		}
		if err := db.Delete(&key).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete API key")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	}
}

// SetDefaultAPIKey promotes a key to provider default in one
// transaction, so the provider never observably has two defaults.
func SetDefaultAPIKey(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		if err := dbpkg.SetDefaultKey(db, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				errResponse(ctx, fasthttp.StatusNotFound, "API key not found")
				return
			}
			log.Printf("failed to set default API key %d: %v", id, err)
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to set default API key")
			return
		}

		var key dbpkg.APIKey
		if err := db.First(&key, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to reload API key")
			return
		}
		jsonResponse(ctx, toAPIKeyView(key))
	}
}
