package handlers

import (
	"errors"
	"log"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "lingoadmin/internal/db"
	"lingoadmin/internal/llm"
)

type generateRequest struct {
	Description string `json:"description"`
}

// GeneratePersona runs the AI-assisted character-creation flow: one
// round trip to the completion endpoint, returning a draft profile the
// operator reviews and edits before anything is persisted. Failures are
// not retried here; the UI re-submits the whole request.
func GeneratePersona(db *gorm.DB, client *llm.Client) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var req generateRequest
		if !decodeBody(ctx, &req) {
			return
		}
		if req.Description == "" {
			validationResponse(ctx, map[string]string{"description": "description is required"})
			return
		}

		profile, err := client.GeneratePersona(ctx, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, llm.ErrDisabled):
				errResponse(ctx, fasthttp.StatusServiceUnavailable, "persona generation is not configured")
			case errors.Is(err, llm.ErrNoJSON):
				observePersonaGeneration("parse_error")
				dbpkg.Notify(db, dbpkg.LevelError, "persona analysis failed: the model reply contained no usable profile")
				ctx.SetStatusCode(fasthttp.StatusBadGateway)
				jsonResponse(ctx, map[string]any{"error": "analysis failed"})
			default:
				observePersonaGeneration("error")
				log.Printf("persona generation failed: %v", err)
				ctx.SetStatusCode(fasthttp.StatusBadGateway)
				jsonResponse(ctx, map[string]any{"error": "analysis failed"})
			}
			return
		}

		observePersonaGeneration("ok")
		jsonResponse(ctx, profile)
	}
}
