package middleware

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "lingoadmin/internal/db"
	httpctx "lingoadmin/internal/http/ctx"
)

// BearerAuth validates Bearer tokens against managed API keys in the
// database. The platform backend uses its provider keys as credentials
// when reporting usage back to the dashboard. Inactive, expired and
// over-limit keys are rejected; an over-limit key is deactivated on the
// spot and a notification is written.
func BearerAuth(db *gorm.DB) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			auth := ctx.Request.Header.Peek("Authorization")
			if len(auth) == 0 {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				ctx.SetBodyString("missing Authorization header")
				return
			}

			const prefix = "Bearer "
			if !bytes.HasPrefix(auth, []byte(prefix)) {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				ctx.SetBodyString("invalid Authorization header")
				return
			}

			token := strings.TrimSpace(string(auth[len(prefix):]))
			if token == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				ctx.SetBodyString("empty bearer token")
				return
			}

			var apiKey dbpkg.APIKey
			if err := db.Where("key = ? AND active = ?", token, true).First(&apiKey).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					ctx.SetStatusCode(fasthttp.StatusUnauthorized)
					ctx.SetBodyString("invalid API key")
					return
				}
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
				ctx.SetBodyString("database error")
				return
			}

			if apiKey.ExpiresAt != nil && apiKey.ExpiresAt.Before(time.Now()) {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				ctx.SetBodyString("API key expired")
				return
			}

			if apiKey.UsageLimit != nil && apiKey.UsageCount >= *apiKey.UsageLimit {
				if err := db.Model(&apiKey).Update("active", false).Error; err == nil {
					dbpkg.Notify(db, dbpkg.LevelWarning,
						fmt.Sprintf("API key %q reached its usage limit and was deactivated", apiKey.Name))
				}
				ctx.SetStatusCode(fasthttp.StatusForbidden)
				ctx.SetBodyString("API key usage limit reached")
				return
			}

			httpctx.SetAPIKey(ctx, &apiKey)
			next(ctx)
		}
	}
}
