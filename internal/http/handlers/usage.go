package handlers

import (
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"lingoadmin/internal/config"
	dbpkg "lingoadmin/internal/db"
	httpctx "lingoadmin/internal/http/ctx"
)

// UsageSeries returns one data point per day over the requested range.
// Days without a rollup row are filled from the deterministic sample
// generator when sample usage is enabled; the response flags both the
// individual points and the series so the UI can mark the chart as demo
// data.
func UsageSeries(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}

		days := 30
		if s := string(ctx.QueryArgs().Peek("days")); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				if n > 365 {
					n = 365
				}
				days = n
			}
		}

		today := dbpkg.Day(time.Now())
		from := today.AddDate(0, 0, -(days - 1))

		var rows []dbpkg.UsageDay
		if err := db.Where("date >= ? AND date <= ?", from, today).Order("date").Find(&rows).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load usage")
			return
		}

		byDay := make(map[time.Time]dbpkg.UsageDay, len(rows))
		for _, r := range rows {
			byDay[dbpkg.Day(r.Date)] = r
		}

		series := make([]usagePointView, 0, days)
		anySampled := false
		for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
			row, ok := byDay[d]
			sampled := false
			if !ok {
				if !cfg.SampleUsage {
					row = dbpkg.UsageDay{Date: d}
				} else {
					row = dbpkg.SampleUsageDay(d)
					sampled = true
					anySampled = true
				}
			}
			series = append(series, usagePointView{
				Date:     d.Format("2006-01-02"),
				Requests: row.Requests,
				Tokens:   row.Tokens,
				Cost:     row.Cost,
				Sampled:  sampled,
			})
		}

		jsonResponse(ctx, map[string]any{"series": series, "sampled": anySampled})
	}
}

// trackRequest is the payload the platform backend reports after
// serving learner traffic with one of the managed keys.
type trackRequest struct {
	AssistantID   uint  `json:"assistantId,omitempty"`
	Requests      int64 `json:"requests"`
	Tokens        int64 `json:"tokens"`
	Messages      int64 `json:"messages,omitempty"`
	Conversations int64 `json:"conversations,omitempty"`
}

// TrackUsage increments the live counters behind the usage dashboard.
// Authenticated by BearerAuth with a managed API key.
func TrackUsage(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		apiKey, ok := httpctx.APIKeyFromCtx(ctx)
		if !ok || apiKey == nil {
			errResponse(ctx, fasthttp.StatusUnauthorized, "unauthorized")
			return
		}

		var payload trackRequest
		if !decodeBody(ctx, &payload) {
			return
		}
		if payload.Requests <= 0 && payload.Tokens <= 0 {
			errResponse(ctx, fasthttp.StatusBadRequest, "nothing to track")
			return
		}

		if payload.Requests > 0 {
			if err := db.Model(apiKey).
				UpdateColumn("usage_count", gorm.Expr("usage_count + ?", payload.Requests)).Error; err != nil {
				errResponse(ctx, fasthttp.StatusInternalServerError, "failed to track usage")
				return
			}
		}

		if payload.AssistantID != 0 {
			updates := map[string]any{}
			if payload.Tokens > 0 {
				updates["token_count"] = gorm.Expr("token_count + ?", payload.Tokens)
			}
			if payload.Messages > 0 {
				updates["message_count"] = gorm.Expr("message_count + ?", payload.Messages)
			}
			if payload.Conversations > 0 {
				updates["conversation_count"] = gorm.Expr("conversation_count + ?", payload.Conversations)
			}
			if len(updates) > 0 {
				if err := db.Model(&dbpkg.Assistant{}).
					Where("id = ?", payload.AssistantID).
					UpdateColumns(updates).Error; err != nil {
					errResponse(ctx, fasthttp.StatusInternalServerError, "failed to track usage")
					return
				}
			}
		}

		observeTrackedUsage(string(apiKey.Provider), payload.Requests, payload.Tokens)

		ctx.SetStatusCode(fasthttp.StatusAccepted)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"accepted"}`)
	}
}
