package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "lingoadmin/internal/db"
)

func ListNotifications(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		q := db.Order("created_at DESC").Limit(100)
		if string(ctx.QueryArgs().Peek("unread")) == "true" {
			q = q.Where("read = ?", false)
		}

		var notifications []dbpkg.Notification
		if err := q.Find(&notifications).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load notifications")
			return
		}

		views := make([]notificationView, 0, len(notifications))
		for _, n := range notifications {
			views = append(views, toNotificationView(n))
		}
		jsonResponse(ctx, map[string]any{"items": views})
	}
}

func MarkNotificationRead(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var n dbpkg.Notification
		if err := db.First(&n, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "notification not found")
			return
		}
		if err := db.Model(&n).Update("read", true).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update notification")
			return
		}
		n.Read = true
		jsonResponse(ctx, toNotificationView(n))
	}
}
