package handlers

import (
	"bytes"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"lingoadmin/internal/config"
	dbpkg "lingoadmin/internal/db"
	ui "lingoadmin/web"
)

// LayoutData feeds the server-rendered dashboard shell. The screens
// themselves are client-rendered against the JSON API; the shell only
// shows who is signed in and a few headline counts.
type LayoutData struct {
	Title      string
	Username   string
	IsAdmin    bool
	Assistants int64
	APIKeys    int64
	Models     int64
	Videos     int64
	Unread     int64
}

func renderLayout(ctx *fasthttp.RequestCtx, data LayoutData) {
	var buf bytes.Buffer
	if err := ui.Templates().ExecuteTemplate(&buf, "layout", data); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString("render error")
		return
	}
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(buf.Bytes())
}

func Dashboard(db *gorm.DB, _ *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		data := LayoutData{
			Title:    "Lingo Admin",
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		}
		// Count failures degrade to zeroes rather than a broken page.
		db.Model(&dbpkg.Assistant{}).Count(&data.Assistants)
		db.Model(&dbpkg.APIKey{}).Count(&data.APIKeys)
		db.Model(&dbpkg.AIModel{}).Count(&data.Models)
		db.Model(&dbpkg.Video{}).Count(&data.Videos)
		db.Model(&dbpkg.Notification{}).Where("read = ?", false).Count(&data.Unread)

		renderLayout(ctx, data)
	}
}
