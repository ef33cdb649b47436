package handlers

import (
	"log"
	"strconv"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "lingoadmin/internal/db"
	"lingoadmin/internal/listview"
)

var videoSchema = listview.Schema[videoView]{
	Text: []func(videoView) string{
		func(v videoView) string { return v.Title },
		func(v videoView) string { return v.YouTubeID },
	},
	Category: func(v videoView) []string {
		if v.Active {
			return []string{"active"}
		}
		return []string{"inactive"}
	},
	Keys: map[string]func(videoView) any{
		"title":    func(v videoView) any { return v.Title },
		"position": func(v videoView) any { return v.Position },
		"duration": func(v videoView) any { return v.DurationSeconds },
		"addedAt":  func(v videoView) any { return v.AddedAt },
	},
}

type videoInput struct {
	YouTubeID       string `json:"youtubeId"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"durationSeconds"`
	Active          bool   `json:"active"`
}

func validateVideoInput(in videoInput, settings *dbpkg.VideoSettings) map[string]string {
	errs := map[string]string{}
	if len(in.YouTubeID) != 11 {
		errs["youtubeId"] = "a YouTube video ID is 11 characters"
	}
	if in.Title == "" {
		errs["title"] = "title is required"
	}
	if in.DurationSeconds <= 0 {
		errs["durationSeconds"] = "duration is required"
	} else if settings != nil && in.DurationSeconds > settings.MaxDurationSeconds {
		errs["durationSeconds"] = "video exceeds the configured maximum duration"
	}
	return errs
}

func ListVideos(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var videos []dbpkg.Video
		if err := db.Order("position").Find(&videos).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load videos")
			return
		}
		views := make([]videoView, 0, len(videos))
		for _, v := range videos {
			views = append(views, toVideoView(v))
		}
		listResponse(ctx, listview.Apply(views, parseListSpec(ctx, "position"), videoSchema))
	}
}

func CreateVideo(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var in videoInput
		if !decodeBody(ctx, &in) {
			return
		}
		settings, err := dbpkg.LoadVideoSettings(db)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load video settings")
			return
		}
		if errs := validateVideoInput(in, settings); len(errs) > 0 {
			validationResponse(ctx, errs)
			return
		}

		pos, err := dbpkg.NextVideoPosition(db)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to create video")
			return
		}

		active := in.Active || settings.AutoPublish
		v := &dbpkg.Video{
			YouTubeID:       in.YouTubeID,
			Title:           in.Title,
			DurationSeconds: in.DurationSeconds,
			Active:          active,
			Position:        pos,
		}
		if err := db.Create(v).Error; err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "failed to create video (already in the pool?)")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusCreated)
		jsonResponse(ctx, toVideoView(*v))
	}
}

func DeleteVideo(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var v dbpkg.Video
		if err := db.First(&v, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "video not found")
			return
		}
		if err := db.Delete(&v).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete video")
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	}
}

func ToggleVideo(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		var v dbpkg.Video
		if err := db.First(&v, id).Error; err != nil {
			errResponse(ctx, fasthttp.StatusNotFound, "video not found")
			return
		}
		if err := db.Model(&v).Update("active", !v.Active).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update video")
			return
		}
		v.Active = !v.Active
		jsonResponse(ctx, toVideoView(v))
	}
}

// NextVideo serves the rotation: the active pool entry after the given
// position (`after` query parameter), wrapping around. With no active
// entries the pool is empty and 404 is returned.
func NextVideo(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		after := 0
		if s := string(ctx.QueryArgs().Peek("after")); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n >= 0 {
				after = n
			}
		}
		v, err := dbpkg.NextVideo(db, after)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				errResponse(ctx, fasthttp.StatusNotFound, "no active videos in the pool")
				return
			}
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to pick next video")
			return
		}
		jsonResponse(ctx, toVideoView(*v))
	}
}

func GetVideoSettings(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		s, err := dbpkg.LoadVideoSettings(db)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load video settings")
			return
		}
		jsonResponse(ctx, toVideoSettingsView(*s))
	}
}

// UpdateVideoSettings replaces the settings record wholesale; there is
// no partial-field update protocol for this screen.
func UpdateVideoSettings(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var in videoSettingsView
		if !decodeBody(ctx, &in) {
			return
		}

		s, err := dbpkg.LoadVideoSettings(db)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load video settings")
			return
		}

		in.apply(s)
		if errs := s.Validate(); len(errs) > 0 {
			validationResponse(ctx, errs)
			return
		}

		if err := db.Save(s).Error; err != nil {
			log.Printf("failed to save video settings: %v", err)
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to save video settings")
			return
		}
		jsonResponse(ctx, toVideoSettingsView(*s))
	}
}
