package main

import (
	"log"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"lingoadmin/internal/config"
	"lingoadmin/internal/db"
	"lingoadmin/internal/http/handlers"
	appmw "lingoadmin/internal/http/middleware"
	"lingoadmin/internal/llm"
	ui "lingoadmin/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.EnsureBootstrapAdmin(sqlDB, cfg); err != nil {
		log.Fatalf("failed to ensure bootstrap admin: %v", err)
	}
	if err := db.EnsureVideoSettings(sqlDB); err != nil {
		log.Fatalf("failed to ensure video settings: %v", err)
	}

	db.StartExpirySweepWorker(sqlDB)
	db.StartUsageRollupWorker(sqlDB)

	handlers.InitPrometheusMetrics()

	llmClient := llm.NewClient(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)

	r := router.New()

	handler := appmw.RequestLogger(r.Handler)

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})

	r.ServeFS("/static/{filepath:*}", ui.StaticFS())

	r.GET("/login", handlers.LoginForm(cfg))
	r.POST("/login", handlers.LoginSubmit(sqlDB))
	r.POST("/logout", handlers.Logout())

	admin := appmw.AdminAuth(sqlDB, cfg)

	r.GET("/", admin(handlers.Dashboard(sqlDB, cfg)))

	r.POST("/admin/users/create", admin(handlers.CreateUser(sqlDB)))
	r.POST("/admin/users/{id}/delete", admin(handlers.DeleteUser(sqlDB, cfg)))

	r.GET("/v1/assistants", admin(handlers.ListAssistants(sqlDB)))
	r.POST("/v1/assistants", admin(handlers.CreateAssistant(sqlDB)))
	r.PUT("/v1/assistants/{id}", admin(handlers.UpdateAssistant(sqlDB)))
	r.DELETE("/v1/assistants/{id}", admin(handlers.DeleteAssistant(sqlDB)))
	r.POST("/v1/assistants/{id}/toggle", admin(handlers.ToggleAssistant(sqlDB)))

	r.GET("/v1/apikeys", admin(handlers.ListAPIKeys(sqlDB)))
	r.POST("/v1/apikeys", admin(handlers.CreateAPIKey(sqlDB)))
	r.PUT("/v1/apikeys/{id}", admin(handlers.UpdateAPIKey(sqlDB)))
	r.DELETE("/v1/apikeys/{id}", admin(handlers.DeleteAPIKey(sqlDB)))
	r.POST("/v1/apikeys/{id}/default", admin(handlers.SetDefaultAPIKey(sqlDB)))

	r.GET("/v1/models", admin(handlers.ListAIModels(sqlDB)))
	r.POST("/v1/models", admin(handlers.CreateAIModel(sqlDB)))
	r.PUT("/v1/models/{id}", admin(handlers.UpdateAIModel(sqlDB)))
	r.DELETE("/v1/models/{id}", admin(handlers.DeleteAIModel(sqlDB)))
	r.POST("/v1/models/{id}/toggle", admin(handlers.ToggleAIModel(sqlDB)))

	r.GET("/v1/usage", admin(handlers.UsageSeries(sqlDB, cfg)))
	r.POST("/v1/usage/track", appmw.BearerAuth(sqlDB)(handlers.TrackUsage(sqlDB)))

	r.GET("/v1/videos", admin(handlers.ListVideos(sqlDB)))
	r.POST("/v1/videos", admin(handlers.CreateVideo(sqlDB)))
	r.DELETE("/v1/videos/{id}", admin(handlers.DeleteVideo(sqlDB)))
	r.POST("/v1/videos/{id}/toggle", admin(handlers.ToggleVideo(sqlDB)))
	r.GET("/v1/videos/next", admin(handlers.NextVideo(sqlDB)))

	r.GET("/v1/video-settings", admin(handlers.GetVideoSettings(sqlDB)))
	r.PUT("/v1/video-settings", admin(handlers.UpdateVideoSettings(sqlDB)))

	r.POST("/v1/persona/generate", admin(handlers.GeneratePersona(sqlDB, llmClient)))

	r.GET("/v1/notifications", admin(handlers.ListNotifications(sqlDB)))
	r.POST("/v1/notifications/{id}/read", admin(handlers.MarkNotificationRead(sqlDB)))

	r.GET("/v1/metrics", appmw.BearerAuth(sqlDB)(handlers.MetricsExport()))

	log.Printf("lingoadmin listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
