package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagecraft-io/pagecraft/internal/config"
	"github.com/pagecraft-io/pagecraft/internal/middleware"
	"github.com/pagecraft-io/pagecraft/internal/modules/handler"
	"github.com/pagecraft-io/pagecraft/internal/modules/serializer"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
	"github.com/pagecraft-io/pagecraft/internal/telemetry"
)

type RouterDeps struct {
	Config *config.Config
	Log    *zap.Logger

	UserService service.UserService

	ProjectHandler     *handler.ProjectHandler
	PublicationHandler *handler.PublicationHandler
	TemplateHandler    *handler.TemplateHandler
	LikeHandler        *handler.LikeHandler
	ActivityHandler    *handler.ActivityHandler
	ProjectLogHandler  *handler.ProjectLogHandler
	FileHandler        *handler.FileHandler
	PlaygroundHandler  *handler.PlaygroundHandler
	UserHandler        *handler.UserHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(d.Log))

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.RequestLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// shared scratch page, rendered for direct browser access
	r.GET("/playground", d.PlaygroundHandler.Render)

	api := r.Group("/api")
	{
		// The published surface is world readable. Everything else is not.
		publications := api.Group("/projects/publications")
		{
			publications.GET("", d.PublicationHandler.List)
			publications.GET("/:id", d.PublicationHandler.Get)
			publications.GET("/:id/code", d.PublicationHandler.GetCode)
			publications.GET("/:id/versions", d.PublicationHandler.Versions)
		}

		playground := api.Group("/playground")
		{
			playground.GET("", d.PlaygroundHandler.Get)
			playground.PUT("", d.PlaygroundHandler.Update)
			playground.DELETE("", d.PlaygroundHandler.Reset)
		}

		// Template reads are part of the public catalog.
		templates := api.Group("/templates")
		{
			templates.GET("", d.TemplateHandler.List)
			templates.GET("/categories", d.TemplateHandler.Categories)
			templates.GET("/:id", d.TemplateHandler.Get)
			templates.POST("/:id/download", d.TemplateHandler.Download)
			templates.GET("/:id/preview", d.TemplateHandler.Preview)
		}

		api.GET("/project-logs/count", d.ProjectLogHandler.Count)

		authed := api.Group("")
		authed.Use(middleware.UserAuth(d.UserService))
		{
			authed.GET("/users/me", d.UserHandler.Me)

			projects := authed.Group("/projects")
			{
				projects.GET("", d.ProjectHandler.List)
				projects.POST("", d.ProjectHandler.Create)
				projects.GET("/:id", d.ProjectHandler.Get)
				projects.PUT("/:id", d.ProjectHandler.Update)
				projects.DELETE("/:id", d.ProjectHandler.Delete)

				projects.POST("/:id/duplicate", d.ProjectHandler.Duplicate)
				projects.POST("/:id/publish", d.ProjectHandler.Publish)
				projects.POST("/:id/unpublish", d.ProjectHandler.Unpublish)

				projects.GET("/:id/stats", d.ProjectHandler.Stats)
				projects.GET("/:id/code", d.ProjectHandler.GetCode)
				projects.PUT("/:id/code", d.ProjectHandler.UpdateCode)
			}

			templates := authed.Group("/templates")
			{
				templates.POST("", d.TemplateHandler.Create)
				templates.PUT("/:id", d.TemplateHandler.Update)
				templates.DELETE("/:id", d.TemplateHandler.Delete)
				templates.POST("/:id/like", d.TemplateHandler.Like)
			}

			likes := authed.Group("/likes")
			{
				likes.GET("/user", d.LikeHandler.ListLiked)
				likes.POST("/template/:templateId", d.LikeHandler.Toggle)
				likes.DELETE("/template/:templateId", d.LikeHandler.Remove)
				likes.GET("/template/:templateId/status", d.LikeHandler.Status)
			}

			activities := authed.Group("/activities")
			{
				activities.GET("", d.ActivityHandler.List)
				activities.GET("/recent", d.ActivityHandler.Recent)
				activities.GET("/summary", d.ActivityHandler.Summary)
			}

			authed.GET("/project-logs", d.ProjectLogHandler.List)

			files := authed.Group("/files")
			{
				files.GET("", d.FileHandler.List)
				files.GET("/:id", d.FileHandler.Get)
				files.PUT("/:id", d.FileHandler.Update)
				files.DELETE("/:id", d.FileHandler.Delete)
			}
		}
	}
	return r
}
