package bootstrap

import (
	"context"

	"github.com/pagecraft-io/pagecraft/internal/config"
	"github.com/pagecraft-io/pagecraft/internal/infra/cache"
	"github.com/pagecraft-io/pagecraft/internal/infra/db"
	"github.com/pagecraft-io/pagecraft/internal/infra/logger"
	"github.com/pagecraft-io/pagecraft/internal/modules/handler"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
	"github.com/pagecraft-io/pagecraft/internal/modules/service"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != "" {
			if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
				return nil, err
			}
		}
		if cfg.Database.AutoMigrate {
			// gen_random_uuid needs pgcrypto on older postgres
			_ = d.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto")

			if err := d.AutoMigrate(
				&model.User{},
				&model.Project{},
				&model.Publication{},
				&model.Template{},
				&model.Like{},
				&model.Activity{},
				&model.ProjectLog{},
				&model.File{},
			); err != nil {
				return nil, err
			}
		}

		// ensure root user exists
		if err := EnsureRootUserExists(context.Background(), d, cfg, log); err != nil {
			return nil, err
		}

		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb, err := cache.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != "" {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				return nil, err
			}
		}
		return rdb, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PublicationRepo, error) {
		return repo.NewPublicationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TemplateRepo, error) {
		return repo.NewTemplateRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.LikeRepo, error) {
		return repo.NewLikeRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ActivityRepo, error) {
		return repo.NewActivityRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectLogRepo, error) {
		return repo.NewProjectLogRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FileRepo, error) {
		return repo.NewFileRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.PublicationRepo](i),
			do.MustInvoke[repo.ActivityRepo](i),
			do.MustInvoke[repo.ProjectLogRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PublicationService, error) {
		return service.NewPublicationService(do.MustInvoke[repo.PublicationRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TemplateService, error) {
		return service.NewTemplateService(
			do.MustInvoke[repo.TemplateRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.LikeService, error) {
		return service.NewLikeService(
			do.MustInvoke[repo.LikeRepo](i),
			do.MustInvoke[repo.TemplateRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ActivityService, error) {
		return service.NewActivityService(do.MustInvoke[repo.ActivityRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectLogService, error) {
		return service.NewProjectLogService(do.MustInvoke[repo.ProjectLogRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FileService, error) {
		return service.NewFileService(do.MustInvoke[repo.FileRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PlaygroundService, error) {
		return service.NewPlaygroundService(do.MustInvoke[*redis.Client](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PublicationHandler, error) {
		return handler.NewPublicationHandler(do.MustInvoke[service.PublicationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TemplateHandler, error) {
		return handler.NewTemplateHandler(
			do.MustInvoke[service.TemplateService](i),
			do.MustInvoke[service.LikeService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.LikeHandler, error) {
		return handler.NewLikeHandler(do.MustInvoke[service.LikeService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ActivityHandler, error) {
		return handler.NewActivityHandler(do.MustInvoke[service.ActivityService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectLogHandler, error) {
		return handler.NewProjectLogHandler(do.MustInvoke[service.ProjectLogService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FileHandler, error) {
		return handler.NewFileHandler(do.MustInvoke[service.FileService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PlaygroundHandler, error) {
		return handler.NewPlaygroundHandler(do.MustInvoke[service.PlaygroundService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(), nil
	})

	return inj
}
