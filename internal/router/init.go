package router

import (
	"github.com/devhubhq/devhub-api/internal/application"
	"github.com/devhubhq/devhub-api/internal/container"
	pginfra "github.com/devhubhq/devhub-api/internal/infrastructure/postgres"
	handlers "github.com/devhubhq/devhub-api/internal/interface/http"
	"github.com/devhubhq/devhub-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	projectRepo := pginfra.NewProjectRepository(pool)
	tagRepo := pginfra.NewTagRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	authSvc := application.NewAuthService(userRepo, jwt, container.GetRabbitPub(), cfg, log)
	userSvc := application.NewUserService(userRepo, container.GetGCS(), cfg.GCSBucket, log)
	projectSvc := application.NewProjectService(projectRepo, tagRepo, log)
	tagSvc := application.NewTagService(tagRepo)
	commentSvc := application.NewCommentService(commentRepo, projectRepo)
	githubSvc := application.NewGitHubService(container.GetGitHub(), userRepo, projectSvc, rdb, log)

	authHandler := handlers.NewAuthHandler(authSvc, log)
	userHandler := handlers.NewUserHandler(userSvc, log)
	projectHandler := handlers.NewProjectHandler(projectSvc)
	tagHandler := handlers.NewTagHandler(tagSvc)
	commentHandler := handlers.NewCommentHandler(commentSvc)
	githubHandler := handlers.NewGitHubHandler(githubSvc, rdb, log)

	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewUserModule(userHandler, projectHandler, jwt))
	r.Add(modules.NewProjectModule(projectHandler, tagHandler, commentHandler, jwt))
	r.Add(modules.NewGitHubModule(githubHandler, jwt))
}
