package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/workviyo/taskboard-api/internal/auth"
	"github.com/workviyo/taskboard-api/internal/config"
	"github.com/workviyo/taskboard-api/internal/constants"
	"github.com/workviyo/taskboard-api/internal/handlers"
	"github.com/workviyo/taskboard-api/internal/middleware"
	"github.com/workviyo/taskboard-api/internal/repository"
	"github.com/workviyo/taskboard-api/internal/services"
)

// Dependencies are the process wide collaborators the router wires into
// handlers.
type Dependencies struct {
	Repos    *repository.Repositories
	Store    handlers.Pinger
	Tokens   *auth.TokenService
	Sessions sessions.Store
}

// NewSessionStore builds the cookie or redis session store selected by
// cfg.SessionStore.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == "release",
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// SetupRouter builds services and handlers over deps and registers every
// route.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.Sessions))

	taskService := services.NewTaskService(deps.Repos)
	reportService := services.NewReportService(deps.Repos)
	authService := services.NewAuthService(deps.Repos.Users)
	teamService := services.NewTeamService(deps.Repos.Teams, deps.Repos.Members)
	projectService := services.NewProjectService(deps.Repos.Projects)
	directoryService := services.NewDirectoryService(deps.Repos)

	healthHandler := handlers.NewHealthHandler(deps.Store)
	authHandler := handlers.NewAuthHandler(authService, deps.Tokens)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)

	requireAuth := middleware.RequireAuth(deps.Tokens)

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/me", requireAuth, authHandler.GetCurrentUser)
	}

	r.GET("/users", directoryHandler.ListUsers)
	r.GET("/tags", directoryHandler.ListTags)
	r.POST("/tags", directoryHandler.CreateTag)
	r.GET("/members", requireAuth, directoryHandler.ListMembers)
	r.POST("/members", requireAuth, directoryHandler.CreateMember)

	r.POST("/teams", teamHandler.CreateTeam)
	r.GET("/teams", teamHandler.ListTeams)
	r.POST("/team/:team_id/member", teamHandler.AddMember)

	r.POST("/projects", projectHandler.CreateProject)
	r.GET("/projects", projectHandler.ListProjects)

	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.POST("", requireAuth, taskHandler.CreateTask)
		tasks.PATCH("/:id", requireAuth, taskHandler.UpdateTask)
		tasks.POST("/:id", requireAuth, taskHandler.UpdateTask)
		tasks.POST("/:id/owners", requireAuth, taskHandler.AddOwners)
		tasks.DELETE("/:id", requireAuth, taskHandler.DeleteTask)
	}

	report := r.Group("/report")
	{
		report.GET("/last-week", reportHandler.LastWeek)
		report.GET("/pending", reportHandler.Pending)
		report.GET("/closed-tasks", reportHandler.ClosedTasks)
	}

	return r
}
