package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quill/config"
	"quill/controllers"
	"quill/handlers"
	"quill/middleware"
	"quill/policy"
	"quill/routes"
	"quill/services"
	"quill/utils"
	"quill/views"

	_ "quill/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Engine   *gin.Engine
	Hub      *services.HubService
	Sessions *services.SessionService
	Posts    *services.PostService

	cfg    *config.Config
	logger *zap.Logger
}

// New wires services, controllers and routes on top of an open database.
func New(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*App, error) {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// registered before the identity middleware: no session lookup for these
	r.StaticFS("/static", http.FS(views.Static()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db, cfg.SessionTTL)
	postService := services.NewPostService(db)
	commentService := services.NewCommentService(db)
	authService := services.NewAuthService(userService, sessionService, cfg.SessionSecret, logger)
	hubService := services.NewHubService(logger)

	p := policy.New(cfg.AdminID)
	cookies := utils.CookieOptions{Secure: cfg.CookieSecure, MaxAge: cfg.SessionTTL}
	renderer := controllers.NewRenderer(p, cookies, logger)

	r.Use(middleware.Identity(authService, cookies))

	routes.SetupRoutes(r, p, routes.Controllers{
		Auth:  controllers.NewAuthController(authService, renderer, cookies),
		Posts: controllers.NewPostController(postService, commentService, hubService, p, renderer),
		Pages: controllers.NewPageController(renderer),
		API:   controllers.NewAPIController(postService, commentService),
		Feed:  handlers.NewCommentFeedHandler(hubService, postService, logger),
	}, middleware.CORS(cfg.AllowedOrigins))

	return &App{
		Engine:   r,
		Hub:      hubService,
		Sessions: sessionService,
		Posts:    postService,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Serve runs the HTTP server and the comment hub until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	if purged, err := a.Sessions.CleanupExpiredSessions(ctx); err != nil {
		a.logger.Warn("failed to cleanup expired sessions", zap.Error(err))
	} else if purged > 0 {
		a.logger.Info("expired sessions purged", zap.Int64("count", purged))
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go a.Hub.Run(hubCtx)

	srv := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.Engine,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", zap.String("addr", srv.Addr), zap.Uint("admin_id", a.cfg.AdminID))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
