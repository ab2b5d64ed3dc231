package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/basit/tasklist-backend/auth"
	"github.com/basit/tasklist-backend/auth/middleware"
	"github.com/basit/tasklist-backend/graph"
	"github.com/basit/tasklist-backend/graph/resolvers"
	"github.com/basit/tasklist-backend/handlers"
	"github.com/basit/tasklist-backend/initializers"
	"github.com/basit/tasklist-backend/jobs"
	"github.com/basit/tasklist-backend/routes"
	"github.com/basit/tasklist-backend/store"
)

var (
	servePort string
	inMemory  bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at / (GET)
  - Avatar uploads at /api/avatars (POST) when AWS_BUCKET_NAME is set

Examples:
  # Start against the database in DB_URL
  tasklists serve

  # Start without a database, keeping data in memory
  tasklists serve --in-memory --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func openStore() (store.Store, error) {
	if inMemory {
		logger.Warn("Using in-memory store; data is lost on exit")
		return store.NewMemory(), nil
	}

	db, err := initializers.ConnectToDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := initializers.Migrate(db); err != nil {
		return nil, err
	}
	logger.Info("Database connected and migrated successfully")
	return store.NewGorm(db), nil
}

func newAvatarHandler(ctx context.Context) (*handlers.AvatarHandler, error) {
	if cfg.AvatarBucket == "" {
		return nil, nil
	}
	uploader, err := initializers.NewS3Uploader(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	return &handlers.AvatarHandler{Uploader: uploader, Bucket: cfg.AvatarBucket, Logger: logger}, nil
}

func runServer() error {
	st, err := openStore()
	if err != nil {
		return err
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	root := resolvers.NewResolver(st, tokens, auth.NewPasswords(cfg.BcryptCost), logger)
	schema, err := graph.NewSchema(root, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	avatars, err := newAvatarHandler(ctx)
	if err != nil {
		return err
	}

	if cfg.OrphanSweepInterval > 0 {
		jobs.StartOrphanSweep(ctx, st, cfg.OrphanSweepInterval, logger)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterHealthRoutes(router)
	routes.RegisterGraphQLRoutes(router, schema.Handler(), middleware.AuthOptional(tokens, st, logger))
	routes.RegisterAvatarRoutes(router, avatars)

	port := servePort
	if port == "" {
		port = cfg.Port
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("connect to http://localhost:%s/ for GraphQL playground", port)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("Server stopped")
	}

	return nil
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (defaults to PORT)")
	serveCmd.Flags().BoolVar(&inMemory, "in-memory", false, "Keep data in memory instead of postgres")
	rootCmd.AddCommand(serveCmd)
}
