package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"AuraFM/config"
	"AuraFM/core/auth"
	"AuraFM/core/catalog"
	"AuraFM/core/history"
	"AuraFM/core/jamendo"
	"AuraFM/core/player"
	"AuraFM/core/provider"
	"AuraFM/core/recommend"
	"AuraFM/core/resolver"
	"AuraFM/db"
	"AuraFM/logger"
	"AuraFM/repository"
	"AuraFM/storage"
)

// Start initializes all dependencies and runs the HTTP server until a
// termination signal arrives.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})
	auth.Init(cfg)

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()
	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database schema", logger.ErrorField(err))
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()
	if err := db.MigrateGormModels(); err != nil {
		logger.Fatal("Failed to migrate models", logger.ErrorField(err))
	}

	if err := db.ConnectRedis(cfg); err != nil {
		// The history recorder degrades to repository-side debouncing.
		logger.Warn("Redis unavailable, debounce falls back to the database",
			logger.ErrorField(err),
		)
	} else {
		defer db.CloseRedis()
	}

	if err := storage.InitMinio(cfg); err != nil {
		// Playlist covers are the only MinIO consumer; everything else
		// keeps working without it.
		logger.Warn("Object storage unavailable, cover uploads disabled",
			logger.ErrorField(err),
		)
	}

	// Local catalog, optionally hot-reloaded from a JSON file.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	localCatalog := catalog.New()
	if cfg.CatalogFile != "" {
		if err := localCatalog.LoadFile(cfg.CatalogFile); err != nil {
			logger.Warn("Failed to load catalog file, using bundled catalog",
				logger.String("path", cfg.CatalogFile),
				logger.ErrorField(err),
			)
		}
		if err := localCatalog.Watch(ctx, cfg.CatalogFile); err != nil {
			logger.Warn("Failed to start catalog watcher", logger.ErrorField(err))
		}
	}

	jamendoClient := jamendo.NewClient(cfg)
	if cfg.JamendoClientID == "" {
		logger.Warn("No Jamendo client id configured, remote catalog calls will fail over to the local catalog")
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	historyRepo := repository.NewGormHistoryRepository(db.GormDB)
	playlistRepo := repository.NewGormPlaylistRepository(db.GormDB)
	favoriteRepo := repository.NewGormFavoriteRepository(db.GormDB)

	hub := player.NewHub()
	go hub.Run()
	defer hub.Stop()

	apiHandler := NewAPIHandler(
		userRepo,
		playlistRepo,
		favoriteRepo,
		historyRepo,
		provider.NewAdapter(jamendoClient, localCatalog),
		resolver.New(localCatalog, jamendoClient, cfg.FallbackAudioURL),
		history.NewRecorder(historyRepo, db.RedisClient),
		recommend.NewEngine(historyRepo, jamendoClient),
		hub,
		cfg,
	)

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	// Auth
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)

	// Catalog
	router.HandleFunc("/api/music/search", apiHandler.AuthMiddleware(apiHandler.SearchHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/music/browse", apiHandler.AuthMiddleware(apiHandler.BrowseHandler)).Methods(http.MethodGet)

	// Playback
	router.HandleFunc("/api/stream/{trackId}", apiHandler.AuthMiddleware(apiHandler.StreamHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/recommendations", apiHandler.AuthMiddleware(apiHandler.RecommendationsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/ws/now-playing", apiHandler.NowPlayingWSHandler).Methods(http.MethodGet)

	// Playlists
	router.HandleFunc("/api/playlists", apiHandler.AuthMiddleware(apiHandler.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists", apiHandler.AuthMiddleware(apiHandler.ListPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", apiHandler.AuthMiddleware(apiHandler.GetPlaylistHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", apiHandler.AuthMiddleware(apiHandler.UpdatePlaylistHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/playlists/{id}", apiHandler.AuthMiddleware(apiHandler.DeletePlaylistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/tracks", apiHandler.AuthMiddleware(apiHandler.AddPlaylistTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/tracks/{trackId}", apiHandler.AuthMiddleware(apiHandler.RemovePlaylistTrackHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/cover", apiHandler.AuthMiddleware(apiHandler.UploadPlaylistCoverHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/cover", apiHandler.AuthMiddleware(apiHandler.GetPlaylistCoverHandler)).Methods(http.MethodGet)

	// Profile
	router.HandleFunc("/api/profile", apiHandler.AuthMiddleware(apiHandler.ProfileHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/profile/history", apiHandler.AuthMiddleware(apiHandler.HistoryHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites", apiHandler.AuthMiddleware(apiHandler.ListFavoritesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites", apiHandler.AuthMiddleware(apiHandler.AddFavoriteHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/{trackId}", apiHandler.AuthMiddleware(apiHandler.RemoveFavoriteHandler)).Methods(http.MethodDelete)

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting",
			logger.String("addr", httpServer.Addr),
			logger.Int("catalogTracks", localCatalog.Len()),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", logger.ErrorField(err))
	}
}

// corsMiddleware applies the permissive CORS policy expected by the
// single-page frontend.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
