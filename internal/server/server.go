package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/sngm3741/doner-finder/api/internal/admin/application"
	"github.com/sngm3741/doner-finder/api/internal/config"
	mongodoc "github.com/sngm3741/doner-finder/api/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/doner-finder/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/doner-finder/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/doner-finder/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/doner-finder/api/internal/public/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *log.Logger
	client         *mongo.Client
	ping           func(context.Context) error
	database       *mongo.Database
	collections    mongodoc.Collections
	verifier       *commonhttp.TokenVerifier
	publicHandler  *publichttp.Handler
	adminHandler   *adminhttp.Handler
	addr           string
	allowedOrigins []string
}

// Run はインデックスを用意してから HTTP サーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	err := mongodoc.EnsureIndexes(ctx, s.database, s.collections)
	cancel()
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.verifier.RequireAuth, s.verifier.RequireAdmin)
			s.adminHandler.Register(r)
		})
		s.publicHandler.Register(r, s.verifier.RequireAuth, s.verifier.OptionalAuth)
	})
	return router
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB への疎通確認のみを返す。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.ping(ctx); err != nil {
			s.logger.Printf("MongoDB ping 失敗: %v", err)
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// loadLocation falls back to UTC when the zone database lacks the configured name.
func loadLocation(name string, logger *log.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		if logger != nil {
			logger.Printf("タイムゾーン %s の読み込みに失敗: %v, UTC を使用します", name, err)
		}
		return time.UTC
	}
	return loc
}

// New は Config と Mongo クライアントを受け取り、リポジトリ・サービス・ハンドラを組み立てた Server を返す。
func New(cfg config.Config, client *mongo.Client) *Server {
	database := client.Database(cfg.MongoDatabase)
	collections := mongodoc.Collections{
		Shops:     cfg.ShopCollection,
		Reviews:   cfg.ReviewCollection,
		Favorites: cfg.FavoriteCollection,
	}

	shopRepo := mongodoc.NewShopRepository(database, cfg.ShopCollection, cfg.ReviewCollection)
	reviewRepo := mongodoc.NewReviewRepository(database, cfg.ReviewCollection)
	favoriteRepo := mongodoc.NewFavoriteRepository(database, cfg.FavoriteCollection)
	adminShopRepo := mongodoc.NewAdminShopRepository(database, cfg.ShopCollection, reviewRepo, favoriteRepo)

	opts := publicapp.Options{
		Location:             loadLocation(cfg.Timezone, cfg.ServerLog),
		HydrationConcurrency: cfg.HydrationConcurrency,
	}

	keys := make([]commonhttp.JWTKey, 0, len(cfg.JWTConfigs))
	for _, jc := range cfg.JWTConfigs {
		keys = append(keys, commonhttp.JWTKey{Issuer: jc.Issuer, Secret: jc.Secret})
	}

	publicCfg := publichttp.Config{
		Logger:        cfg.ServerLog,
		Shops:         publicapp.NewShopQueryService(shopRepo, reviewRepo, opts),
		Reviews:       publicapp.NewReviewService(shopRepo, reviewRepo, opts),
		Favorites:     publicapp.NewFavoriteService(shopRepo, reviewRepo, favoriteRepo, opts),
		Fingerprinter: commonhttp.NewFingerprinter(cfg.FingerprintSecret),
		ReviewLimiter: commonhttp.NewKeyedLimiter(cfg.ReviewRatePerMinute, cfg.ReviewRateBurst),
	}
	if notifier := publichttp.NewMessengerNotifier(publichttp.MessengerConfig{
		Endpoint:     cfg.MessengerEndpoint,
		Destination:  cfg.MessengerDestination,
		AdminBaseURL: cfg.AdminBaseURL,
		Timeout:      cfg.MessengerTimeout,
		RetryDelay:   200 * time.Millisecond,
		Logger:       cfg.ServerLog,
	}); notifier != nil {
		publicCfg.Notifier = notifier
	}

	adminCfg := adminhttp.Config{
		Logger:     cfg.ServerLog,
		Shops:      adminapp.NewShopService(adminShopRepo, nil),
		Moderation: adminapp.NewReviewModerationService(adminShopRepo, reviewRepo),
	}

	ping := func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}

	return &Server{
		logger:         cfg.ServerLog,
		client:         client,
		ping:           ping,
		database:       database,
		collections:    collections,
		verifier:       commonhttp.NewTokenVerifier(keys, cfg.JWTAudience, cfg.ServerLog),
		publicHandler:  publichttp.NewHandler(publicCfg),
		adminHandler:   adminhttp.NewHandler(adminCfg),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
}
