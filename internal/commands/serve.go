package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"jakca/internal/banner"
	"jakca/internal/config"
	"jakca/internal/database"
	"jakca/internal/handlers"
	"jakca/internal/metrics"
	"jakca/internal/middleware"
	"jakca/internal/oauth"
	"jakca/internal/places"
	"jakca/internal/service"
	"jakca/internal/store"
)

var skipIndexes bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipIndexes, "skip-indexes", false, "do not ensure indexes on startup")
}

// app holds every wired component the routes need.
type app struct {
	client     *mongo.Client
	cfg        config.Config
	metrics    *metrics.Metrics
	sessions   *service.Sessions
	aggregator *service.Aggregator
	cafes      *service.Cafes
	reviews    *service.Reviews
	likes      *service.Likes
	accounts   *service.Accounts
	geocoder   places.Geocoder
	identity   *oauth.Manager
	banners    banner.Provider
}

func newApp(client *mongo.Client, db *mongo.Database, cfg config.Config) (*app, error) {
	m := metrics.New()

	kakao := places.NewClient(cfg.KakaoAPIBaseURL, cfg.KakaoRESTAPIKey, cfg.UpstreamTimeout)
	if !cfg.LiveSearchEnabled() {
		log.Println("[PLACES] [WARN] KAKAO_REST_API_KEY is empty, live search will fail")
	}
	memo := places.NewMemo(kakao, cfg.LiveSearchTTL)
	memo.Observe(m.MemoHit, m.MemoMiss)

	catalog, err := banner.LoadCatalog(cfg.BannerConfig)
	if err != nil {
		return nil, err
	}
	banners, err := banner.New(cfg.BannerProvider, catalog)
	if err != nil {
		return nil, err
	}

	cafeStore := store.NewCafeStore(db)
	reviewStore := store.NewReviewStore(db)
	likeStore := store.NewLikeStore(db)
	userStore := store.NewUserStore(db)
	tokenStore := store.NewTokenStore(db)

	return &app{
		client:     client,
		cfg:        cfg,
		metrics:    m,
		sessions:   service.NewSessions(tokenStore, userStore, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		aggregator: service.NewAggregator(cafeStore, memo, m),
		cafes:      service.NewCafes(cafeStore, reviewStore),
		reviews:    service.NewReviews(store.NewTransactor(db), cafeStore, reviewStore, memo, m),
		likes:      service.NewLikes(likeStore, cafeStore),
		accounts:   service.NewAccounts(userStore, cfg.AllowPasswordSignup),
		geocoder:   kakao,
		identity:   oauth.NewManager(cfg),
		banners:    banners,
	}, nil
}

func (a *app) router() *gin.Engine {
	r := gin.Default()
	r.Use(a.metrics.Middleware())

	r.GET("/", handlers.Home(a.cfg.FrontendURL))
	r.GET("/healthz", handlers.Healthz(a.client))
	r.GET("/metrics", a.metrics.Handler())

	r.GET("/cafes/nearby", handlers.GetNearbyCafes(a.aggregator, handlers.Coordinate{
		Lat: a.cfg.DefaultLat,
		Lng: a.cfg.DefaultLng,
	}))
	r.GET("/cafes/:id", handlers.GetCafe(a.cafes))
	r.GET("/cafes/:id/likes", middleware.OptionalUserAuth(a.sessions), handlers.GetLikeStatus(a.likes))
	r.GET("/locality", handlers.GetLocality(a.geocoder))
	r.GET("/banners/:slot", handlers.GetBanner(a.banners))

	r.GET("/auth/:provider/login", handlers.OAuthLogin(a.identity))
	r.GET("/auth/:provider/callback", handlers.OAuthCallback(a.identity, a.accounts, a.sessions, a.cfg.FrontendURL))
	r.POST("/auth/login", handlers.Login(a.accounts, a.sessions))
	r.POST("/auth/register", handlers.Register(a.accounts, a.sessions))
	r.POST("/auth/refresh", handlers.Refresh(a.sessions))
	r.POST("/auth/logout", handlers.Logout(a.sessions))

	user := r.Group("/")
	user.Use(middleware.UserAuth(a.sessions), middleware.ActiveOnly())
	{
		user.POST("/reviews", handlers.CreateReview(a.reviews))
		user.DELETE("/reviews/:cafeId", handlers.DeleteReview(a.reviews))
		user.POST("/cafes/:id/like", handlers.LikeCafe(a.likes))
		user.DELETE("/cafes/:id/like", handlers.UnlikeCafe(a.likes))
	}

	me := r.Group("/me")
	me.Use(middleware.UserAuth(a.sessions))
	{
		me.GET("", handlers.GetMe(a.accounts))
		me.GET("/reviews", handlers.GetMyReviews(a.reviews))
		me.GET("/likes", handlers.GetMyLikes(a.likes))
	}

	return r
}

func runServe(ctx context.Context) error {
	client, db, err := openDatabase(true)
	if err != nil {
		return err
	}
	defer disconnect(client)

	if !skipIndexes {
		if err := database.EnsureAll(db); err != nil {
			log.Printf("[DB] [WARN] index warning: %v", err)
		}
	}

	a, err := newApp(client, db, config.AppEnv)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppEnv.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[HTTP] [INFO] listening on %s", srv.Addr)
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

	log.Println("[HTTP] [INFO] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
