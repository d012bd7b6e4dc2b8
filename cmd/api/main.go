package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/therealharsh/backflow-tester-sub001/analytics"
	"github.com/therealharsh/backflow-tester-sub001/cache"
	"github.com/therealharsh/backflow-tester-sub001/config"
	"github.com/therealharsh/backflow-tester-sub001/geocoder"
	"github.com/therealharsh/backflow-tester-sub001/handler"
	cachemw "github.com/therealharsh/backflow-tester-sub001/middleware/cache"
	"github.com/therealharsh/backflow-tester-sub001/middleware/ratelimit"
	log "github.com/therealharsh/backflow-tester-sub001/pkg/logger"
	"github.com/therealharsh/backflow-tester-sub001/repository"
	"github.com/therealharsh/backflow-tester-sub001/search"
	_ "github.com/therealharsh/backflow-tester-sub001/swagger"
)

type Application struct {
	app        *fiber.App
	engine     *search.Engine
	suggester  *search.Suggester
	dispatcher *analytics.Dispatcher
	cacheRepo  *cache.RedisRepository
}

func (a *Application) Register() {
	a.app.Get("/", handler.RedirectSwagger)
	a.app.Get("/healthcheck", handler.HealthCheck)
	a.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	a.app.Get("/monitor", monitor.New())
	a.app.Get("/search", handler.Search(a.engine, a.dispatcher))
	a.app.Get("/api/suggest", handler.Suggest(a.suggester))
	if a.cacheRepo != nil {
		a.app.Get("/caches/prune", handler.InvalidateCache(a.cacheRepo))
	}
	route := a.app.Group("/swagger")
	route.Get("*", swagger.HandlerDefault)
}

// @title						Backflow Tester Directory API
// @version					    1.0
// @description				    Query resolution and proximity search for the backflow tester directory
// @BasePath					/
// @schemes					    https http
// @license.name				Apache License, Version 2.0 (the "License")
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Logger().Fatal("failed to load config", zap.Error(err))
	}

	repo, err := repository.New(cfg.DBConnStr)
	if err != nil {
		log.Logger().Fatal("failed to connect to directory store", zap.Error(err))
	}
	defer repo.Close()

	geo := geocoder.New(cfg.NominatimBaseURL)
	metrics := search.NewMetrics()
	engine := search.NewEngine(repo, geo, metrics)
	suggester := search.NewSuggester(repo, metrics)

	var dispatcher *analytics.Dispatcher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := analytics.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Logger().Warn("failed to init analytics producer", zap.Error(err))
		} else {
			dispatcher = analytics.NewDispatcher(producer, cfg.AnalyticsTopic)
			defer dispatcher.Close()
		}
	}

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Window:      cfg.RateLimitWindow,
		MaxRequests: cfg.RateLimitMax,
	}, clockwork.NewRealClock())

	app := fiber.New()
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New())
	app.Use(recover.New())
	app.Use(pprof.New())
	app.Use(ratelimit.New(limiter))

	var cacheRepo *cache.RedisRepository
	if cfg.RedisAddr != "" {
		cacheRepo = cache.NewRedisRepository(cfg.RedisAddr, cfg.RedisPassword)
		app.Use(cachemw.New(cacheRepo))
	}

	application := &Application{app: app, engine: engine, suggester: suggester, dispatcher: dispatcher, cacheRepo: cacheRepo}
	application.Register()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT)
	signal.Notify(c, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("application gracefully shutting down..")
		_ = app.Shutdown()
	}()

	if err := app.Listen(cfg.ListenAddr); err != nil {
		panic(fmt.Sprintf("app error: %s", err.Error()))
	}
}
