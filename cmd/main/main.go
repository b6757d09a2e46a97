package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vehiql-main/internal/app"
	"vehiql-main/internal/car"
	"vehiql-main/internal/catalog"
	"vehiql-main/internal/dealership"
	elastic "vehiql-main/internal/elastic_search"
	"vehiql-main/internal/etl"
	handlersAdmin "vehiql-main/internal/handlers/admin"
	handlersCatalog "vehiql-main/internal/handlers/catalog"
	handlersDealership "vehiql-main/internal/handlers/dealership"
	handlersImages "vehiql-main/internal/handlers/images"
	handlersSaved "vehiql-main/internal/handlers/saved"
	handlersUser "vehiql-main/internal/handlers/user"
	"vehiql-main/internal/images"
	"vehiql-main/internal/inventory"
	"vehiql-main/internal/kafka"
	"vehiql-main/internal/middleware"
	"vehiql-main/internal/saved"
	"vehiql-main/internal/session"
	"vehiql-main/internal/user"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	cfgPath     = "config/config.yaml"
	serviceName = "vehiql"
)

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	db, err := app.NewPostgres(ctx, c.CfgDB, c.MaxOpenConns)
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}
	defer db.Close()

	if err = app.EnsureSchema(ctx, db); err != nil {
		logger.Fatalf("error to create schema: %v", err)
	}

	// init redis
	redisClient, err := app.NewRedis(ctx, c.CfgRedis)
	if err != nil {
		logger.Fatalf("error to connect redis: %v", err)
	}
	defer redisClient.Close()

	// init mongo (картинки объявлений)
	mongoClient, mongoDB, err := app.NewMongo(ctx, c.CfgMongo)
	if err != nil {
		logger.Fatalf("error to connect mongo: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Warnf("error to disconnect mongo: %v", err)
		}
	}()

	imageStore, err := images.NewGridFSStore(mongoDB, c.PublicURL, logger)
	if err != nil {
		logger.Fatalf("error to init image store: %v", err)
	}

	// init elasticsearch
	esClient, err := app.NewElastic(c.CfgES)
	if err != nil {
		logger.Fatalf("error to init elasticsearch client: %v", err)
	}
	esService := elastic.NewService(esClient, logger, c.CfgES.Index)
	if err = esService.EnsureIndex(ctx); err != nil {
		// подсказки поиска не критичны для каталога
		logger.Warnf("search index is not ready: %v", err)
	}

	// init kafka
	producer := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
	defer producer.Close()

	// init repository
	carRepository := car.NewCarDBRepository(db, logger)
	userRepository := user.NewUserDBRepository(db, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)
	savedRepository := saved.NewSavedDBRepository(db, logger)
	dealershipRepository := dealership.NewDealershipDBRepository(db, c.Dealership, logger)

	// init services
	engine := catalog.NewEngine(carRepository, logger)
	deriver := catalog.NewDeriver(carRepository, logger)
	inventoryService := inventory.NewService(carRepository, imageStore, esService, producer, logger)

	// init etl
	pipeline := etl.NewPipeline(
		etl.NewPostgresExtractor(db, logger),
		etl.NewTransformer(logger),
		etl.NewElasticLoader(esService, logger, db),
		logger,
		c.ETLInterval,
		c.ETLTimeout,
	)
	go pipeline.Run(ctx)

	// init handlers
	userHandlers := handlersUser.NewUserHandler(logger, userRepository, sessionRepository)
	catalogHandlers := handlersCatalog.NewCatalogHandler(
		logger, engine, deriver, carRepository, esService, producer,
		c.CfgCatalog.MaxPageSize, c.CfgCatalog.FeaturedLimit,
	)
	savedHandlers := handlersSaved.NewSavedHandler(logger, savedRepository, carRepository, producer)
	dealershipHandlers := handlersDealership.NewDealershipHandler(logger, dealershipRepository)
	imagesHandlers := handlersImages.NewImagesHandler(logger, imageStore)
	adminHandlers := handlersAdmin.NewAdminHandler(
		logger, inventoryService, carRepository, userRepository, imageStore, c.CfgUpload.MaxBytes,
	)
	uploadLimiter := middleware.NewRateLimiter(c.CfgUpload.RatePerSecond, c.CfgUpload.Burst, logger)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware, middleware.Tracing(serviceName))
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Ручки администратора
	adminRouter := r.PathPrefix("/api/admin").Subrouter()
	adminRouter.Use(
		middleware.Auth(sessionRepository, logger),
		middleware.RequireAdmin(c.Admin, userRepository, logger),
	)

	adminRouter.HandleFunc("/cars", adminHandlers.CreateCar).Methods(http.MethodPost)
	adminRouter.HandleFunc("/cars", adminHandlers.ListCars).Methods(http.MethodGet)
	adminRouter.HandleFunc("/cars/{id}", adminHandlers.UpdateCar).Methods(http.MethodPut)
	adminRouter.HandleFunc("/cars/{id}", adminHandlers.DeleteCar).Methods(http.MethodDelete)
	adminRouter.HandleFunc("/cars/{id}/status", adminHandlers.UpdateStatus).Methods(http.MethodPatch)
	adminRouter.Handle("/upload", uploadLimiter.Middleware(http.HandlerFunc(adminHandlers.Upload))).Methods(http.MethodPost)
	adminRouter.HandleFunc("/dashboard", adminHandlers.Dashboard).Methods(http.MethodGet)
	adminRouter.HandleFunc("/users", adminHandlers.ListUsers).Methods(http.MethodGet)
	adminRouter.HandleFunc("/users/{id}/role", adminHandlers.UpdateUserRole).Methods(http.MethodPut)
	adminRouter.HandleFunc("/dealership", dealershipHandlers.GetInfo).Methods(http.MethodGet)
	adminRouter.HandleFunc("/dealership/hours", dealershipHandlers.SaveWorkingHours).Methods(http.MethodPut)

	// Ручки требующие авторизации
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.Auth(sessionRepository, logger))

	authRouter.HandleFunc("/saved", savedHandlers.List).Methods(http.MethodGet)
	authRouter.HandleFunc("/saved/{car_id}", savedHandlers.Add).Methods(http.MethodPost)
	authRouter.HandleFunc("/saved/{car_id}", savedHandlers.Remove).Methods(http.MethodDelete)
	authRouter.HandleFunc("/user/logout", userHandlers.Logout).Methods(http.MethodPost)
	authRouter.HandleFunc("/user/me", userHandlers.Me).Methods(http.MethodGet)

	// Ручки НЕ требующие авторизации, сессия нужна только для событий аналитики
	noAuthRouter := r.PathPrefix("/api").Subrouter()
	noAuthRouter.Use(middleware.Identify(sessionRepository))

	noAuthRouter.HandleFunc("/user/register", userHandlers.Register).Methods(http.MethodPost)
	noAuthRouter.HandleFunc("/user/login", userHandlers.Login).Methods(http.MethodPost)

	noAuthRouter.HandleFunc("/cars/filters", catalogHandlers.Filters).Methods(http.MethodGet)
	noAuthRouter.HandleFunc("/cars/featured", catalogHandlers.Featured).Methods(http.MethodGet)
	noAuthRouter.HandleFunc("/cars/suggest", catalogHandlers.Suggest).Methods(http.MethodGet)
	noAuthRouter.HandleFunc("/cars/{id}", catalogHandlers.GetByID).Methods(http.MethodGet)
	noAuthRouter.HandleFunc("/cars", catalogHandlers.List).Methods(http.MethodGet)

	noAuthRouter.HandleFunc("/images/{id}", imagesHandlers.Get).Methods(http.MethodGet)
	noAuthRouter.HandleFunc("/test-drive/info", dealershipHandlers.TestDriveInfo).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         ":" + c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("error to shutdown server: %v", err)
		}
	}()

	logger.Infow("starting server",
		"type", "START",
		"addr", srv.Addr,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("can't start server: %v", err)
	}
}
