package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "lending-engine/internal/adapter/http"
	appmw "lending-engine/internal/adapter/middleware"
	"lending-engine/internal/adapter/repository/mysql"
	"lending-engine/internal/config"
	"lending-engine/internal/infrastructure/cache"
	"lending-engine/internal/infrastructure/db"
	"lending-engine/internal/infrastructure/email"
	"lending-engine/internal/usecase/lifecycle"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	loans := mysql.NewLoanRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	sender := email.NewConsoleSender(log)
	ctrl := lifecycle.NewController(loans, uow, sender, log).
		WithCommitRetries(cfg.CommitRetries)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	h := httpadp.NewHandler()
	e.GET("/health", h.Health)

	var mws []echo.MiddlewareFunc
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Warnf("redis unavailable, idempotency disabled: %v", err)
	} else {
		mws = append(mws, appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	}

	lh := httpadp.NewLoanHandler(ctrl)
	lh.RegisterRoutes(e, mws...)

	addr := ":" + cfg.AppPort
	log.Infof("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
