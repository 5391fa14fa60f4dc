package main

import (
	"flag"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpadapter "github.com/NirB94/EfsharHeshbon/internal/adapters/http"
	"github.com/NirB94/EfsharHeshbon/internal/config"
	"github.com/NirB94/EfsharHeshbon/internal/generator"
	"github.com/NirB94/EfsharHeshbon/internal/hint"
	"github.com/NirB94/EfsharHeshbon/internal/infrastructure/storage"
	"github.com/NirB94/EfsharHeshbon/internal/solver"
	"github.com/NirB94/EfsharHeshbon/internal/usecase"
	"github.com/NirB94/EfsharHeshbon/internal/validator"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "config file path")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	lvl, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logger := logrus.StandardLogger()

	st, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.WithError(err).Fatal("open storage")
	}
	defer st.Close()

	// Wire providers → use cases → HTTP adapter
	s := solver.NewDFSSolver()
	g := generator.NewEmbeddedSolutionGenerator()
	v := validator.New()
	hnt := hint.NewTracker()
	uc := usecase.NewService(s, g, v, hnt, st, cfg.Game.Size, cfg.Game.MaxTarget, cfg.Game.MaxAttempts)

	if lvl < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(httpadapter.RequestLogger(logger), gin.Recovery())
	httpadapter.New(uc).Register(r)

	logger.WithFields(logrus.Fields{
		"addr": cfg.Server.Addr, "db": cfg.Storage.Path, "size": cfg.Game.Size,
	}).Info("listening")
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.WithError(err).Error("server error")
		os.Exit(1)
	}
}
