package app

import (
	"context"
	"log"
	"os"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/infrastructure/mailer"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/infrastructure/verification"
	"jobboard/internal/ws"
)

type Container struct {
	Config   config.Config
	DB       database.DB
	Codes    verification.Store
	Notifier mailer.Notifier
	Store    storage.ObjectStore
	Hub      *ws.Hub
	Logger   *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewLocalStore(cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config:   cfg,
		DB:       db,
		Codes:    verification.NewRedisStore(cfg.Redis, logger),
		Notifier: mailer.NewSMTPNotifier(cfg.SMTP),
		Store:    store,
		Hub:      hub,
		Logger:   logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
