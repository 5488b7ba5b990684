// Package app wires the store, pipelines and services used by both binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/importer"
	"github.com/eignung/flashcards/internal/infrastructure/config"
	"github.com/eignung/flashcards/internal/infrastructure/logging"
	"github.com/eignung/flashcards/internal/maintenance"
	"github.com/eignung/flashcards/internal/service"
	"github.com/eignung/flashcards/internal/store"
)

// Container owns every long-lived dependency.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Store  store.Store

	Importer    *importer.Importer
	Exporter    *importer.Exporter
	Maintenance *maintenance.Maintainer
	Categories  *service.CategoryService
	Questions   *service.QuestionService
	Quiz        *service.QuizService
	Dashboard   *service.DashboardService

	shutdownFuncs []func(context.Context) error
}

// Bootstrap loads configuration, builds the logger and opens the database.
func Bootstrap() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		return nil, err
	}

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	c, err := New(cfg, logger, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	c.shutdownFuncs = append(c.shutdownFuncs, func(context.Context) error {
		return db.Close()
	})
	c.shutdownFuncs = append(c.shutdownFuncs, func(context.Context) error {
		// stderr sync fails on some terminals
		_ = logger.Sync()
		return nil
	})
	return c, nil
}

// New builds the services on top of an open store.
func New(cfg *config.Config, logger *zap.Logger, s store.Store) (*Container, error) {
	keywords, err := maintenance.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Store:       s,
		Importer:    importer.New(s, logger.Named("import")),
		Exporter:    importer.NewExporter(s),
		Maintenance: maintenance.New(s, keywords, logger.Named("maintenance")),
		Categories:  service.NewCategoryService(s, logger.Named("categories")),
		Questions:   service.NewQuestionService(s, logger.Named("questions")),
		Quiz:        service.NewQuizService(s, logger.Named("quiz")),
		Dashboard:   service.NewDashboardService(s),
	}, nil
}

// Shutdown releases resources in reverse order of acquisition.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(c.shutdownFuncs) - 1; i >= 0; i-- {
		if err := c.shutdownFuncs[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.shutdownFuncs = nil
	return errors.Join(errs...)
}
