package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"skillsync/internal/app"
	"skillsync/internal/config"
	"skillsync/internal/pkg/logger"

	"go.uber.org/zap"
)

type env struct {
	container *app.Container
	usecases  app.Usecases
	logger    *zap.Logger
}

type opener func(ctx context.Context, verbose bool) (*env, error)

func openEnv(ctx context.Context, verbose bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := zap.NewNop()
	if verbose {
		if log, err = logger.New(cfg.App.Environment); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	c, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return newEnv(c), nil
}

func newEnv(c *app.Container) *env {
	return &env{container: c, usecases: app.NewUsecases(c, nil), logger: c.Logger}
}

func (e *env) Close() {
	_ = e.container.Close()
	_ = e.logger.Sync()
}

func (e *env) inMemory() bool {
	return e.container.DB == nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
