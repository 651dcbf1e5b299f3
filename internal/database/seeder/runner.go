package seeder

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, s Store) error {
	if s.Users == nil || s.Roles == nil {
		return fmt.Errorf("seed store not configured")
	}
	if s.HashPassword == nil {
		return fmt.Errorf("seed password hasher not configured")
	}
	for _, sd := range r.Seeders {
		if sd == nil {
			continue
		}
		if err := sd.Run(ctx, s); err != nil {
			return fmt.Errorf("seed %s: %w", sd.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Info("seeder finished", zap.String("seeder", sd.Name()))
		}
	}
	return nil
}
