package answers

import (
	"context"
	"fmt"

	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
)

// Open builds the store selected by cfg.Kind, wrapped with metrics.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Kind {
	case "memory":
		s = NewMemoryStore()
	case "file":
		s, err = NewFileStore(cfg.Path)
	case "valkey":
		s, err = NewValkeyStore(cfg.ValkeyAddr)
	case "postgres":
		s, err = NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Kind, err)
	}
	return WithMetrics(s, cfg.Kind), nil
}
