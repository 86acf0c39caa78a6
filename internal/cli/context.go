package cli

import (
	"context"

	"github.com/thenoetrevino/pipeboard/internal/app"
	"github.com/thenoetrevino/pipeboard/internal/config"
)

type contextKey string

const appKey contextKey = "app"

// WithApp returns a context carrying an already constructed App.
// Commands run with this context use it instead of opening the configured database.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// GetCLIFromContext returns a CLI backed by the App stored in ctx, or
// initializes a fresh one from the user's configuration.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
			return &CLI{App: a, Config: config.Default()}, nil
		}
	} else {
		ctx = context.Background()
	}
	return NewCLI(ctx)
}
