package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/petal-labs/jutge/cli/cachefile"
	"github.com/petal-labs/jutge/cli/config"
	"github.com/petal-labs/jutge/cli/keystore"
	"github.com/petal-labs/jutge/core"
)

// session is the state a command runs with: the client and the keystore
// holding its token.
type session struct {
	client *core.Client
	keys   keystore.Keystore
}

// withSession builds a client from the config and the stored token, runs fn
// and persists the response cache afterwards.
func (a *App) withSession(ctx context.Context, fn func(ctx context.Context, s *session) error) error {
	ks, err := a.newKeystore()
	if err != nil {
		return a.validationError(fmt.Errorf("failed to open keystore: %w", err))
	}

	opts := []core.ClientOption{core.WithLogger(a.logger)}

	token, err := ks.Get(keystore.KeyToken)
	switch {
	case err == nil:
		opts = append(opts, core.WithToken(token))
	case keystore.IsNotFound(err):
	default:
		return a.validationError(fmt.Errorf("failed to read session: %w", err))
	}

	cfg := a.cfg
	if cfg == nil {
		cfg = &config.Config{}
	}
	useCache := cfg.CacheEnabled()
	if useCache {
		opts = append(opts, core.WithClientTTLs(cfg.TTLs()))
	} else {
		opts = append(opts, core.WithoutCache())
	}

	client := core.NewClient(a.newBackend(a.endpointOptions()...), opts...)

	if useCache {
		if err := cachefile.Restore(client.Cache(), a.cachePath); err != nil {
			a.logger.Warn("cache restore failed", zap.String("path", a.cachePath), zap.Error(err))
		}
		defer func() {
			if err := cachefile.Persist(client.Cache(), a.cachePath); err != nil {
				a.logger.Error("cache write failed", zap.String("path", a.cachePath), zap.Error(err))
			}
		}()
	}

	return fn(ctx, &session{client: client, keys: ks})
}
