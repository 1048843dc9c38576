package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"tableflip.dev/clinic/pkg/app"
	"tableflip.dev/clinic/pkg/backend/pocketbase"
	"tableflip.dev/clinic/pkg/config"
	"tableflip.dev/clinic/pkg/logging"
	"tableflip.dev/clinic/pkg/printers"
	"tableflip.dev/clinic/pkg/store"
	"tableflip.dev/clinic/pkg/viewstate"
)

// env is what every command needs once configuration is resolved.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
	svc    *app.Service
	store  *viewstate.Store
}

// setup loads the configuration and connects to the configured source.
// interactive routes logs away from the terminal unless a log file is set.
func setup(ctx context.Context, interactive bool) (*env, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	log, closer, err := logging.New(cfg.Log, interactive)
	if err != nil {
		return nil, err
	}

	cache, err := store.Load(cfg, log.With().Str("component", "store").Logger())
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	svc := &app.Service{Cache: cache, Log: log}

	switch cfg.Source {
	case config.SourcePocketBase:
		c := pocketbase.New(cfg.PocketBase.URL, cfg.Timeout, log.With().Str("component", "pocketbase").Logger())
		c.PerPage = cfg.PocketBase.PerPage
		c.Token = cfg.PocketBase.Token
		if c.Token == "" && cfg.PocketBase.Email != "" {
			lctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			err := c.Login(lctx, cfg.PocketBase.Email, cfg.PocketBase.Password)
			cancel()
			if err != nil {
				_ = closer.Close()
				return nil, err
			}
		}
		svc.Source = c
	default:
		svc.Source = cache
	}

	log.Debug().Str("source", cfg.Source).Str("path", cfg.Path).Msg("configured")
	return &env{
		cfg:    cfg,
		log:    log,
		closer: closer,
		svc:    svc,
		store:  viewstate.New(),
	}, nil
}

func (e *env) Close() {
	_ = e.closer.Close()
}

func (e *env) printer(showID bool) *printers.PrettyPrint {
	return &printers.PrettyPrint{
		ShowID: showID,
		Format: e.store.Formatter(),
	}
}
