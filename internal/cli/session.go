package cli

import (
	"path/filepath"
	"time"

	"github.com/nightrate/nightrate/internal/backend"
	"github.com/nightrate/nightrate/internal/config"
	"github.com/nightrate/nightrate/internal/store"
)

// session ties one command invocation together: behavior config, the secure
// store, and a backend client primed with whatever the store holds.
type session struct {
	cfg    config.Config
	store  *store.Store
	client *backend.Client
}

func (s *session) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func storePath(stateOverride string) (string, error) {
	dir, err := config.StateDir(stateOverride)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nightrate.db"), nil
}

func (a App) newSession(g globalFlags) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, wrapExitError(ExitGenericFailure, err)
	}
	path, err := storePath(g.StateDir)
	if err != nil {
		return nil, wrapExitError(ExitGenericFailure, err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, wrapExitError(ExitGenericFailure, err)
	}

	client := &backend.Client{
		Resolver: &backend.Resolver{
			Candidates: cfg.BackendURLs,
			Timeout:    time.Duration(cfg.ProbeTimeoutSec) * time.Second,
		},
		Timeout:    time.Duration(cfg.RequestTimeoutSec) * time.Second,
		PMS:        cfg.PMS,
		Model:      cfg.Model,
		ChunkDelay: time.Duration(cfg.ChunkDelayMS) * time.Millisecond,
	}

	apiCfg, ok, err := st.LoadAPIConfig()
	if err != nil {
		st.Close()
		return nil, wrapExitError(ExitGenericFailure, err)
	}
	if ok {
		client.APIKey = apiCfg.PriceLabs.APIKey
		if apiCfg.PriceLabs.PMS != "" {
			client.PMS = apiCfg.PriceLabs.PMS
		}
	}
	if prop, ok, err := st.LoadSelectedProperty(); err == nil && ok {
		client.Property = &prop
	}
	if pctx, ok, err := st.LoadPropertyContext(); err == nil && ok {
		client.Context = &pctx
	}

	return &session{cfg: cfg, store: st, client: client}, nil
}
