package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neospend-dev/neospend/internal/activity"
	"github.com/neospend-dev/neospend/internal/categories"
	"github.com/neospend-dev/neospend/internal/config"
	"github.com/neospend-dev/neospend/internal/entry"
	"github.com/neospend-dev/neospend/internal/gitops"
	"github.com/neospend-dev/neospend/internal/id"
	"github.com/neospend-dev/neospend/internal/kv"
	"github.com/neospend-dev/neospend/internal/logging"
	"github.com/neospend-dev/neospend/internal/model"
	"github.com/neospend-dev/neospend/internal/storage"
	"github.com/neospend-dev/neospend/internal/store"
)

// globals holds persistent flags shared by every subcommand.
type globals struct {
	dir string
}

// app is an opened project: config, storage and the store on top of it.
type app struct {
	dir      string
	cfg      *config.Config
	kv       kv.Store
	store    *store.Store
	cats     *categories.Set
	form     *entry.Form
	recorder *activity.Recorder
}

func openApp(cmd *cobra.Command, g *globals) (*app, error) {
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if err := config.LoadEnvFile(dir); err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no neospend project in %s (run neospend init)", dir)
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	lc, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	lc.Output = cmd.ErrOrStderr()
	logger := logging.New(lc)
	logging.SetDefault(logger)
	cmd.SetContext(logging.IntoContext(cmd.Context(), logger))

	kvs, err := kv.Open(kv.Options{
		Backend: kv.Backend(cfg.Storage.Backend),
		Path:    cfg.StoragePath(dir),
	})
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	repo := storage.NewRepository(kvs, storage.WithKey(cfg.Storage.Key), storage.WithLogger(logger))
	attrs := []any{"backend", cfg.Storage.Backend, "key", repo.Key()}
	if v, ok := kvs.(interface{ SchemaVersion() uint }); ok {
		attrs = append(attrs, "schema", v.SchemaVersion())
	}
	logger.Debug("storage opened", attrs...)
	st := store.Open(cmd.Context(), repo, store.WithLogger(logger))
	cats := categories.NewSet(cfg.Categories)

	rec := activity.NewRecorder(dir)
	st.Subscribe(rec.Observe)

	return &app{
		dir:      dir,
		cfg:      cfg,
		kv:       kvs,
		store:    st,
		cats:     cats,
		form:     entry.NewForm(cats),
		recorder: rec,
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// finish writes pending activity and, when enabled, commits the project.
func (a *app) finish(ctx context.Context, message string) error {
	if err := a.recorder.Flush(); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}
	if !a.cfg.Git.AutoCommit || !gitops.IsRepo(a.dir) {
		return nil
	}

	repo := gitops.Repo{Dir: a.dir, AuthorName: a.cfg.Git.AuthorName, AuthorEmail: a.cfg.Git.AuthorEmail}
	hash, err := repo.Commit(ctx, message)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		return nil
	}
	log := logging.FromContext(ctx).WithComponent("git")
	if err != nil {
		log.Warn("auto-commit failed", "error", err)
		return nil
	}
	log.Debug("committed", "hash", hash)
	return nil
}

// selection validates the --category and --month flags.
func (a *app) selection(category, month string) (model.Selection, error) {
	sel := model.Selection{Category: model.AllCategories, Month: model.AllMonths}

	if c := strings.TrimSpace(category); c != "" && c != model.AllCategories {
		resolved, err := a.cats.Resolve(c)
		if err != nil {
			return sel, err
		}
		sel.Category = resolved
	}

	if m := strings.TrimSpace(month); m != "" && m != model.AllMonths {
		if _, _, err := id.ParseMonthKey(m); err != nil {
			return sel, err
		}
		sel.Month = m
	}

	a.store.Select(sel)
	return sel, nil
}

func addSelectionFlags(cmd *cobra.Command, category, month *string) {
	cmd.Flags().StringVar(category, "category", model.AllCategories, "show only this category")
	cmd.Flags().StringVar(month, "month", model.AllMonths, "show only this month (YYYY-MM)")
}
