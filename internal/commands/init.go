package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neospend-dev/neospend/internal/config"
	"github.com/neospend-dev/neospend/internal/gitops"
	"github.com/neospend-dev/neospend/internal/kv"
)

func newInitCommand() *cobra.Command {
	var backend string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new neospend project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if !kv.Backend(backend).IsValid() {
				return fmt.Errorf("unsupported storage backend %q (want one of %v)", backend, kv.Backends())
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, kv.Backend(backend), !noGit)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", string(kv.BackendFile), "storage backend: memory, file, bolt or sqlite")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir string, backend kv.Backend, withGit bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default()
	cfg.Storage.Backend = string(backend)

	for _, d := range []string{cfg.Storage.Path, "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := ".env\n*.sqlite-journal\n*.sqlite-wal\n*.xlsx\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "logs", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !withGit {
		fmt.Fprintf(out, "Initialized neospend project at %s\n", dir)
		return nil
	}

	repo := gitops.Repo{Dir: dir, AuthorName: cfg.Git.AuthorName, AuthorEmail: cfg.Git.AuthorEmail}
	if !gitops.IsRepo(dir) {
		if err := repo.Init(ctx, io.Discard); err != nil {
			return err
		}
	}
	hash, err := repo.Commit(ctx, "init: neospend project")
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized neospend project at %s (%s)\n", dir, hash)
	return nil
}
