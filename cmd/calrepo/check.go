package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/churchcal/calrepo"
	"github.com/churchcal/calrepo/config"
	"github.com/churchcal/calrepo/source/fs"
	"github.com/churchcal/calrepo/watcher"
	"github.com/spf13/cobra"
)

// checkResult summarises one check run.
type checkResult struct {
	total  int
	failed int
	// paths lists the files the run depended on: the definitions file and
	// every file data source of the checked calendars.
	paths []string
}

func (a *app) checkCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check [PATTERN...]",
		Short: "Build calendars and report errors",
		Long: `Builds each calendar whose name matches a glob pattern (all calendars when
none are given) and reports whether it could be constructed. With --watch,
checks are repeated whenever the definitions file or a file data source
changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePatterns(args); err != nil {
				return err
			}
			res, err := a.check(cmd.Context(), args)
			if !watch {
				if err != nil {
					return err
				}
				if res.failed > 0 {
					return fmt.Errorf("%d of %d calendars failed", res.failed, res.total)
				}
				return nil
			}
			if err != nil {
				fmt.Fprintf(a.out, "%s %v\n", errorStyle.Render("✗"), err)
			}
			return a.watch(cmd.Context(), args, res.paths)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run checks when input files change")
	return cmd
}

// validatePatterns checks that every pattern is a valid doublestar glob.
func validatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("invalid calendar pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// selectNames returns the keys matching any pattern, sorted. A pattern
// matching nothing is kept verbatim so the lookup reports it as missing.
func selectNames(keys, patterns []string) []string {
	if len(patterns) == 0 {
		return keys
	}
	var out []string
	for _, pat := range patterns {
		matched := false
		for _, k := range keys {
			if ok, err := doublestar.Match(pat, k); err == nil && ok {
				out = append(out, k)
				matched = true
			}
		}
		if !matched {
			out = append(out, pat)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// check looks up every calendar matching patterns. A non-nil error means
// the definitions themselves could not be loaded.
func (a *app) check(ctx context.Context, patterns []string) (checkResult, error) {
	configPath := a.configPath()
	res := checkResult{paths: []string{configPath}}

	repo, err := calrepo.Load(ctx, configPath, a.dataPath(), calrepo.WithLogger(a.logger))
	if err != nil {
		return res, err
	}
	for _, name := range selectNames(repo.Keys(), patterns) {
		res.total++
		if def, ok := repo.Definition(name); ok {
			for _, spec := range def.Sanctorale {
				if spec.Kind == config.KindFile {
					res.paths = append(res.paths, filepath.Join(a.dataPath(), spec.Path))
				}
			}
		}

		cal, err := repo.Lookup(ctx, name)
		if err != nil {
			res.failed++
			fmt.Fprintf(a.out, "%s %s: %v\n", errorStyle.Render("✗"), nameStyle.Render(name), err)
			continue
		}
		fmt.Fprintf(a.out, "%s %s %s\n", successStyle.Render("✓"), nameStyle.Render(name),
			sourceStyle.Render(fmt.Sprintf("(%d layers, %d days)", len(cal.Sources()), cal.Calendar().Sanctorale().Len())))
	}

	slices.Sort(res.paths)
	res.paths = slices.Compact(res.paths)
	return res, nil
}

// watch re-runs check on every change to paths until ctx is cancelled.
// When a run depends on a different set of files, the watch is rebuilt.
func (a *app) watch(ctx context.Context, patterns []string, paths []string) error {
	for {
		runCtx, cancel := context.WithCancel(ctx)

		var (
			mu   sync.Mutex
			next []string
		)
		handlers := make([]watcher.SubscriptionHandler, len(paths))
		for i, p := range paths {
			handlers[i] = fs.New(p)
		}
		group := watcher.NewGroup(func(ctx context.Context, changed []string) {
			a.logger.Info("change detected", "files", changed)
			res, err := a.check(ctx, patterns)
			if err != nil {
				fmt.Fprintf(a.out, "%s %v\n", errorStyle.Render("✗"), err)
			}
			if !slices.Equal(res.paths, paths) {
				mu.Lock()
				next = res.paths
				mu.Unlock()
				cancel()
			}
		}, handlers, watcher.WithErrorHandler(func(err error) {
			a.logger.Warn("watch error", "error", err)
		}))

		a.logger.Info("watching for changes", "files", len(paths))
		err := group.Run(runCtx)
		cancel()
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		mu.Lock()
		paths = next
		mu.Unlock()
	}
}
