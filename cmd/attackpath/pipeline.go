package main

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/attackpath/cas"
	"github.com/timewinder-dev/attackpath/loader"
	"github.com/timewinder-dev/attackpath/report"
	"github.com/timewinder-dev/attackpath/search"
)

type searchConfig struct {
	TaskFile  string
	Max       int
	Dedup     string
	MaxDepth  int
	Timeout   time.Duration
	CacheSize int
	Debug     io.Writer
	Progress  report.Progress
}

// findPaths loads the task, runs the search and collects up to cfg.Max paths.
func findPaths(ctx context.Context, cfg searchConfig) (*search.Result, error) {
	dedup, err := search.ParseDedup(cfg.Dedup)
	if err != nil {
		return nil, err
	}
	if dedup == search.DedupGlobal {
		log.Warn().Msg("Global duplicate detection prunes paths that merge into an already visited state")
	}

	task, err := loader.LoadTaskFromFile(cfg.TaskFile)
	if err != nil {
		return nil, err
	}

	if cfg.Debug == nil {
		cfg.Debug = io.Discard
	}
	store := cas.NewLRUCache(cas.NewMemoryCAS(), cfg.CacheSize)
	s, err := search.New(task,
		search.WithDedup(dedup),
		search.WithStore(store),
		search.WithMaxDepth(cfg.MaxDepth),
		search.WithDebugWriter(cfg.Debug),
	)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return search.Collect(ctx, s, cfg.Max, cfg.Progress)
}
