package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/attackpath/report"
	"github.com/timewinder-dev/attackpath/search"
)

var (
	maxPaths     int
	dedupFlag    string
	maxDepthFlag int
	timeoutFlag  time.Duration
	cacheSize    int
	debugFlag    bool
	detailsFlag  bool
	jsonFlag     bool
	progressFlag bool
)

var solveCmd = &cobra.Command{
	Use:   "solve TASKFILE",
	Short: "Find attack paths for a task file (.toml, .yaml or .star)",
	Args:  cobra.ExactArgs(1),
	Run:   solveCommand,
}

func init() {
	solveCmd.Flags().IntVar(&maxPaths, "max", 10, "Maximum number of attack paths to report")
	solveCmd.Flags().StringVar(&dedupFlag, "dedup", "path", "Duplicate detection: path (prune cycles on the current path) or global (also prune states seen on other branches; finds fewer paths)")
	solveCmd.Flags().IntVar(&maxDepthFlag, "max-depth", 0, "Do not expand nodes at this depth (0 = unbounded)")
	solveCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Give up after this long and report the paths found so far (0 = no limit)")
	solveCmd.Flags().IntVar(&cacheSize, "cache-size", 0, "Number of states kept in the read cache used by --details")
	solveCmd.Flags().BoolVar(&debugFlag, "debug", false, "Print every node the search dequeues")
	solveCmd.Flags().BoolVar(&detailsFlag, "details", false, "Show the state reached after each step")
	solveCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the token lists as JSON on stdout")
	solveCmd.Flags().BoolVar(&progressFlag, "progress", false, "Print [#] progress lines on stdout")
}

func solveCommand(cmd *cobra.Command, args []string) {
	cfg := searchConfig{
		TaskFile:  args[0],
		Max:       maxPaths,
		Dedup:     dedupFlag,
		MaxDepth:  maxDepthFlag,
		Timeout:   timeoutFlag,
		CacheSize: cacheSize,
	}
	if debugFlag {
		cfg.Debug = os.Stderr
	}
	var progress report.Progress = report.Silent{}
	if progressFlag {
		progress = &report.LineProgress{Writer: os.Stdout}
	}
	cfg.Progress = progress

	if !jsonFlag {
		fmt.Fprintln(os.Stderr, color.Cyan.Sprint("Searching for attack paths..."))
	}

	result, err := findPaths(context.Background(), cfg)
	if err != nil {
		if result == nil {
			log.Fatal().Err(err).Msg("Search failed")
		}
		log.Warn().Err(err).Int("found", len(result.Solutions)).Msg("Search interrupted, reporting partial result")
	}

	if jsonFlag {
		b, err := json.Marshal(search.Tokens(result.Solutions))
		if err != nil {
			log.Fatal().Err(err).Msg("can't serialize")
		}
		fmt.Println(string(b))
	} else {
		fmt.Fprint(os.Stderr, search.FormatResult(result, detailsFlag))
		fmt.Fprint(os.Stderr, search.FormatStatistics(result.Stats))
		if result.Exhausted {
			fmt.Fprintln(os.Stderr, color.Gray.Sprint("Search space exhausted."))
		}
	}
	progress.SetProgress(report.Complete)
}
