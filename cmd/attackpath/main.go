package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/attackpath/report"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "attackpath",
	Short: "Search a modeled network for multi-step attack paths",
	Long: `attackpath treats attacker progress as a planning problem: facts describe
what the attacker knows and controls, operators describe exploits and pivots,
and a breadth-first search lists the action sequences that reach the goal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

		format := logFormat
		if format == "auto" {
			format = "console"
			if cmd.Name() == runCmd.Name() {
				format = "lines"
			}
		}
		switch format {
		case "lines":
			log.Logger = zerolog.New(report.LineWriter{Out: os.Stdout})
		case "console":
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		default:
			fmt.Fprintf(os.Stderr, "Invalid log format '%s', using 'console'\n", logFormat)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}

		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'\n", logLevel)
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto", "Log output: console, lines (LEVEL:message on stdout) or auto")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
