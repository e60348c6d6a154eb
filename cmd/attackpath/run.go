package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	attackpath "github.com/timewinder-dev/attackpath"
	"github.com/timewinder-dev/attackpath/report"
	"github.com/timewinder-dev/attackpath/search"
)

var runCmd = &cobra.Command{
	Use:   "run IN_FILE OUT_FILE",
	Short: "Run a search described by a JSON request and write the JSON response",
	Long: `run reads {"task_filepath": ..., "max_scenarios": N} from IN_FILE, searches
for up to N attack paths and writes {"path_result": [[token, ...], ...]} to
OUT_FILE. Progress is reported as "[#] N" lines and logs as LEVEL:message
lines on stdout, for a supervising process to follow.`,
	Args: cobra.ExactArgs(2),
	Run:  runCommand,
}

func runCommand(cmd *cobra.Command, args []string) {
	inFile, outFile := args[0], args[1]
	progress := &report.LineProgress{Writer: cmd.OutOrStdout()}

	req, err := attackpath.LoadRequestFromFile(inFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load request")
	}
	log.Info().Msgf("STARTED: args=%+v", *req)
	log.Info().Msg("Start searching attack path.")

	result, err := findPaths(context.Background(), searchConfig{
		TaskFile: req.TaskFile,
		Max:      req.MaxScenarios,
		Dedup:    req.Dedup,
		Progress: progress,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error during attack path search")
	}

	resp := &attackpath.Response{
		PathResult: search.Tokens(result.Solutions),
		RunID:      result.RunID,
	}
	if err := attackpath.WriteResponse(outFile, resp); err != nil {
		log.Fatal().Err(err).Msg("Couldn't write response")
	}
	log.Info().Int("paths", len(resp.PathResult)).Msg("Finished searching attack path.")
	progress.SetProgress(report.Complete)
}
