package search

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/timewinder-dev/attackpath/cas"
	"github.com/timewinder-dev/attackpath/report"
)

var tracer = otel.Tracer("github.com/timewinder-dev/attackpath/search")

// Result is what one collection run produced.
type Result struct {
	RunID     string
	Solutions []Solution
	Stats     Stats
	// Exhausted is true when the search ran out of frontier rather than
	// stopping at the requested maximum.
	Exhausted bool
	Store     cas.CAS
}

// Collect pulls at most limit solutions from s, in discovery order. A limit of
// zero or less collects nothing. Progress is set to report.CollectDone once
// collection finishes. If ctx is cancelled the solutions found so far are
// returned together with the context error.
func Collect(ctx context.Context, s *Searcher, limit int, progress report.Progress) (*Result, error) {
	res := &Result{
		RunID: uuid.NewString(),
		Store: s.Store(),
	}
	ctx, span := tracer.Start(ctx, "search.Collect", trace.WithAttributes(
		attribute.String("attackpath.run_id", res.RunID),
		attribute.Int("attackpath.max_solutions", limit),
	))
	defer span.End()

	logger := log.With().Str("run_id", res.RunID).Logger()
	logger.Debug().Int("max", limit).Msg("Start searching attack path")

	var err error
	for len(res.Solutions) < limit {
		sol, ok, nerr := s.NextContext(ctx)
		if nerr != nil {
			err = nerr
			break
		}
		if !ok {
			res.Exhausted = true
			break
		}
		logger.Debug().Int("depth", sol.Len()).Msgf("Found path %d: %s", len(res.Solutions)+1, sol)
		res.Solutions = append(res.Solutions, sol)
	}
	res.Stats = s.Stats()

	span.SetAttributes(
		attribute.Int("attackpath.solutions", len(res.Solutions)),
		attribute.Bool("attackpath.exhausted", res.Exhausted),
		attribute.Int("attackpath.expanded", res.Stats.Expanded),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn().Err(err).Int("found", len(res.Solutions)).Msg("Search stopped early")
		return res, err
	}
	span.SetStatus(codes.Ok, "")

	if progress != nil {
		progress.SetProgress(report.CollectDone)
	}
	logger.Debug().
		Int("found", len(res.Solutions)).
		Bool("exhausted", res.Exhausted).
		Msg("Finish searching attack path")
	return res, nil
}
