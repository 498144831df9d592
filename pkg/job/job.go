// Package job runs one census pass: query the corpus, parse each manifest,
// count identical dependency lists per ecosystem and merge the tables into
// the persisted document.
//
// A pass is all or nothing on the storage side. Rows that cannot be used
// are logged and skipped, but storage is only touched after the last row,
// and a failed query or storage step fails the whole pass.
package job

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stackcensus/pkg/aggregate"
	"github.com/matzehuels/stackcensus/pkg/deps"
	"github.com/matzehuels/stackcensus/pkg/deps/java"
	"github.com/matzehuels/stackcensus/pkg/deps/javascript"
	"github.com/matzehuels/stackcensus/pkg/deps/python"
	"github.com/matzehuels/stackcensus/pkg/errors"
	"github.com/matzehuels/stackcensus/pkg/observability"
	"github.com/matzehuels/stackcensus/pkg/query"
	"github.com/matzehuels/stackcensus/pkg/store"
)

// KeyPrefix is the folder the collated document lives under.
const KeyPrefix = "big-query-data"

// DefaultFilename is the collated document name when none is configured.
const DefaultFilename = "collated.json"

// Key returns the object key for filename.
func Key(filename string) string {
	if filename == "" {
		filename = DefaultFilename
	}
	return path.Join(KeyPrefix, filename)
}

// NewParsers builds the standard parser set. validator filters PyPI names
// and may be nil to keep every well-formed name.
func NewParsers(validator python.Validator, logger *log.Logger) deps.Parsers {
	return deps.Parsers{
		deps.Maven: java.NewPOMParser(logger),
		deps.NPM:   javascript.NewPackageJSON(logger),
		deps.PyPI:  python.NewRequirements(validator, logger),
	}
}

// Job is one configured census pass. Fields are read-only once Run starts.
type Job struct {
	Query   query.Client
	Parsers deps.Parsers
	Store   store.Blob
	Key     string

	// SQL overrides the corpus query. Empty means [query.ManifestSQL] for
	// the supported manifests.
	SQL string

	// DryRun skips persistence; the tables are still built and returned.
	DryRun bool

	Logger *log.Logger
}

// Stats summarizes a pass.
type Stats struct {
	Rows     int
	Skipped  int
	Parsed   map[deps.Ecosystem]int
	Empty    map[deps.Ecosystem]int
	Duration time.Duration
}

// Result is the outcome of a successful pass.
type Result struct {
	RunID     string
	JobID     string
	Tables    *aggregate.Collated
	Stats     Stats
	Persisted bool
}

// Run executes the pass.
func (j *Job) Run(ctx context.Context) (*Result, error) {
	if err := j.validate(); err != nil {
		return nil, err
	}
	logger := j.logger()
	hooks := observability.Job()

	runID := uuid.NewString()
	start := time.Now()
	hooks.OnRunStart(ctx, runID)
	logger = logger.With("run", runID[:8])

	res, err := j.run(ctx, runID, logger)
	rows := 0
	if res != nil {
		res.Stats.Duration = time.Since(start)
		rows = res.Stats.Rows
	}
	hooks.OnRunComplete(ctx, runID, rows, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	logger.Info("census pass finished",
		"rows", res.Stats.Rows,
		"skipped", res.Stats.Skipped,
		"persisted", res.Persisted,
		"duration", res.Stats.Duration)
	return res, nil
}

func (j *Job) run(ctx context.Context, runID string, logger *log.Logger) (*Result, error) {
	sql := j.SQL
	if sql == "" {
		sql = query.ManifestSQL(deps.Maven.Manifest(), deps.NPM.Manifest(), deps.PyPI.Manifest())
	}

	handle, err := j.Query.Submit(ctx, sql)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, errors.New(errors.ErrCodeJobNotInitialized, "job is not initialized")
	}
	logger.Info("query submitted", "job", handle.ID)

	rows, err := j.Query.Results(ctx, handle)
	if err != nil {
		return nil, err
	}

	c := &Collector{Parsers: j.Parsers, Logger: logger}
	parseStart := time.Now()
	for row, err := range rows {
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeReadFailure
			}
			return nil, errors.Wrap(code, err, "read query results after %d rows", c.Stats().Rows)
		}
		c.Collect(ctx, row)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stats := c.Stats()
	logger.Info(fmt.Sprintf("processed %d manifests", stats.Rows), "duration", time.Since(parseStart))

	res := &Result{RunID: runID, JobID: handle.ID, Tables: c.Tables(), Stats: stats}
	if j.DryRun {
		logger.Info("dry run, not persisting", "key", j.Key)
		return res, nil
	}

	if err := j.persist(ctx, res.Tables, logger); err != nil {
		return nil, err
	}
	res.Persisted = true
	return res, nil
}

func (j *Job) persist(ctx context.Context, tables *aggregate.Collated, logger *log.Logger) error {
	sections, err := tables.Sections()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode tables")
	}

	logger.Info("updating collated document", "location", j.Store.Location(j.Key))
	start := time.Now()
	err = store.Update(ctx, j.Store, j.Key, sections)
	observability.Job().OnPersist(ctx, j.Key, time.Since(start), err)
	return err
}

func (j *Job) validate() error {
	if j.Query == nil {
		return errors.New(errors.ErrCodeClientUnavailable, "client or query missing")
	}
	if err := j.Parsers.Check(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsers")
	}
	if j.DryRun {
		return nil
	}
	if j.Store == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "no store configured")
	}
	return errors.ValidateObjectKey(j.Key)
}

func (j *Job) logger() *log.Logger {
	if j.Logger == nil {
		return log.Default()
	}
	return j.Logger
}
