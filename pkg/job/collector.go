package job

import (
	"context"
	"maps"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackcensus/pkg/aggregate"
	"github.com/matzehuels/stackcensus/pkg/deps"
	"github.com/matzehuels/stackcensus/pkg/observability"
	"github.com/matzehuels/stackcensus/pkg/query"
)

// Skip reasons passed to observability hooks.
const (
	SkipMissingField = "missing path or content"
	SkipUnclassified = "no matching ecosystem"
)

// Collector routes rows to parsers and counts the results. Create one per
// pass; it is not safe for concurrent use.
type Collector struct {
	Parsers deps.Parsers
	Logger  *log.Logger

	tables *aggregate.Collated
	stats  Stats
}

// Collect classifies, parses and counts one row. Unusable rows are logged
// and skipped.
func (c *Collector) Collect(ctx context.Context, row query.Row) {
	c.init()
	c.stats.Rows++
	hooks := observability.Job()

	if row.Path == "" || row.Content == "" {
		c.Logger.Warn("either path or content is empty", "path", row.Path, "content_bytes", len(row.Content))
		c.stats.Skipped++
		hooks.OnRowSkipped(ctx, row.Path, SkipMissingField)
		return
	}

	eco, ok := deps.Classify(row.Path)
	if !ok {
		c.Logger.Warn("could not find ecosystem for path", "path", row.Path)
		c.stats.Skipped++
		hooks.OnRowSkipped(ctx, row.Path, SkipUnclassified)
		return
	}

	start := time.Now()
	ids := c.Parsers[eco].Parse(ctx, []byte(row.Content), true)
	hooks.OnManifestParsed(ctx, eco.String(), row.Path, len(ids), time.Since(start))

	c.stats.Parsed[eco]++
	if len(ids) == 0 {
		c.stats.Empty[eco]++
	}
	c.tables.Add(eco, ids)
}

// Tables returns the tables built so far.
func (c *Collector) Tables() *aggregate.Collated {
	c.init()
	return c.tables
}

// Stats returns a copy of the counters so far.
func (c *Collector) Stats() Stats {
	c.init()
	s := c.stats
	s.Parsed = maps.Clone(c.stats.Parsed)
	s.Empty = maps.Clone(c.stats.Empty)
	return s
}

func (c *Collector) init() {
	if c.tables != nil {
		return
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	c.tables = aggregate.NewCollated()
	c.stats.Parsed = make(map[deps.Ecosystem]int)
	c.stats.Empty = make(map[deps.Ecosystem]int)
}
