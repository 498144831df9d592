// Package query submits the manifest corpus query and streams its rows.
//
// A [Client] runs in two steps. Submit starts a query and returns a
// [Handle]; Results turns the handle into a lazy row sequence. Rows are
// pulled one at a time so the job never holds the corpus in memory.
//
// Implementations:
//
//   - [BigQuery]: Google BigQuery, standard SQL with the query cache on
//   - [FileSource]: a JSON-lines file of rows, for local runs and fixtures
package query

import (
	"context"
	"iter"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/matzehuels/stackcensus/pkg/errors"
)

// Row is one manifest file from the corpus. Missing or NULL columns are
// empty strings.
type Row struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Handle identifies a submitted query.
type Handle struct {
	ID          string
	SQL         string
	SubmittedAt time.Time

	job *bigquery.Job
}

// Client runs queries and streams their rows.
type Client interface {
	// Submit starts sql. It fails with [errors.ErrCodeClientUnavailable] when
	// the client is not usable or sql is empty.
	Submit(ctx context.Context, sql string) (*Handle, error)

	// Results returns the rows of a submitted query. It fails with
	// [errors.ErrCodeJobNotInitialized] for a nil handle. Errors that occur
	// while iterating are yielded with a zero Row and end the sequence.
	Results(ctx context.Context, h *Handle) (iter.Seq2[Row, error], error)
}

func errClientUnavailable() error {
	return errors.New(errors.ErrCodeClientUnavailable, "client or query missing")
}

func errJobNotInitialized() error {
	return errors.New(errors.ErrCodeJobNotInitialized, "job is not initialized")
}

func blank(sql string) bool { return strings.TrimSpace(sql) == "" }
