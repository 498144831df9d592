package query

import (
	"context"
	"iter"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/charmbracelet/log"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/matzehuels/stackcensus/pkg/errors"
)

// BigQueryConfig configures a [BigQuery] client.
type BigQueryConfig struct {
	// ProjectID bills the query. Empty means detect it from the credentials.
	ProjectID string
	// CredentialsFile is a service account key. Empty means application
	// default credentials.
	CredentialsFile string
	// Location pins the job region, e.g. "US".
	Location string
}

// BigQuery runs queries on Google BigQuery.
type BigQuery struct {
	client   *bigquery.Client
	location string
	logger   *log.Logger
}

// NewBigQuery connects a BigQuery client.
func NewBigQuery(ctx context.Context, cfg BigQueryConfig, logger *log.Logger) (*BigQuery, error) {
	if logger == nil {
		logger = log.Default()
	}
	project := cfg.ProjectID
	if project == "" {
		project = bigquery.DetectProjectID
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		logger.Debug("using bigquery credentials file", "path", cfg.CredentialsFile)
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeClientUnavailable, err, "create bigquery client")
	}
	return &BigQuery{client: client, location: cfg.Location, logger: logger}, nil
}

// Submit starts sql as a standard SQL query with the query cache enabled.
func (b *BigQuery) Submit(ctx context.Context, sql string) (*Handle, error) {
	if b == nil || b.client == nil || blank(sql) {
		return nil, errClientUnavailable()
	}

	q := b.client.Query(sql)
	q.UseLegacySQL = false
	q.DisableQueryCache = false
	if b.location != "" {
		q.Location = b.location
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "submit bigquery job")
	}
	b.logger.Info("submitted bigquery job", "job", job.ID())
	return &Handle{ID: job.ID(), SQL: sql, SubmittedAt: time.Now(), job: job}, nil
}

// Results waits for the job and streams its rows.
func (b *BigQuery) Results(ctx context.Context, h *Handle) (iter.Seq2[Row, error], error) {
	if h == nil || h.job == nil {
		return nil, errJobNotInitialized()
	}

	it, err := h.job.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read bigquery job %s", h.ID)
	}

	return func(yield func(Row, error) bool) {
		for {
			var r bigqueryRow
			err := it.Next(&r)
			if err == iterator.Done {
				return
			}
			if err != nil {
				yield(Row{}, errors.Wrap(errors.ErrCodeNetwork, err, "read bigquery row"))
				return
			}
			if !yield(Row{Path: r.Path.StringVal, Content: r.Content.StringVal}, nil) {
				return
			}
		}
	}, nil
}

// Close releases the client.
func (b *BigQuery) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}

type bigqueryRow struct {
	Path    bigquery.NullString `bigquery:"path"`
	Content bigquery.NullString `bigquery:"content"`
}
