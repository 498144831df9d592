package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackcensus/pkg/deps"
	"github.com/matzehuels/stackcensus/pkg/job"
	"github.com/matzehuels/stackcensus/pkg/store"
)

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var (
		rowsFile string
		dryRun   bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one census pass and persist the tables",
		Long: `Run one census pass: query the corpus for manifest files, parse each one,
count identical dependency lists per ecosystem and merge the tables into the
collated document in the object store.

Use --rows to read rows from a JSON-lines file instead of BigQuery, and
--dry-run to print the tables without touching storage.`,
		Example: `  stackcensus run
  stackcensus run --rows manifests.jsonl --dry-run
  stackcensus run --rows manifests.jsonl -o tables.json --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			c.registerHooks()
			logger := c.Logger

			backend, err := newCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			validator, err := newValidator(cfg, backend, logger)
			if err != nil {
				return err
			}

			src, closeSrc, err := newQueryClient(ctx, cfg, rowsFile, logger)
			if err != nil {
				return err
			}
			defer closeSrc()

			var blob store.Blob
			if !dryRun {
				if blob, err = newStore(cfg, logger); err != nil {
					return err
				}
				defer blob.Close(ctx)
			}

			j := &job.Job{
				Query:   src,
				Parsers: job.NewParsers(validator, logger),
				Store:   blob,
				Key:     job.Key(cfg.S3.CollatedFilename),
				DryRun:  dryRun,
				Logger:  logger,
			}

			prog := newProgress(logger)
			res, err := j.Run(ctx)
			if err != nil {
				return err
			}
			prog.done("Census pass complete")

			printRunSummary(res)
			if res.Persisted {
				printFile(blob.Location(j.Key))
			}
			if dryRun {
				return writeTables(res, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rowsFile, "rows", "", "read rows from a JSON-lines file instead of BigQuery")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build the tables without persisting them")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write dry-run tables to a file instead of stdout")

	return cmd
}

func printRunSummary(res *job.Result) {
	printSuccess("Processed %s rows, skipped %s",
		StyleNumber.Render(fmt.Sprint(res.Stats.Rows)),
		StyleNumber.Render(fmt.Sprint(res.Stats.Skipped)))
	for _, e := range deps.Ecosystems {
		t := res.Tables.Table(e)
		printKeyValue(e.String(), fmt.Sprintf("%d manifests, %d distinct lists, %d empty",
			res.Stats.Parsed[e], t.Len(), res.Stats.Empty[e]))
	}
}

func writeTables(res *job.Result, path string) error {
	data, err := res.Tables.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')

	if path == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
