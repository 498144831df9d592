package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackcensus/pkg/aggregate"
	"github.com/matzehuels/stackcensus/pkg/deps"
	"github.com/matzehuels/stackcensus/pkg/errors"
	"github.com/matzehuels/stackcensus/pkg/job"
	"github.com/matzehuels/stackcensus/pkg/store"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		top       int
		ecosystem string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the most common dependency lists from the collated document",
		Example: `  stackcensus show
  stackcensus show --ecosystem pypi --top 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			ecosystems := deps.Ecosystems
			if ecosystem != "" {
				e, err := deps.ParseEcosystem(ecosystem)
				if err != nil {
					return err
				}
				ecosystems = []deps.Ecosystem{e}
			}

			blob, err := newStore(cfg, c.Logger)
			if err != nil {
				return err
			}
			defer blob.Close(ctx)

			key := job.Key(cfg.S3.CollatedFilename)
			if err := blob.Connect(ctx); err != nil {
				return errors.Wrap(errors.ErrCodeConnectFailure, err, "connect to %s", blob.Location(key))
			}
			doc, err := store.Read(ctx, blob, key)
			if err != nil {
				return err
			}
			if len(doc) == 0 {
				printInfo("Nothing persisted at %s yet", blob.Location(key))
				return nil
			}

			for i, e := range ecosystems {
				if i > 0 {
					printNewline()
				}
				if err := showSection(e, doc[e.String()], top); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 10, "rows per ecosystem")
	cmd.Flags().StringVarP(&ecosystem, "ecosystem", "e", "", "only show one ecosystem (maven, npm, pypi)")

	return cmd
}

func showSection(e deps.Ecosystem, raw json.RawMessage, top int) error {
	if raw == nil {
		printWarning("%s: no table", e)
		return nil
	}
	var t aggregate.Table
	if err := t.UnmarshalJSON(raw); err != nil {
		return errors.Wrap(errors.ErrCodeReadFailure, err, "decode %s table", e)
	}

	printSection(e.String(), t.Len(), t.Total())
	for i, entry := range t.Top(top) {
		printRankedRow(i+1, entry.Count, entry.Key)
	}
	if rest := t.Len() - top; top > 0 && rest > 0 {
		printDetail("… %d more", rest)
	}
	return nil
}
