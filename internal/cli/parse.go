package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackcensus/pkg/aggregate"
	"github.com/matzehuels/stackcensus/pkg/deps"
	"github.com/matzehuels/stackcensus/pkg/deps/python"
	"github.com/matzehuels/stackcensus/pkg/job"
)

type parsedManifest struct {
	Path      string   `json:"path"`
	Ecosystem string   `json:"ecosystem"`
	Deps      []string `json:"dependencies"`
	Key       string   `json:"key"`
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		validate bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "parse <manifest>...",
		Short: "Parse local manifest files",
		Long: `Parse pom.xml, package.json or requirements.txt files the same way a census
pass does and print each file's dependencies and table key.

PyPI names are only checked against the registry with --validate.`,
		Example: `  stackcensus parse pom.xml
  stackcensus parse --validate services/*/requirements.txt
  stackcensus parse --json package.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var validator python.Validator
			if validate {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				c.registerHooks()
				backend, err := newCache(ctx, cfg)
				if err != nil {
					return err
				}
				defer backend.Close()
				if validator, err = newValidator(cfg, backend, c.Logger); err != nil {
					return err
				}
			}
			parsers := job.NewParsers(validator, c.Logger)

			var results []parsedManifest
			for _, path := range args {
				eco, err := deps.DetectManifest(path)
				if err != nil {
					return err
				}
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				ids := parsers[eco].Parse(ctx, content, validate)
				results = append(results, parsedManifest{
					Path:      path,
					Ecosystem: eco.String(),
					Deps:      ids,
					Key:       aggregate.Key(ids),
				})
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(results)
			}
			for _, r := range results {
				printParsed(r)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "check PyPI names against the configured validator")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

func printParsed(r parsedManifest) {
	if len(r.Deps) == 0 {
		printWarning("%s (%s): no dependencies", r.Path, r.Ecosystem)
		return
	}
	printInfo("%s %s", StyleHighlight.Render(r.Path), StyleDim.Render("("+r.Ecosystem+")"))
	printKeyValue("deps", fmt.Sprint(len(r.Deps)))
	printKeyValue("key", r.Key)
}
