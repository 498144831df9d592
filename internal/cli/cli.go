// Package cli implements the stackcensus command-line interface.
//
// Commands:
//   - run: one census pass, BigQuery (or a rows file) into the object store
//   - parse: parse local manifests and print their table keys
//   - show: print the most common dependency lists from the persisted document
//   - query: print the corpus SQL
//   - config: print the effective configuration
//   - cache: manage the registry response cache
//
// All commands accept --verbose (-v) for debug logging, --config for a TOML
// file and --env-file for a dotenv file.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackcensus/pkg/buildinfo"
	"github.com/matzehuels/stackcensus/pkg/config"
	"github.com/matzehuels/stackcensus/pkg/observability"
)

const appName = "stackcensus"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	envFile    string
	verbose    bool
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stackcensus counts which dependency lists open source projects declare",
		Long: `Stackcensus queries a public code corpus for pom.xml, package.json and
requirements.txt files, extracts each manifest's dependencies and counts how often
each exact dependency list occurs per ecosystem. The tables are merged into a JSON
document in an object store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "TOML config file")
	flags.StringVar(&c.envFile, "env-file", "", "dotenv file (default .env when present)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// loadConfig loads configuration and applies its log level unless
// --verbose already forced debug.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Options{File: c.configFile, EnvFile: c.envFile})
	if err != nil {
		return nil, err
	}
	if !c.verbose {
		if level, err := parseLevel(cfg.LogLevel); err == nil {
			c.SetLogLevel(level)
		} else {
			c.Logger.Warn("ignoring log level", "value", cfg.LogLevel, "err", err)
		}
	}
	return cfg, nil
}

// registerHooks routes library events to the debug log.
func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetJobHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
