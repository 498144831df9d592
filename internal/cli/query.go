package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackcensus/pkg/deps"
	"github.com/matzehuels/stackcensus/pkg/query"
)

// queryCommand creates the query command.
func (c *CLI) queryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Print the SQL a census pass submits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(query.ManifestSQL(deps.Maven.Manifest(), deps.NPM.Manifest(), deps.PyPI.Manifest()))
			return nil
		},
	}
}
