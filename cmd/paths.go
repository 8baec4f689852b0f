package cmd

import (
	"fmt"

	"github.com/encodeous/routesim/core"
	"github.com/encodeous/routesim/state"
	"github.com/spf13/cobra"
)

// pathsCmd prints the converged tables without running any routers, useful for checking a run
var pathsCmd = &cobra.Command{
	Use:   "paths <topology>",
	Short: "Prints the expected converged routes of every router",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := state.ReadTopology(args[0])
		if err != nil {
			return err
		}
		if err = state.ValidateTopology(topo); err != nil {
			return err
		}
		for h, rs := range core.ReferenceTables(topo) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s\n\n", topo.Name(state.Handle(h)), rs.StringRoutes(topo))
		}
		return nil
	},
	GroupID: "topo",
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
