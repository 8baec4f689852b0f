package cmd

import (
	"fmt"

	"github.com/encodeous/routesim/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <topology>",
	Short: "Checks that a topology is well formed and connected",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := state.ReadTopology(args[0])
		if err != nil {
			return err
		}
		err = state.ValidateTopology(topo)
		if err != nil {
			return err
		}

		cfgYaml, err := yaml.Marshal(topo.Config())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Topology is valid: %d routers, %d links\n", topo.Len(), len(topo.Edges))
		fmt.Fprint(cmd.OutOrStdout(), string(cfgYaml))
		return nil
	},
	GroupID: "topo",
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
