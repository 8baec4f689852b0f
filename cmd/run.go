package cmd

import (
	"os"

	"github.com/encodeous/routesim/core"
	"github.com/encodeous/routesim/state"
	"github.com/spf13/cobra"
)

var configPath string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a routing simulation",
	Long: `Loads a topology and runs the chosen routing engine until every router has converged.
Flags take precedence over values read from --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := state.DefaultSimConfig()
		if configPath != "" {
			read, err := state.ReadSimConfig(configPath)
			if err != nil {
				return err
			}
			cfg = *read
		}

		flags := cmd.Flags()
		if flags.Changed("topology") {
			cfg.Topology, _ = flags.GetString("topology")
		}
		if len(args) > 0 {
			cfg.Topology = args[0]
		}
		if flags.Changed("engine") {
			cfg.Engine, _ = flags.GetString("engine")
		}
		if flags.Changed("delay") {
			cfg.RoundDelay, _ = flags.GetDuration("delay")
		}
		if flags.Changed("log-path") {
			cfg.LogPath, _ = flags.GetString("log-path")
		}
		if flags.Changed("debug-addr") {
			cfg.DebugAddr, _ = flags.GetString("debug-addr")
		}
		if flags.Changed("verbose") {
			cfg.Verbose, _ = flags.GetBool("verbose")
		}
		if flags.Changed("quiet") {
			cfg.Quiet, _ = flags.GetBool("quiet")
		}

		return core.Bootstrap(cfg, os.Stdout)
	},
	Args:    cobra.MaximumNArgs(1),
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a simulation config")
	runCmd.Flags().StringP("topology", "t", "", "Path to the topology file (text or yaml)")
	runCmd.Flags().StringP("engine", "e", state.DefaultEngine, "Routing engine: dv, ls or both")
	runCmd.Flags().DurationP("delay", "d", state.DefaultRoundDelay, "Simulated network delay before each broadcast")
	runCmd.Flags().StringP("log-path", "l", "", "Also write logs to this file")
	runCmd.Flags().String("debug-addr", "", "Serve /debug/metrics and /debug/vars on this address")
	runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	runCmd.Flags().BoolP("quiet", "q", false, "Only print the final tables")
}
