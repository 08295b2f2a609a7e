package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var (
	flagWorkload string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "buddysim",
	Short: "Simulate buddy-allocator workloads across named memory zones",
	Long: `buddysim drives one or more pagealloc.Allocator zones through a
scripted sequence of allocate/free requests described by a YAML workload
file, and reports the resulting occupancy of each zone.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workload file against a fresh set of zones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkload(flagWorkload)
	},
}

func commandInit() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			log.SetLevel(logrus.DebugLevel)
		}
		return nil
	}

	runCmd.Flags().StringVarP(&flagWorkload, "workload", "w", "", "path to a workload YAML file (required)")
	_ = runCmd.MarkFlagRequired("workload")

	rootCmd.AddCommand(runCmd)
}
