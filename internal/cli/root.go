package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kubescope/memtop/internal/analyzer"
	"github.com/kubescope/memtop/internal/config"
	"github.com/kubescope/memtop/internal/core/factory"
	"github.com/kubescope/memtop/internal/kubernetes"
	"github.com/kubescope/memtop/internal/logging"
)

var (
	flagKubeconfig string
	flagThreshold  float64
)

// rootCmd runs the full three-tier memory analysis when invoked without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "memtop",
	Short: "Memory drill-down report for a Kubernetes cluster",
	Long: `memtop inspects a cluster's memory usage in three tiers: it ranks
nodes by memory utilization, lists the pods on each high-usage node to
find the heaviest one, and shows usage across every replica of the
controller owning that pod.

It is a read-only diagnostic; nothing in the cluster is modified.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("kubeconfig") {
			cfg.Kubeconfig = flagKubeconfig
		}
		if cmd.Flags().Changed("threshold") {
			cfg.HighUsageThreshold = flagThreshold
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		logger := logging.NewLogger(cfg, os.Stderr)

		clients, err := kubernetes.NewClients(cfg.Kubeconfig, cfg.K8sTimeout)
		if err != nil {
			return err
		}

		services := factory.NewServices(clients, logger)

		a := analyzer.New(clients.Kubernetes, services, cfg.HighUsageThreshold,
			logger, os.Stdout, os.Stderr)

		return a.Run(cmd.Context())
	},
}

// SetVersion sets the version for the root command. Called from main to
// inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the entry point for the CLI.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "memtop version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.Flags().StringVar(&flagKubeconfig, "kubeconfig", "",
		"path to the kubeconfig file (defaults to standard loading rules)")
	rootCmd.Flags().Float64Var(&flagThreshold, "threshold", 80,
		"utilization percentage above which a node counts as high-usage")
}
