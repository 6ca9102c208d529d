package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	envFiles   []string
}

func (g *globalFlags) load() (*config.Config, error) {
	return config.Load(config.Options{File: g.configFile, EnvFiles: g.envFiles})
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "formbuilder",
		Short: "Design, render and collect drag-and-drop forms",
		Long: `formbuilder serves the form designer API and works with layout files
from the command line.

Layout files are the serialized element list produced by the designer,
authored as JSON or YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file (default: ./configs/config.yaml or ./config.yaml)")
	root.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", []string{".env"}, "dotenv files loaded before the environment")

	root.AddCommand(
		newServeCmd(flags),
		newRenderCmd(),
		newFillCmd(),
		newExportCmd(),
		newTokenCmd(flags),
	)
	return root
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
