package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/toolgate/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is built lazily so
// that --config is honored and commands like "version" need no config at all.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	appOpts := &app.Options{Verbose: opts.Verbose}
	lazy := app.NewLazy(appOpts)

	root := &cobra.Command{
		Use:   "toolgate",
		Short: "Confirmation-gated tool execution for LLM planners",
		Long: "toolgate mediates between a tool-calling planner and local files and processes.\n" +
			"Every action is classified, confirmed by the operator and reported as structured JSON.",
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return lazy.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&appOpts.ConfigPath, "config", "", "Config file (default ~/.toolgate/config.yaml, or $TOOLGATE_CONFIG)")
	root.PersistentFlags().BoolVarP(&appOpts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(
		newCallCommand(lazy),
		newServeCommand(lazy),
		newToolsCommand(),
		newClassifyCommand(lazy),
		newRulesCommand(lazy),
		newConfigCommand(lazy),
		newDoctorCommand(lazy),
		newVersionCommand(),
	)
	root.SetContext(ctx)
	return root, nil
}
