package chartify

import (
	"fmt"
	"os"

	"github.com/arthur-debert/chartify/internal/version"
	"github.com/arthur-debert/chartify/pkg/config"
	"github.com/arthur-debert/chartify/pkg/logging"
	"github.com/arthur-debert/chartify/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags and the configuration they select
type rootOptions struct {
	verbosity  int
	configFile string
	format     string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "chartify",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.configFile})
			if err != nil {
				return err
			}
			opts.cfg = cfg

			verbosity := opts.verbosity
			if verbosity == 0 {
				verbosity = cfg.Logging.Verbosity
			}
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newActionsCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// printer builds a printer on the command's output for the --format flag
func (o *rootOptions) printer(cmd *cobra.Command) (*output.Printer, error) {
	format, err := output.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		format = format.Resolve(f)
	}
	return output.NewPrinter(cmd.OutOrStdout(), format), nil
}
