package chartify

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/chartify/internal/version"
	"github.com/arthur-debert/chartify/pkg/config"
	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/paths"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := opts.cfg.TOML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: MsgConfigInitShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := paths.ConfigFile()
			if len(args) == 1 {
				target = args[0]
			}
			if _, err := os.Stat(target); err == nil && !force {
				return errors.Newf(errors.ErrAlreadyExists, MsgConfigExists, target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to create %s", filepath.Dir(target))
			}
			if err := os.WriteFile(target, []byte(config.GenerateConfigContent()), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to write %s", target)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten+"\n", target)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.AddCommand(initCmd)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
