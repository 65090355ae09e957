package cli

import (
	"github.com/rileyhilliard/ptop/internal/config"
	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newConfigCmd prints the effective config after file, env, and flags are merged.
func newConfigCmd(v *viper.Viper, flags *DashboardFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration ptop would run with, as YAML.

Values come from, lowest to highest priority: built-in defaults,
~/.config/ptop/config.yaml (or --config), PTOP_* environment variables,
then flags.

Examples:
  ptop config
  ptop config --sort memory > ~/.config/ptop/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, flags.ConfigPath)
			if err != nil {
				return err
			}
			out, err := config.Marshal(cfg)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"Couldn't render the config",
					"This is unexpected - try running ptop again.")
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ptop.

Examples:
  # Bash
  ptop completion bash > /etc/bash_completion.d/ptop

  # Zsh
  ptop completion zsh > "${fpath[1]}/_ptop"

  # Fish
  ptop completion fish > ~/.config/fish/completions/ptop.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, out := cmd.Root(), cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(out)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}
