package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/ptop/internal/config"
	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/rileyhilliard/ptop/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings carries the merged file, env, and flag values for the root command.
var settings = config.NewViper()

// rootCmd is the dashboard itself; subcommands are helpers around it.
var rootCmd = newRootCmd(settings)

func newRootCmd(v *viper.Viper) *cobra.Command {
	flags := &DashboardFlags{}
	cmd := &cobra.Command{
		Use:   "ptop",
		Short: "A minimal htop alternative",
		Long: `ptop samples every process on this machine on a fixed interval and
shows a sorted, live-updating table of CPU, memory, disk, and network use.

Keys:
  s        cycle sort column (cpu, memory, pid, name)
  r        reverse sort order
  p/space  pause sampling
  f        refresh now
  ?        help
  q        quit

Examples:
  ptop
  ptop -n 1s --sort memory
  ptop --filter postgres --min-memory 50MB`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, flags.ConfigPath)
			if err != nil {
				return err
			}
			return dashboardCommand(cmd.Context(), cfg)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	AddDashboardFlags(cmd, flags)
	if err := BindDashboardFlags(cmd, v); err != nil {
		// Flag names are fixed at compile time; a bind failure is a programming error.
		panic(err)
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(v, flags))
	cmd.AddCommand(completionCmd)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				fmt.Fprintf(os.Stderr, "ptop has no '%s' command.\n", name)
				if similar := util.SuggestSimilar(name, subcommandNames(rootCmd), 1); len(similar) > 0 {
					fmt.Fprintf(os.Stderr, "Did you mean 'ptop %s'?\n", similar[0])
				}
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			fmt.Fprintln(os.Stderr, "Run 'ptop --help' for usage.")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// subcommandNames lists the visible subcommands of cmd.
func subcommandNames(cmd *cobra.Command) []string {
	var names []string
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	return names
}

// loadConfig finds, loads, and validates the config for this run.
func loadConfig(v *viper.Viper, explicit string) (*config.Config, error) {
	path, err := config.Find(explicit)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the quoted command name out of a cobra
// "unknown command" error.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
