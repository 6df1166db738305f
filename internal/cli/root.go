package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/installer"
	"github.com/hachimi-dev/hachimi-installer/pkg/version"
)

var rootOpts globalOptions

var rootCmd = &cobra.Command{
	Use:   "hachimi-installer",
	Short: "Install Hachimi into Umamusume: Pretty Derby",
	Long: `hachimi-installer finds the DMM and Steam installations of
Umamusume: Pretty Derby and installs or removes the Hachimi payload.

On the Steam JP release it also patches the game executable and sets the
Steam launch options so the patched copy is started.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if deps != nil {
			return nil
		}
		d, err := InitDependencies(rootOpts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		deps = d
		return nil
	},
}

// Execute runs the root command and prints a localized message on failure.
// An interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx)
}

func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	if cerr := deps.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %s\n", symError(), installer.Message(err, i18n.Text))
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("hachimi-installer %s\n", version.GetFullVersion()))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootOpts.ConfigPath, "config", "", "configuration file (default: $HACHIMI_CONFIG or the user config directory)")
	pf.StringVar(&rootOpts.LogFile, "log-file", "", "write a rotating log to this file")
	pf.StringVar(&rootOpts.Lang, "lang", "", "message language (en, ja)")
	pf.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "log debug output to stderr")
	pf.BoolVarP(&rootOpts.AssumeYes, "yes", "y", false, "answer yes to every question")
	pf.BoolVar(&rootOpts.NonInteractive, "non-interactive", false, "never show prompts")

	rootCmd.AddCommand(installCmd, uninstallCmd, statusCmd, configCmd)
}
