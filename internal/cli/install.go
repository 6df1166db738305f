package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/installer"
	"github.com/hachimi-dev/hachimi-installer/internal/platform"
)

var installFlags targetFlags

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install Hachimi into the game",
	Long: `Install writes the Hachimi payload in place of the selected DLL.

On the Steam JP release the game executable is verified and patched, and the
Steam launch options are pointed at the patched copy after confirmation.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	addTargetFlags(installCmd, &installFlags)
}

func runInstall(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	inst, err := prepareInstaller(cmd, d, &installFlags)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ctx := commandContext(cmd)

	if err := inst.PreInstall(); err != nil {
		return err
	}
	warnIfNotElevated(out, inst)
	if err := inst.Install(ctx); err != nil {
		return err
	}
	if err := inst.PostInstall(ctx); err != nil {
		return err
	}

	path, err := inst.CurrentTargetPath()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", symSuccess(), i18n.Text("installer.installed", i18n.Params{"path": path}))
	return nil
}

// warnIfNotElevated notes that the system directory is only writable by an
// administrator.
func warnIfNotElevated(out io.Writer, inst *installer.Installer) {
	m, err := inst.Method(inst.Target())
	if err != nil || m != game.MethodShimSwap || platform.IsElevated() {
		return
	}
	path, err := inst.CurrentTargetPath()
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", symWarning(), i18n.Text("installer.needs_admin", i18n.Params{"path": path}))
}
