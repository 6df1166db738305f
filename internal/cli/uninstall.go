package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
)

var uninstallFlags targetFlags

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove Hachimi from the game",
	Long: `Uninstall removes the payload and helper files and puts back the game's own
DLL. On the Steam JP release the patched executable and launcher are removed
and the original Steam launch options can be restored.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	addTargetFlags(uninstallCmd, &uninstallFlags)
}

func runUninstall(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	inst, err := prepareInstaller(cmd, d, &uninstallFlags)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Without an explicit target, remove whichever DLL holds Hachimi.
	if !cmd.Flags().Changed("target") {
		if t, ok := inst.InstalledHachimiTarget(); ok {
			inst.SetTarget(t)
		}
	}
	warnIfNotElevated(out, inst)

	path, err := inst.CurrentTargetPath()
	if err != nil {
		return err
	}
	if err := inst.Uninstall(commandContext(cmd)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", symSuccess(), i18n.Text("installer.uninstalled", i18n.Params{"path": path}))
	return nil
}
