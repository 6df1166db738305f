package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/installer"
)

// targetFlags select the installation and DLL a command works on.
type targetFlags struct {
	dir          string
	channel      string
	target       string
	customTarget string
}

func addTargetFlags(cmd *cobra.Command, f *targetFlags) {
	cmd.Flags().StringVar(&f.dir, "dir", "", "game install directory (default: detected)")
	cmd.Flags().StringVar(&f.channel, "channel", "", "release to use when several are installed: dmm, steam or steam-global")
	cmd.Flags().StringVar(&f.target, "target", "", "DLL to replace: unityplayer or cri_mana_vpx")
	cmd.Flags().StringVar(&f.customTarget, "custom-target", "", "file name to install the payload as")
}

// prepareInstaller builds an Installer and selects the installation given
// by flags, then config, then discovery.
func prepareInstaller(cmd *cobra.Command, d *Dependencies, f *targetFlags) (*installer.Installer, error) {
	cfg := d.Config.Get()

	t, err := game.ParseTarget(firstNonEmpty(f.target, cfg.Game.Target))
	if err != nil {
		return nil, err
	}
	inst := d.Installer(t, firstNonEmpty(f.customTarget, cfg.Game.CustomTarget))

	var (
		want    game.Channel
		hasWant bool
	)
	if name := firstNonEmpty(f.channel, cfg.Game.Channel); name != "" {
		ch, err := game.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		want, hasWant = ch, true
	}

	if dir := firstNonEmpty(f.dir, cfg.Game.InstallDir); dir != "" {
		if err := inst.SetInstallDir(dir); err != nil {
			return nil, err
		}
		if ch, _ := inst.Channel(); hasWant && ch != want {
			return nil, fmt.Errorf("%w: %s holds the %s release", installer.ErrInvalidInstallDir, dir, ch.DisplayName())
		}
		return inst, nil
	}

	inst.DetectInstallDirs(commandContext(cmd))
	if hasWant {
		if err := inst.SelectChannel(want); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
