package installer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"

	"github.com/hachimi-dev/hachimi-installer/internal/defs"
	"github.com/hachimi-dev/hachimi-installer/internal/fsutil"
	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/process"
	"github.com/hachimi-dev/hachimi-installer/internal/ui"
)

var errSteamStillRunning = errors.New("steam still running")

// LaunchCommand returns the launch options value that starts the patched
// game. Under Wine the patched executable is copied over the original before
// Steam runs it; elsewhere the launcher wraps the command.
func (i *Installer) LaunchCommand() string {
	if i.underWine() {
		return fmt.Sprintf("cp -f %s %s && %%command%%", defs.PatchedExe, game.ChannelSteam.ExeName())
	}
	return `"` + filepath.Join(i.installDir, defs.LauncherExe) + `" %command%`
}

func (i *Installer) setupLaunchOptions(ctx context.Context) error {
	client, err := i.steamClient()
	if err != nil {
		return fmt.Errorf("locate steam: %w", err)
	}
	configs, err := client.LocalConfigs()
	if err != nil {
		return err
	}

	cmd := i.LaunchCommand()
	lo := i.launchOptions()
	if lo.IsSet(configs, cmd) {
		i.opts.Logger.Info("launch options already set", "value", cmd)
		return nil
	}

	a := i.confirm(ui.KindYesNo, "installer.launch_options", "installer.setup_launch_opts", i18n.Params{"command": cmd})
	if !a.Affirmative() {
		i.opts.Logger.Info("launch options not changed", "value", cmd)
		i.confirm(ui.KindOK, "installer.launch_options", "installer.launch_skipped", i18n.Params{"command": cmd})
		return nil
	}

	if err := i.waitForSteamExit(ctx); err != nil {
		return err
	}
	res, err := lo.Apply(configs, cmd)
	if err != nil {
		return err
	}
	if res.Config == "" {
		i.opts.Logger.Warn("no Steam user has the app configured", "app", lo.AppID)
		i.confirm(ui.KindOK, "installer.warning", "installer.no_app_block", nil)
		return nil
	}
	i.opts.Logger.Info("launch options set", "config", res.Config, "previous", res.Previous)
	return nil
}

// restoreLaunchOptions puts back the value replaced by setupLaunchOptions.
// Without a backup there is nothing of ours to undo.
func (i *Installer) restoreLaunchOptions(ctx context.Context) error {
	lo := i.launchOptions()
	if !fsutil.Exists(lo.BackupPath) {
		return nil
	}
	if !i.confirm(ui.KindYesNo, "installer.launch_options", "installer.restore_launch", nil).Affirmative() {
		i.opts.Logger.Info("launch options left in place")
		return nil
	}

	client, err := i.steamClient()
	if err != nil {
		return fmt.Errorf("locate steam: %w", err)
	}
	configs, err := client.LocalConfigs()
	if err != nil {
		return err
	}
	if err := i.waitForSteamExit(ctx); err != nil {
		return err
	}
	restored, err := lo.Restore(configs)
	if err != nil {
		return err
	}
	i.opts.Logger.Info("launch options restored", "changed", restored)
	return nil
}

// waitForSteamExit blocks until no Steam client runs. Each time one is found
// the user is asked to close it; cancelling returns ErrSteamRunning.
// Steam overwrites localconfig.vdf when it exits.
func (i *Installer) waitForSteamExit(ctx context.Context) error {
	op := func() error {
		running, err := i.opts.Processes.IsRunning(ctx, process.SteamNames...)
		if err != nil {
			i.opts.Logger.Debug("process check failed", "error", err)
			return nil
		}
		if !running {
			return nil
		}
		if i.confirm(ui.KindRetryCancel, "installer.steam_running", "installer.close_steam", nil) != ui.AnswerRetry {
			return backoff.Permanent(ErrSteamRunning)
		}
		return errSteamStillRunning
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(i.opts.PollInterval), ctx)
	return backoff.Retry(op, b)
}
