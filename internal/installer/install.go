package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hachimi-dev/hachimi-installer/internal/defs"
	"github.com/hachimi-dev/hachimi-installer/internal/fsutil"
	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/patch"
	"github.com/hachimi-dev/hachimi-installer/internal/ui"
)

// PreInstall checks that the payload bundle holds every file Install and
// PostInstall will write, and that the files the install method moves around
// exist.
func (i *Installer) PreInstall() error {
	ch, err := i.validate()
	if err != nil {
		return err
	}
	for _, name := range bundledFiles(i.target, ch) {
		if !i.opts.Payload.Has(name) {
			return fmt.Errorf("payload bundle: %w", &MissingFileError{Path: name})
		}
	}
	if game.MethodFor(i.target, ch) == game.MethodShimSwap {
		src, dest := i.pluginPath(i.target), i.shadowPath(i.target)
		if !fsutil.Exists(src) && !fsutil.Exists(dest) {
			return &MissingFileError{Path: src}
		}
	}
	return nil
}

func bundledFiles(t game.Target, ch game.Channel) []string {
	names := []string{defs.PayloadDLL}
	if game.MethodFor(t, ch) == game.MethodSideLoad {
		names = append(names, defs.CellarDLL)
	}
	if ch.NeedsExePatch() {
		names = append(names, defs.ExePatch, defs.LauncherExe)
	}
	return names
}

// Install writes the payload to the current target path. On the Steam JP
// channel it then patches the executable and points the Steam launch
// options at the launcher.
func (i *Installer) Install(ctx context.Context) error {
	ch, err := i.validate()
	if err != nil {
		return err
	}
	path, err := i.CurrentTargetPath()
	if err != nil {
		return err
	}

	data, err := i.opts.Payload.Read(defs.PayloadDLL)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	if err := fsutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	i.opts.Logger.Info("payload installed", "path", path, "method", game.MethodFor(i.target, ch))

	if !ch.NeedsExePatch() {
		return nil
	}
	if err := i.patchExecutable(ch); err != nil {
		return err
	}
	return i.setupLaunchOptions(ctx)
}

// patchExecutable verifies the game executable, writes the patched copy next
// to it and installs the launcher.
func (i *Installer) patchExecutable(ch game.Channel) error {
	sp := i.spinner(i.text("installer.patching", i18n.Params{"file": ch.ExeName()}))
	defer sp.Stop()

	exe := filepath.Join(i.installDir, ch.ExeName())
	if err := patch.VerifyHash(exe, i.opts.ExpectedExeHash); err != nil {
		var mm *patch.MismatchError
		if errors.As(err, &mm) {
			return &VerificationError{File: ch.ExeName(), Expected: mm.Expected, Found: mm.Found}
		}
		return fmt.Errorf("verify executable: %w", err)
	}

	original, err := os.ReadFile(exe)
	if err != nil {
		return fmt.Errorf("read executable: %w", err)
	}
	delta, err := i.opts.Payload.Read(defs.ExePatch)
	if err != nil {
		return fmt.Errorf("read exe patch: %w", err)
	}
	patched, err := patch.Apply(original, delta)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(filepath.Join(i.installDir, defs.PatchedExe), patched); err != nil {
		return fmt.Errorf("write patched executable: %w", err)
	}

	launcher, err := i.opts.Payload.Read(defs.LauncherExe)
	if err != nil {
		return fmt.Errorf("read launcher: %w", err)
	}
	if err := fsutil.WriteFile(filepath.Join(i.installDir, defs.LauncherExe), launcher); err != nil {
		return fmt.Errorf("write launcher: %w", err)
	}
	i.opts.Logger.Info("executable patched", "exe", exe)
	return nil
}

// PostInstall finishes the install method: SideLoad writes the loader helper
// and checks DLL redirection, ShimSwap parks the game's own DLL.
func (i *Installer) PostInstall(_ context.Context) error {
	ch, err := i.validate()
	if err != nil {
		return err
	}
	switch game.MethodFor(i.target, ch) {
	case game.MethodSideLoad:
		path, err := i.CurrentTargetPath()
		if err != nil {
			return err
		}
		helper, err := i.opts.Payload.Read(defs.CellarDLL)
		if err != nil {
			return fmt.Errorf("read helper: %w", err)
		}
		if err := fsutil.WriteFile(filepath.Join(filepath.Dir(path), defs.HelperDLL), helper); err != nil {
			return fmt.Errorf("write helper: %w", err)
		}
		return i.checkDevOverride()

	case game.MethodShimSwap:
		src, dest := i.pluginPath(i.target), i.shadowPath(i.target)
		if !fsutil.Exists(src) {
			return nil
		}
		if err := fsutil.CopyFile(src, dest); err != nil {
			return fmt.Errorf("park game dll: %w", err)
		}
		if err := os.Remove(src); err != nil {
			return fmt.Errorf("park game dll: %w", err)
		}
		i.opts.Logger.Info("game dll parked", "from", src, "to", dest)
	}
	return nil
}

// checkDevOverride offers to turn on DLL redirection when it is off.
// Failing to read the switch is only a warning.
func (i *Installer) checkDevOverride() error {
	enabled, err := i.opts.Registry.DevOverrideEnabled()
	if err != nil {
		i.opts.Logger.Warn("cannot read DevOverrideEnable", "error", err)
		i.confirm(ui.KindOK, "installer.warning", "installer.ifeo_failed", i18n.Params{"error": err})
		return nil
	}
	if enabled {
		return nil
	}
	if i.confirm(ui.KindOKCancel, "installer.dotlocal", "installer.dotlocal_disabled", nil) != ui.AnswerOK {
		i.opts.Logger.Info("DLL redirection left disabled")
		return nil
	}
	if err := i.opts.Registry.EnableDevOverride(); err != nil {
		return &RegistryError{Op: "enable DevOverrideEnable", Err: err}
	}
	i.confirm(ui.KindOK, "installer.dotlocal", "installer.restart_required", nil)
	return nil
}

// Uninstall removes everything Install and PostInstall created and puts the
// game's own files back.
func (i *Installer) Uninstall(ctx context.Context) error {
	ch, err := i.validate()
	if err != nil {
		return err
	}
	path, err := i.CurrentTargetPath()
	if err != nil {
		return err
	}
	if err := fsutil.RemoveIfExists(path); err != nil {
		return fmt.Errorf("remove payload: %w", err)
	}

	switch game.MethodFor(i.target, ch) {
	case game.MethodSideLoad:
		dir := filepath.Dir(path)
		if err := fsutil.RemoveIfExists(filepath.Join(dir, defs.HelperDLL)); err != nil {
			return fmt.Errorf("remove helper: %w", err)
		}
		if err := fsutil.RemoveDirIfEmpty(dir); err != nil {
			i.opts.Logger.Debug("keeping redirection directory", "dir", dir, "error", err)
		}

	case game.MethodShimSwap:
		src, dest := i.pluginPath(i.target), i.shadowPath(i.target)
		switch {
		case fsutil.Exists(src):
		case !fsutil.Exists(dest):
			i.opts.Logger.Warn("game dll missing from both locations", "path", src)
		default:
			if err := fsutil.CopyFile(dest, src); err != nil {
				return fmt.Errorf("restore game dll: %w", err)
			}
			if err := os.Remove(dest); err != nil {
				return fmt.Errorf("restore game dll: %w", err)
			}
			i.opts.Logger.Info("game dll restored", "path", src)
		}
	}
	i.opts.Logger.Info("payload removed", "path", path)

	if !ch.NeedsExePatch() {
		return nil
	}
	for _, name := range []string{defs.PatchedExe, defs.LauncherExe} {
		if err := fsutil.RemoveIfExists(filepath.Join(i.installDir, name)); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return i.restoreLaunchOptions(ctx)
}
