package i18n

import "golang.org/x/text/language"

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		"error.no_install_dir":        "No install location is selected. Pass --dir or install the game first.",
		"error.invalid_install_dir":   "The selected folder does not contain a supported game executable.",
		"error.cannot_find_target":    "Could not find {target} in the game folder.",
		"error.io":                    "File operation failed: {error}",
		"error.registry":              "Registry operation failed: {error}",
		"error.verification":          "{file} did not pass verification. The game may have been updated.\nExpected SHA-256: {expected}\nFound SHA-256:    {found}",
		"error.steam_running":         "Steam is running. Cannot modify configuration.",
		"error.generic":               "{error}",
		"installer.warning":           "Warning",
		"installer.steam_running":     "Steam is running",
		"installer.close_steam":       "Close Steam completely and choose Retry to continue.",
		"installer.launch_options":    "Steam launch options",
		"installer.setup_launch_opts": "The game's Steam launch options will be set to:\n{command}\nApply them now?",
		"installer.restore_launch":    "Restore the Steam launch options that were replaced during installation?",
		"installer.ifeo_failed":       "Could not check whether DLL redirection is enabled: {error}",
		"installer.dotlocal":          "DLL redirection",
		"installer.dotlocal_disabled": "DLL redirection (DevOverrideEnable) is disabled, so Windows will ignore the installed DLL. Enable it now? This requires administrator rights.",
		"installer.restart_required":  "Restart your computer for the change to take effect.",
		"installer.patching":          "Patching {file}",
		"installer.installed":         "Hachimi was installed to {path}.",
		"installer.uninstalled":       "Hachimi was removed from {path}.",
		"installer.launch_skipped":    "Launch options were not changed. Set them in Steam to: {command}",
		"installer.no_app_block":      "No Steam user has launched the game yet; launch it once and run the installer again.",
		"installer.needs_admin":       "Writing {path} requires administrator rights.",
		"status.title":                "Hachimi Installer",
		"status.installer_version":    "Installer",
		"status.bundled_version":      "Bundled Hachimi",
		"status.installations":        "Installations",
		"status.none":                 "No installation found.",
		"status.selected":             "selected",
		"status.targets":              "Targets",
		"status.columns":              "| Target | Method | Product | Version | State |",
	},
	language.Japanese: {
		"error.no_install_dir":        "インストール先が選択されていません。--dir を指定するか、先にゲームをインストールしてください。",
		"error.invalid_install_dir":   "選択したフォルダに対応するゲームの実行ファイルがありません。",
		"error.cannot_find_target":    "ゲームフォルダに {target} が見つかりません。",
		"error.io":                    "ファイル操作に失敗しました: {error}",
		"error.registry":              "レジストリ操作に失敗しました: {error}",
		"error.verification":          "{file} の検証に失敗しました。ゲームが更新された可能性があります。\n期待される SHA-256: {expected}\n実際の SHA-256:     {found}",
		"error.steam_running":         "Steam が起動しています。設定を変更できません。",
		"installer.warning":           "警告",
		"installer.steam_running":     "Steam が起動中です",
		"installer.close_steam":       "Steam を完全に終了してから「再試行」を選んでください。",
		"installer.launch_options":    "Steam の起動オプション",
		"installer.setup_launch_opts": "ゲームの Steam 起動オプションを次の値に設定します:\n{command}\n今すぐ適用しますか?",
		"installer.restore_launch":    "インストール時に置き換えた Steam の起動オプションを元に戻しますか?",
		"installer.ifeo_failed":       "DLL リダイレクトが有効か確認できませんでした: {error}",
		"installer.dotlocal":          "DLL リダイレクト",
		"installer.dotlocal_disabled": "DLL リダイレクト (DevOverrideEnable) が無効のため、インストールした DLL は読み込まれません。今すぐ有効にしますか? 管理者権限が必要です。",
		"installer.restart_required":  "変更を反映するにはコンピューターを再起動してください。",
		"installer.patching":          "{file} にパッチを適用しています",
		"installer.installed":         "Hachimi を {path} にインストールしました。",
		"installer.uninstalled":       "{path} から Hachimi を削除しました。",
		"installer.launch_skipped":    "起動オプションは変更されていません。Steam で次の値を設定してください: {command}",
		"installer.no_app_block":      "まだどの Steam ユーザーもゲームを起動していません。一度起動してからインストーラーを再実行してください。",
		"installer.needs_admin":       "{path} への書き込みには管理者権限が必要です。",
		"status.title":                "Hachimi インストーラー",
		"status.installer_version":    "インストーラー",
		"status.bundled_version":      "同梱の Hachimi",
		"status.installations":        "インストール先",
		"status.none":                 "インストールが見つかりません。",
		"status.selected":             "選択中",
		"status.targets":              "対象",
		"status.columns":              "| 対象 | 方式 | 製品 | バージョン | 状態 |",
	},
}
