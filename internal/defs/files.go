package defs

// File names written to or read from a game installation.
const (
	// PayloadDLL is the bundled Hachimi plugin.
	PayloadDLL = "hachimi.dll"

	// CellarDLL is the bundled helper that is written next to the
	// side-loaded payload under the name HelperDLL.
	CellarDLL = "cellar.dll"

	// HelperDLL is the file name the cellar helper is installed as.
	HelperDLL = "apphelp.dll"

	// ExePatch is the bundled delta for the Steam JP executable. It must be a
	// BSDIFF40 file as written by github.com/gabstv/go-bsdiff; raw bsdiff-rs
	// streams are not accepted.
	ExePatch = "umamusume.patch"

	// PatchedExe is the sibling executable produced by applying ExePatch.
	PatchedExe = "FunnyHoney.exe"

	// LauncherExe is the relauncher Steam is pointed at through launch options.
	LauncherExe = "hachimi_launcher.exe"

	// LaunchOptionsBackup holds the launch options value that was replaced.
	LaunchOptionsBackup = ".hachimi_launch_options.bak"

	// ShadowDir is the directory the original plugin is parked in by the
	// shim swap method.
	ShadowDir = "hachimi"

	// LocalConfigVDF is Steam's per-user configuration file.
	LocalConfigVDF = "localconfig.vdf"

	// LibraryFoldersVDF lists the Steam library folders.
	LibraryFoldersVDF = "libraryfolders.vdf"

	// DMMConfig is the DMM Game Player library file.
	DMMConfig = "dmmgame.cnf"

	// ConfigYAML is the installer's own configuration file.
	ConfigYAML = "installer.yaml"
)

// Directories relative to a game installation or the user config dir.
const (
	PluginsDir   = "umamusume_Data/Plugins/x86_64"
	DMMConfigDir = "dmmgameplayer5"
	AppConfigDir = "hachimi-installer"
)
