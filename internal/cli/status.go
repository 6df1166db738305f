package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/installer"
	"github.com/hachimi-dev/hachimi-installer/pkg/version"
)

var statusFlags targetFlags

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"detect"},
	Short:   "Show detected installations and installed payloads",
	Args:    cobra.NoArgs,
	RunE:    runStatus,
}

func init() {
	addTargetFlags(statusCmd, &statusFlags)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	inst, err := prepareInstaller(cmd, d, &statusFlags)
	if err != nil {
		return err
	}

	report := statusMarkdown(inst, version.GetPayloadVersion())
	out := cmd.OutOrStdout()
	if d.Headless.IsHeadless() || d.Theme.NoColor {
		_, err = fmt.Fprint(out, report)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	rendered, err := r.Render(report)
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

// statusMarkdown describes the known installations and, for the selected
// one, what each target DLL currently is.
func statusMarkdown(inst *installer.Installer, bundled string) string {
	var b strings.Builder
	text := i18n.Text

	fmt.Fprintf(&b, "# %s\n\n", text("status.title", nil))
	fmt.Fprintf(&b, "- %s: `%s`\n", text("status.installer_version", nil), version.GetVersion())
	fmt.Fprintf(&b, "- %s: `%s`\n\n", text("status.bundled_version", nil), bundled)

	fmt.Fprintf(&b, "## %s\n\n", text("status.installations", nil))
	candidates := inst.Candidates()
	if len(candidates) == 0 {
		fmt.Fprintf(&b, "%s\n", text("status.none", nil))
		return b.String()
	}
	selected, hasSelected := inst.Channel()
	for _, ch := range game.Channels {
		dir, ok := candidates[ch]
		if !ok {
			continue
		}
		mark := ""
		if hasSelected && ch == selected {
			mark = fmt.Sprintf(" (%s)", text("status.selected", nil))
		}
		fmt.Fprintf(&b, "- **%s**: `%s`%s\n", ch.DisplayName(), dir, mark)
	}
	if !hasSelected {
		return b.String()
	}

	fmt.Fprintf(&b, "\n## %s\n\n", text("status.targets", nil))
	fmt.Fprintf(&b, "%s\n|---|---|---|---|---|\n", text("status.columns", nil))
	for _, t := range game.Targets {
		m, err := inst.Method(t)
		if err != nil {
			continue
		}
		info, _ := inst.TargetVersionInfo(t)
		state := "-"
		if info.IsHachimi() {
			state = info.CompareWithBundled(bundled).String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", t.DLLName(), m, orDash(info.Name), orDash(info.Version), state)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
