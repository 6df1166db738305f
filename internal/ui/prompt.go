package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
)

// NewPrompter returns a dialog prompter for a terminal, or an AutoPrompter
// when hm reports headless mode.
func NewPrompter(theme *Theme, hm *HeadlessManager, assumeYes bool, out io.Writer) Prompter {
	if hm.IsHeadless() {
		return &AutoPrompter{AssumeYes: assumeYes, Out: out}
	}
	if assumeYes {
		return &AutoPrompter{AssumeYes: true, Out: out}
	}
	return &dialogPrompter{theme: theme}
}

// dialogPrompter asks with huh forms.
type dialogPrompter struct {
	theme *Theme
}

type buttons struct {
	yes, no     string
	onYes, onNo Answer
}

var kindButtons = map[Kind]buttons{
	KindOKCancel:    {yes: "OK", no: "Cancel", onYes: AnswerOK, onNo: AnswerCancel},
	KindYesNo:       {yes: "Yes", no: "No", onYes: AnswerYes, onNo: AnswerNo},
	KindRetryCancel: {yes: "Retry", no: "Cancel", onYes: AnswerRetry, onNo: AnswerCancel},
}

// Confirm shows the dialog. A dialog that cannot be shown or is aborted
// answers with the negative button.
func (p *dialogPrompter) Confirm(kind Kind, title, body string) Answer {
	if kind == KindOK {
		note := huh.NewNote().Title(title).Description(body).Next(true).NextLabel("OK")
		_ = p.run(huh.NewGroup(note))
		return AnswerOK
	}

	b := kindButtons[kind]
	choice := true
	field := huh.NewConfirm().
		Title(title).
		Description(body).
		Affirmative(b.yes).
		Negative(b.no).
		Value(&choice)
	if err := p.run(huh.NewGroup(field)); err != nil {
		return b.onNo
	}
	if choice {
		return b.onYes
	}
	return b.onNo
}

func (p *dialogPrompter) run(g *huh.Group) error {
	err := huh.NewForm(g).WithTheme(p.theme.Huh()).WithAccessible(false).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

// AutoPrompter answers without asking. Dialog text is echoed to Out so the
// log shows what was decided. Retry prompts are always cancelled since
// nobody is there to act before retrying.
type AutoPrompter struct {
	AssumeYes bool
	Out       io.Writer
}

// Confirm answers kind according to AssumeYes.
func (p *AutoPrompter) Confirm(kind Kind, title, body string) Answer {
	var a Answer
	switch kind {
	case KindOK:
		a = AnswerOK
	case KindOKCancel:
		a = AnswerCancel
		if p.AssumeYes {
			a = AnswerOK
		}
	case KindYesNo:
		a = AnswerNo
		if p.AssumeYes {
			a = AnswerYes
		}
	default:
		a = AnswerCancel
	}
	if p.Out != nil {
		_, _ = fmt.Fprintf(p.Out, "%s: %s [%s]\n", title, body, a)
	}
	return a
}

func (a Answer) String() string {
	switch a {
	case AnswerOK:
		return "ok"
	case AnswerCancel:
		return "cancel"
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	case AnswerRetry:
		return "retry"
	}
	return fmt.Sprintf("Answer(%d)", int(a))
}
