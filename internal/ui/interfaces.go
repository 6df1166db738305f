// Package ui provides the terminal interaction used by the installer:
// confirmation dialogs, a progress spinner, and headless detection.
package ui

import "errors"

// ErrCancelled indicates the user aborted a prompt.
var ErrCancelled = errors.New("ui: cancelled by user")

// Kind selects the buttons of a confirmation dialog.
type Kind int

const (
	KindOK Kind = iota
	KindOKCancel
	KindYesNo
	KindRetryCancel
)

// Answer is the button the user chose.
type Answer int

const (
	AnswerOK Answer = iota
	AnswerCancel
	AnswerYes
	AnswerNo
	AnswerRetry
)

// Affirmative reports whether a is the positive choice of its dialog.
func (a Answer) Affirmative() bool {
	return a == AnswerOK || a == AnswerYes || a == AnswerRetry
}

// Prompter shows a blocking confirmation dialog.
type Prompter interface {
	Confirm(kind Kind, title, body string) Answer
}

// Progress creates progress indicators.
type Progress interface {
	Spinner(title string) Spinner
}

// Spinner is an indeterminate progress indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}
