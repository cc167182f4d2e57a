// Package util holds small text and terminal helpers for the command line.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

var (
	unsafeFilenameRunes = regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s]`)
	underscoreRuns      = regexp.MustCompile(`_{2,}`)
	trimmedSeparators   = regexp.MustCompile(`^[-_.]+|[-_.]+$`)
)

// SanitizeFilename turns a user supplied name into something every OS accepts.
func SanitizeFilename(name string) string {
	name = unsafeFilenameRunes.ReplaceAllLiteralString(name, "_")
	name = underscoreRuns.ReplaceAllLiteralString(name, "_")
	return trimmedSeparators.ReplaceAllLiteralString(name, "")
}

// Quantify formats n followed by the matching noun form.
func Quantify(n int, one, many string) string {
	noun := many
	if n == 1 {
		noun = one
	}
	return fmt.Sprintf("%d %s", n, noun)
}

func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FileStem is the base name of path without its extension.
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PrintErasable writes msg on the current line. Calling the returned func blanks it out.
func PrintErasable(msg string) (erase func()) {
	_, _ = fmt.Fprint(os.Stdout, "\r"+msg)
	return func() {
		_, _ = fmt.Fprint(os.Stdout, "\r"+strings.Repeat(" ", utf8.RuneCountInString(msg))+"\r")
	}
}

// Ignore calls f and drops its error. Meant for deferred closes.
func Ignore(f func() error) {
	_ = f()
}
