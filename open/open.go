// Package open hands schedule files to an editor.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/playcheck-cli/playcheck/constant"
	"github.com/samber/lo"
)

var editorEnvs = []string{"VISUAL", "EDITOR"}

// Edit blocks in $VISUAL or $EDITOR until it exits. When neither is set
// the file is passed to the desktop handler, which does not block.
func Edit(path string) error {
	if editor := Editor(); editor != "" {
		cmd := editorCommand(editor, path)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		return cmd.Run()
	}

	handler, ok := desktopHandler(runtime.GOOS)
	if !ok {
		return fmt.Errorf("no editor configured and no file handler for %s; set $EDITOR", runtime.GOOS)
	}
	return exec.Command(handler[0], append(handler[1:], path)...).Start()
}

// Editor returns the first non-blank of $VISUAL and $EDITOR.
func Editor() string {
	value, _ := lo.Find(lo.Map(editorEnvs, func(env string, _ int) string {
		return strings.TrimSpace(os.Getenv(env))
	}), func(v string) bool { return v != "" })
	return value
}

func editorCommand(editor, path string) *exec.Cmd {
	argv := strings.Fields(editor)
	return exec.Command(argv[0], append(argv[1:], path)...)
}

func desktopHandler(goos string) ([]string, bool) {
	switch goos {
	case constant.Linux:
		return []string{"xdg-open"}, true
	case constant.Darwin:
		return []string{"open"}, true
	case constant.Android:
		return []string{"termux-open"}, true
	case constant.Windows:
		return []string{filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe"), "url.dll,FileProtocolHandler"}, true
	}
	return nil, false
}
