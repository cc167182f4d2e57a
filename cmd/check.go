package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/style"
)

// mpvInstall maps GOOS to a command installing mpv.
var mpvInstall = map[string]string{
	constant.Darwin:  "brew install mpv",
	constant.Linux:   "sudo apt install mpv",
	constant.Windows: "scoop install mpv",
	constant.Android: "pkg install mpv",
}

// CheckDependencies exits when the player executable cannot be found.
func CheckDependencies(executable string) {
	if _, err := exec.LookPath(executable); err == nil {
		return
	}

	fmt.Println(missingPlayer(executable))
	os.Exit(exitFailed)
}

func missingPlayer(executable string) string {
	lines := []string{
		style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Player not found", icon.Get(icon.Fail))),
		"",
		style.New().Foreground(color.Text).Render(fmt.Sprintf("%q is not in your PATH. Set player.default to another executable or install it.", executable)),
	}

	if install, ok := mpvInstall[runtime.GOOS]; ok && filepath.Base(executable) == "mpv" {
		lines = append(lines, "", "Try:", "  "+style.New().Foreground(color.Accent).Bold(true).Render(install))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
