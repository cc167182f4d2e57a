package cmd

import (
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/playcheck-cli/playcheck/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolP("short", "s", false, "Print the version only")
	versionCmd.SetOut(os.Stdout)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		rows := []lo.Tuple2[string, string]{
			{A: "Version", B: constant.Version},
			{A: "Git Commit", B: constant.Revision},
			{A: "Build Date", B: strings.TrimSpace(constant.BuiltAt)},
			{A: "Built By", B: constant.BuiltBy},
			{A: "Platform", B: runtime.GOOS + "/" + runtime.GOARCH},
			{A: "User Agent", B: constant.UserAgent},
		}

		label := style.New().Faint(true).Width(14).Render
		lines := []string{style.Fg(color.Purple)("▇▇▇ " + constant.Playcheck), ""}
		for _, row := range rows {
			value := lo.Ternary(row.B == "", "unknown", row.B)
			lines = append(lines, "  "+label(row.A)+style.Bold(value))
		}

		cmd.Println(lipgloss.JoinVertical(lipgloss.Left, lines...))
	},
}
