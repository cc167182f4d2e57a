package cmd

import (
	"fmt"
	"os"

	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/playcheck-cli/playcheck/util"
	"github.com/playcheck-cli/playcheck/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// appPath is a location playcheck reads or writes.
type appPath struct {
	name     string
	flag     string
	short    mo.Option[string]
	location func() string

	// hidden paths are printed by `where` only when asked for.
	hidden bool

	// clearable paths can be removed by `clear`.
	clearable bool
}

var appPaths = []appPath{
	{name: "Config", flag: "config", short: mo.Some("c"), location: where.Config},
	{name: "Schedules", flag: "schedules", short: mo.Some("s"), location: where.Schedules},
	{name: "Reports", flag: "reports", short: mo.Some("r"), location: where.Reports},
	{name: "Logs", flag: "logs", short: mo.Some("l"), location: where.Logs, clearable: true},
	{name: "Cache", flag: "cache", location: where.Cache, hidden: true, clearable: true},
	{name: "Temp", flag: "temp", location: where.Temp, hidden: true, clearable: true},
}

func addPathFlags(cmd *cobra.Command, paths []appPath, help func(appPath) string) {
	for _, p := range paths {
		if short, ok := p.short.Get(); ok {
			cmd.Flags().BoolP(p.flag, short, false, help(p))
		} else {
			cmd.Flags().Bool(p.flag, false, help(p))
		}
	}
}

func selectedPaths(cmd *cobra.Command, paths []appPath) []appPath {
	return lo.Filter(paths, func(p appPath, _ int) bool {
		return lo.Must(cmd.Flags().GetBool(p.flag))
	})
}

func init() {
	rootCmd.AddCommand(whereCmd)

	addPathFlags(whereCmd, appPaths, func(p appPath) string { return p.name + " path" })
	for _, p := range appPaths {
		if p.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(p.flag))
		}
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(appPaths, func(p appPath, _ int) string {
		return p.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the paths playcheck reads and writes",
	Run: func(cmd *cobra.Command, args []string) {
		if selected := selectedPaths(cmd, appPaths); len(selected) > 0 {
			cmd.Println(selected[0].location())
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(appPaths, func(p appPath, _ int) bool { return p.hidden })
		for i, p := range visible {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(p.name+"?"), style.Fg(color.Yellow)("--"+p.flag))
			cmd.Println(p.location())
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	addPathFlags(clearCmd, clearablePaths(), func(p appPath) string { return "clear the " + p.flag + " directory" })
}

func clearablePaths() []appPath {
	return lo.Filter(appPaths, func(p appPath, _ int) bool { return p.clearable })
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached files, player sockets and logs",
	Run: func(cmd *cobra.Command, args []string) {
		selected := selectedPaths(cmd, clearablePaths())
		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, p := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), p.flag))
			err := filesystem.API().RemoveAll(p.location())
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(p.flag))
		}
	},
}
