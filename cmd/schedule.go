package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/open"
	"github.com/playcheck-cli/playcheck/schedule/script"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/playcheck-cli/playcheck/util"
	"github.com/playcheck-cli/playcheck/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const scheduleExtension = ".lua"

func savedSchedules() ([]string, error) {
	entries, err := filesystem.API().ReadDir(where.Schedules())
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(entries, func(item os.FileInfo, _ int) (string, bool) {
		name := item.Name()
		if item.IsDir() || !strings.HasSuffix(name, scheduleExtension) {
			return "", false
		}
		return util.FileStem(name), true
	}), nil
}

func completionSchedules(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names, err := savedSchedules()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveDefault
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage Lua schedules of timed player actions",
}

func init() {
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleListCmd.SetOut(os.Stdout)
}

var scheduleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the schedules saved in the schedules directory",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := savedSchedules()
		handleErr(err)

		for _, name := range names {
			cmd.Printf("%s %s\n", icon.Get(icon.Lua), name)
		}
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleCheckCmd)
	scheduleCheckCmd.SetOut(os.Stdout)
}

var scheduleCheckCmd = &cobra.Command{
	Use:               "check [schedule]",
	Short:             "Load a schedule and print the actions it would run",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSchedules,
	Run: func(cmd *cobra.Command, args []string) {
		path := resolveSchedule(args[0])

		sch, err := script.Load(path, util.FileStem(path))
		handleErr(err)

		cmd.Printf("%s %s %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(path),
			style.Faint(util.Quantify(len(sch.Steps()), "action", "actions")),
		)
		if len(sch.Steps()) > 0 {
			cmd.Println(sch.String())
		}
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleRemoveCmd)

	scheduleRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Name of the schedule(s) to remove")
	lo.Must0(scheduleRemoveCmd.RegisterFlagCompletionFunc("name", completionSchedules))
}

var scheduleRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove saved schedules",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Schedules(), name+scheduleExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleNewCmd)

	scheduleNewCmd.Flags().StringP("name", "n", "", "Name of the new schedule")
	scheduleNewCmd.Flags().BoolP("edit", "e", false, "Open the new schedule in your editor")
	lo.Must0(scheduleNewCmd.MarkFlagRequired("name"))
}

var scheduleNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Scaffold a new schedule script from the template",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name              string
			Author            string
			ScheduleActionsFn string
		}{
			Name:              lo.Must(cmd.Flags().GetString("name")),
			Author:            author,
			ScheduleActionsFn: constant.ScheduleActionsFn,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    func(items ...int) int { return lo.Max(items) },
		}

		tmpl, err := template.New("schedule").Funcs(funcMap).Parse(constant.ScheduleTemplate)
		handleErr(err)

		target := filepath.Join(where.Schedules(), util.SanitizeFilename(s.Name)+scheduleExtension)
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Println(target)

		if lo.Must(cmd.Flags().GetBool("edit")) {
			handleErr(open.Edit(target))
		}
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleEditCmd)
}

var scheduleEditCmd = &cobra.Command{
	Use:               "edit [schedule]",
	Short:             "Open a schedule in your editor",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSchedules,
	Run: func(cmd *cobra.Command, args []string) {
		path := resolveSchedule(args[0])

		exists, err := filesystem.API().Exists(path)
		handleErr(err)
		if !exists {
			handleErr(fmt.Errorf("schedule %s not found", path))
		}

		handleErr(open.Edit(path))
	},
}
