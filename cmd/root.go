// Package cmd implements the command line interface of playcheck.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/host"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/key"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/playcheck-cli/playcheck/session"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/playcheck-cli/playcheck/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes of a failed session.
const (
	exitFailed     = 1
	exitPlayer     = 2
	exitIncomplete = 3
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Playcheck,
	Short: "Playback monitoring harness for media players",
	Long: constant.Banner + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Play media, watch the player, check the playing time"),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(exitFailed)
	}
}

// handleErr prints err and exits when it is not nil.
func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.TrimSpace(err.Error()))
	os.Exit(exitCode(err))
}

// exitCode tells a player failure and an unfinished session apart from a failed check.
func exitCode(err error) int {
	switch {
	case errors.Is(err, session.ErrPlayerFatal):
		return exitPlayer
	case errors.Is(err, host.ErrTimeout):
		return exitIncomplete
	default:
		return exitFailed
	}
}
