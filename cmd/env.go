package cmd

import (
	"os"

	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/config"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/playcheck-cli/playcheck/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)

	envCmd.Flags().BoolP("set-only", "s", false, "Show set variables only")
	envCmd.Flags().BoolP("unset-only", "u", false, "Show unset variables only")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")

	envCmd.SetOut(os.Stdout)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the environment variables playcheck reads",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
		)

		envs := lo.MapToSlice(config.Default, func(_ string, f config.Field) string {
			return f.Env()
		})
		envs = append(envs, where.EnvConfigPath)
		slices.Sort(envs)

		name := style.New().Bold(true).Foreground(color.Purple).Render
		for _, env := range envs {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(name(env), "=")
			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
