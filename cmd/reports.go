package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/AlecAivazis/survey/v2"
	"github.com/invopop/jsonschema"
	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/report"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/playcheck-cli/playcheck/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportsCmd)
}

var reportsCmd = &cobra.Command{
	Use:     "reports",
	Aliases: []string{"report"},
	Short:   "Inspect the verdicts of past sessions",
}

func init() {
	reportsCmd.AddCommand(reportsListCmd)

	reportsListCmd.Flags().StringP("query", "q", "", "Keep the reports whose tag or media fuzzily match")
	reportsListCmd.Flags().BoolP("failed", "f", false, "Keep failed sessions only")
	reportsListCmd.Flags().IntP("limit", "n", 0, "Show at most this many reports")
	reportsListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")

	reportsListCmd.SetOut(os.Stdout)
}

var reportsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved session reports, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		results, err := report.All()
		handleErr(err)

		results = report.Filter(results, lo.Must(cmd.Flags().GetString("query")))
		if lo.Must(cmd.Flags().GetBool("failed")) {
			results = report.Failed(results)
		}
		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(results) > limit {
			results = results[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(results))
			return
		}

		if len(results) == 0 {
			cmd.Println(style.Faint("No reports"))
			return
		}

		for _, r := range results {
			mark := style.Verdict(r.Passed)(icon.Get(lo.Ternary(r.Passed, icon.Success, icon.Fail)))

			cmd.Printf("%s %s %s %s\n",
				mark,
				style.Fg(color.Purple)(r.Tag),
				style.Faint(r.StartedAt.Format("2006-01-02 15:04:05")),
				style.Faint(r.Media),
			)
			if r.Failure != "" {
				cmd.Printf("  %s\n", style.Fg(color.Red)(r.Failure))
			}
		}

		failed := len(report.Failed(results))
		cmd.Printf("\n%s, %s\n",
			util.Quantify(len(results), "report", "reports"),
			style.Verdict(failed == 0)(util.Quantify(failed, "failure", "failures")),
		)
	},
}

var reportsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of a saved report",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}

		schema := reflector.Reflect([]*report.Result{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}

func init() {
	reportsCmd.AddCommand(reportsSchemaCmd)
	reportsCmd.AddCommand(reportsClearCmd)

	reportsClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var reportsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved report",
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("yes")) {
			confirm := survey.Confirm{
				Message: "Delete every saved report?",
				Default: false,
			}
			var response bool
			handleErr(survey.AskOne(&confirm, &response))

			if !response {
				return
			}
		}

		handleErr(report.Clear())
		fmt.Printf("%s reports cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
