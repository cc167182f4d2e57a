package version

import (
	"fmt"

	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/key"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/playcheck-cli/playcheck/util"
	"github.com/spf13/viper"
)

// Outdated reports whether a release newer than the running build exists.
func Outdated() (latest string, outdated bool) {
	latest, err := Latest()
	if err != nil {
		return "", false
	}

	comp, err := Compare(latest, constant.Version)
	return latest, err == nil && comp > 0
}

// Notify prints an upgrade hint when cli.version_check is on and a newer release exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(icon.Get(icon.Progress) + " Looking for updates...")
	latest, outdated := Outdated()
	erase()

	if !outdated {
		return
	}

	fmt.Printf("\n%s %s %s\n%s\n\n",
		style.Fg(color.Green)("Update available:"),
		style.Bold(constant.Version+" → "+latest),
		icon.Get(icon.Success),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}
