// Package where resolves the directories playcheck reads and writes.
// Every directory returned is created on first use.
package where

import (
	"os"
	"path/filepath"

	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "PLAYCHECK_CONFIG_PATH"

func mkdir(elem ...string) string {
	dir := filepath.Join(elem...)
	lo.Must0(filesystem.API().MkdirAll(dir, os.ModePerm))
	return dir
}

func userDir(resolve func() (string, error), fallback string) string {
	if dir, err := resolve(); err == nil {
		return dir
	}
	return fallback
}

func Config() string {
	if dir, ok := os.LookupEnv(EnvConfigPath); ok && dir != "" {
		return mkdir(dir)
	}
	return mkdir(userDir(os.UserConfigDir, "."), constant.Playcheck)
}

func Cache() string {
	return mkdir(userDir(os.UserCacheDir, "cache"), constant.Playcheck)
}

func Logs() string {
	return mkdir(Config(), "logs")
}

// Schedules holds the user's Lua action schedules.
func Schedules() string {
	return mkdir(Config(), "schedules")
}

// Reports is the JSON file of saved session results. Unlike the others it is a file path.
func Reports() string {
	return filepath.Join(Cache(), "reports.json")
}

// Temp holds player IPC sockets.
func Temp() string {
	return mkdir(os.TempDir(), constant.Playcheck)
}
