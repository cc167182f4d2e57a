// Package prune removes stale files left behind by earlier runs.
package prune

import (
	"os"
	"time"

	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/playcheck-cli/playcheck/where"
	"github.com/spf13/afero"
)

const (
	// SocketTTL is how long an mpv socket may outlive the session that created it.
	SocketTTL = 24 * time.Hour

	// LogTTL is how long daily log files are kept.
	LogTTL = 30 * 24 * time.Hour
)

// Stale removes the regular files under dir last modified before now-ttl.
// It returns how many files were removed.
func Stale(dir string, ttl time.Duration, now time.Time) (int, error) {
	fs := filesystem.API()

	var stale []string
	err := fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if now.Sub(info.ModTime()) > ttl {
			stale = append(stale, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, path := range stale {
		if err := fs.Remove(path); err != nil {
			log.Warnf("prune %s: %s", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}

// CollectGarbage prunes orphaned player sockets and old logs.
func CollectGarbage() {
	now := time.Now()
	for dir, ttl := range map[string]time.Duration{
		where.Temp(): SocketTTL,
		where.Logs(): LogTTL,
	} {
		if exists, _ := afero.DirExists(filesystem.API(), dir); !exists {
			continue
		}
		if n, err := Stale(dir, ttl, now); err != nil {
			log.Warnf("prune %s: %s", dir, err)
		} else if n > 0 {
			log.Infof("pruned %d stale files from %s", n, dir)
		}
	}
}
