// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

import (
	_ "embed"
	"time"
)

const (
	// Playcheck is the canonical application identifier used for filesystem paths and CLI branding.
	Playcheck = "playcheck"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// Repository is the GitHub owner/name pair releases are published under.
	Repository = "playcheck-cli/playcheck"

	// UserAgent is the HTTP User-Agent sent by data sources built for a playback session.
	UserAgent = "PlaycheckPlaybackTests/" + Version
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = ""
	BuiltBy  = ""
	Revision = ""
)

// MaxPlayingTimeDiscrepancy is the tolerance between the measured playing time and the
// nominal media duration for sessions that play the media in full without seeking.
const MaxPlayingTimeDiscrepancy = 2000 * time.Millisecond

// Banner is printed above the root command help.
//
//go:embed ascii.txt
var Banner string

// GOOS values with their own install hints and opener commands.
const (
	Linux   = "linux"
	Darwin  = "darwin"
	Windows = "windows"
	Android = "android"
)
