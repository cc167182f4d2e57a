// Package key names every viper setting. Values are dotted "section.name" paths.
package key

const (
	IconsVariant = "icons.variant"
)

const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Player settings apply to the mpv process spawned for a session.
const (
	Player               = "player.default"
	PlayerVideoOutput    = "player.video_output"
	PlayerStrictAudioPTS = "player.strict_audio_timestamps"
)

const (
	SessionFullPlayback   = "session.full_playback"
	SessionPollIntervalMs = "session.poll_interval_ms"
	SessionTimeoutSeconds = "session.timeout_seconds"
)

const (
	ReportsSave = "reports.save"
	TUIEnabled  = "tui.enabled"
)
