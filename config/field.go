package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/key"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered setting.
type Field struct {
	Key         string
	Value       any
	Description string

	// Allowed lists the accepted values of a string field. Empty means any.
	Allowed []string

	// Positive rejects zero for an int field. Negatives are always rejected.
	Positive bool
}

// Env returns the environment variable bound to the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Playcheck + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Parse converts raw command line values into the type of the default value.
func (f *Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: no value", f.Key)
	}

	switch f.Value.(type) {
	case string:
		if len(f.Allowed) > 0 && !lo.Contains(f.Allowed, raw[0]) {
			return nil, fmt.Errorf("%s: %q is not one of %s", f.Key, raw[0], strings.Join(f.Allowed, ", "))
		}
		return raw[0], nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", f.Key, raw[0])
		}
		if n < 0 {
			return nil, fmt.Errorf("%s: must not be negative", f.Key)
		}
		if n == 0 && f.Positive {
			return nil, fmt.Errorf("%s: must be greater than zero", f.Key)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean %q", f.Key, raw[0])
		}
		return b, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Env         string   `json:"env"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Allowed     []string `json:"allowed,omitempty"`
		Description string   `json:"description"`
	}{
		Key:         f.Key,
		Env:         f.Env(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Allowed:     f.Allowed,
		Description: f.Description,
	})
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

func register(k string, v any, desc string, allowed ...string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc, Allowed: allowed}
}

func registerPositive(k string, v int, desc string) {
	register(k, v, desc)
	f := Default[k]
	f.Positive = true
	Default[k] = f
}

func init() {
	register(key.IconsVariant, "plain", "Icons variant (nerd requires a nerd font)", icon.AvailableVariants()...)
	register(key.LogsWrite, false, "Write logs to the logs directory")
	register(key.LogsLevel, "info", "Log level, from less to most verbose", "panic", "fatal", "error", "warn", "info", "debug", "trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check if new version is available")
	register(key.Player, "mpv", "Executable of the player driven by sessions")
	register(key.PlayerVideoOutput, "null", "Video output handed to the player (mpv --vo value, e.g. gpu, null)")
	register(key.PlayerStrictAudioPTS, true, "Do not let the player correct spurious audio timestamps")
	register(key.SessionFullPlayback, true, "Check that the playing time matches the media duration.\nDisable for sessions that seek or stop early")
	registerPositive(key.SessionPollIntervalMs, 100, "Interval in milliseconds at which the host checks whether a session finished")
	register(key.SessionTimeoutSeconds, 0, "Abort a session after this many seconds. 0 disables the timeout")
	register(key.ReportsSave, true, "Persist session verdicts to the reports store")
	register(key.TUIEnabled, true, "Show the live session status view when running in a terminal")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"purple": style.Fg(color.Purple),
	"cyan":   style.Fg(color.Cyan),
	"join":   strings.Join,
	"value":  func(k string) any { return viper.Get(k) },
	"type":   func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			return style.Verdict(value)(strconv.FormatBool(value))
		case string:
			return style.Fg(color.Yellow)(strconv.Quote(value))
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ purple .Key }} {{ faint (type .Value) }}
{{ faint .Description }}
  {{ cyan "current" }} {{ hl (value .Key) }}
  {{ cyan "default" }} {{ hl .Value }}
  {{ cyan "env" }}     {{ .Env }}{{ if .Allowed }}
  {{ cyan "allowed" }} {{ join .Allowed ", " }}{{ end }}`))
