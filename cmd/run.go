package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/playcheck-cli/playcheck/color"
	"github.com/playcheck-cli/playcheck/host"
	"github.com/playcheck-cli/playcheck/icon"
	"github.com/playcheck-cli/playcheck/key"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/playcheck-cli/playcheck/player"
	"github.com/playcheck-cli/playcheck/report"
	"github.com/playcheck-cli/playcheck/schedule/script"
	"github.com/playcheck-cli/playcheck/session"
	"github.com/playcheck-cli/playcheck/source"
	"github.com/playcheck-cli/playcheck/style"
	"github.com/playcheck-cli/playcheck/tui"
	"github.com/playcheck-cli/playcheck/util"
	"github.com/playcheck-cli/playcheck/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("tag", "t", "", "Label of the session, defaults to the media file name")
	runCmd.Flags().StringP("schedule", "s", "", "Lua schedule script (path or name of a saved schedule)")
	lo.Must0(runCmd.RegisterFlagCompletionFunc("schedule", completionSchedules))

	runCmd.Flags().BoolP("full-playback", "f", true, "Check the playing time against the media duration")
	lo.Must0(viper.BindPFlag(key.SessionFullPlayback, runCmd.Flags().Lookup("full-playback")))

	runCmd.Flags().Int("timeout", 0, "Abort the session after this many seconds")
	lo.Must0(viper.BindPFlag(key.SessionTimeoutSeconds, runCmd.Flags().Lookup("timeout")))

	runCmd.Flags().String("vo", "", "Video output handed to the player")
	lo.Must0(viper.BindPFlag(key.PlayerVideoOutput, runCmd.Flags().Lookup("vo")))

	runCmd.Flags().Bool("strict-audio", true, "Do not let the player correct spurious audio timestamps")
	lo.Must0(viper.BindPFlag(key.PlayerStrictAudioPTS, runCmd.Flags().Lookup("strict-audio")))

	runCmd.Flags().Bool("save", true, "Persist the verdict to the reports store")
	lo.Must0(viper.BindPFlag(key.ReportsSave, runCmd.Flags().Lookup("save")))

	runCmd.Flags().Bool("tui", true, "Show the live status view when running in a terminal")
	lo.Must0(viper.BindPFlag(key.TUIEnabled, runCmd.Flags().Lookup("tui")))
}

var runCmd = &cobra.Command{
	Use:   "run [media]",
	Short: "Play media and check what the player did",
	Long: `Play a local file or a URL with the configured player, watch its state and decoder counters,
and check the measured playing time against the media duration.`,
	Args: cobra.ExactArgs(1),
	Example: `  playcheck run ./clip.mp4
  playcheck run --full-playback=false --schedule pause-resume https://example.com/clip.mp4`,
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]

		cfg := player.Config{
			Executable:            viper.GetString(key.Player),
			StrictAudioTimestamps: viper.GetBool(key.PlayerStrictAudioPTS),
		}
		CheckDependencies(cfg.Executable)

		tag := lo.Must(cmd.Flags().GetString("tag"))
		if tag == "" {
			tag = util.FileStem(target)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		s := session.New(
			tag,
			viper.GetBool(key.SessionFullPlayback),
			probedSource(ctx, target, tag),
			session.WithPlayerConfig(cfg),
		)

		if name := lo.Must(cmd.Flags().GetString("schedule")); name != "" {
			sch, err := script.Load(resolveSchedule(name), tag)
			handleErr(err)
			s.SetSchedule(sch)
		}

		timeout := time.Duration(viper.GetInt(key.SessionTimeoutSeconds)) * time.Second
		opts := []host.Option{
			host.WithSurface(player.Surface{VideoOutput: viper.GetString(key.PlayerVideoOutput)}),
			host.WithPollInterval(time.Duration(viper.GetInt(key.SessionPollIntervalMs)) * time.Millisecond),
			host.WithTimeout(timeout),
		}

		var verdict error
		if viper.GetBool(key.TUIEnabled) && util.IsTerminal() {
			verdict = runWithStatusView(ctx, cancel, s, target, timeout, opts)
		} else {
			verdict = runPlain(ctx, s, opts)
		}

		result := s.Result()
		if verdict != nil {
			result.Passed = false
			result.Failure = verdict.Error()
		}
		if result.FinishedAt.IsZero() {
			result.FinishedAt = time.Now()
		}

		if viper.GetBool(key.ReportsSave) {
			if err := report.Save(result); err != nil {
				log.Warnf("save report: %s", err)
			}
		}

		printResult(cmd, result)
		if verdict != nil {
			os.Exit(exitCode(verdict))
		}
	},
}

// probedSource builds the media for target and checks it can be read before playback.
func probedSource(ctx context.Context, target, tag string) session.SourceBuilder {
	return func(dsf *source.DataSourceFactory, meter *source.BandwidthMeter) (source.Media, error) {
		m, err := dsf.Media(target, tag)
		if err != nil {
			return source.Media{}, err
		}

		probe, err := dsf.Probe(ctx, m, meter)
		if err != nil {
			return source.Media{}, fmt.Errorf("probe %s: %w", target, err)
		}

		log.Tag(tag).Infof("probed %s: %d bytes, %q", m.URL, probe.Size, probe.ContentType)
		return m, nil
	}
}

func resolveSchedule(name string) string {
	if strings.ContainsRune(name, filepath.Separator) || strings.HasSuffix(name, ".lua") {
		return name
	}
	return filepath.Join(where.Schedules(), name+".lua")
}

func runPlain(ctx context.Context, s *session.Session, opts []host.Option) error {
	if !util.IsTerminal() {
		return host.Run(ctx, s, opts...)
	}

	var erase func()
	opts = append(opts, host.WithTick(func() {
		st := s.Status().Monitor
		if erase != nil {
			erase()
		}
		erase = util.PrintErasable(fmt.Sprintf(
			"%s %s %s played",
			icon.Get(icon.Progress),
			st.State,
			st.PlayingTime.Round(time.Second),
		))
	}))

	verdict := host.Run(ctx, s, opts...)
	if erase != nil {
		erase()
	}
	return verdict
}

func runWithStatusView(ctx context.Context, cancel func(), s *session.Session, target string, timeout time.Duration, opts []host.Option) error {
	var (
		statuses = make(chan session.Status, 1)
		done     = make(chan error, 1)
		verdict  = make(chan error, 1)
	)

	opts = append(opts, host.WithTick(func() {
		select {
		case <-statuses:
		default:
		}
		statuses <- s.Status()
	}))

	go func() {
		err := host.Run(ctx, s, opts...)
		close(statuses)
		done <- err
		verdict <- err
	}()

	if err := tui.Run(tui.Options{
		Tag:      s.Tag(),
		Media:    target,
		Timeout:  timeout,
		Statuses: statuses,
		Done:     done,
		Cancel:   cancel,
	}); err != nil {
		log.Warnf("status view: %s", err)
	}

	return <-verdict
}

func printResult(cmd *cobra.Command, r *report.Result) {
	sourceDuration := "unknown"
	if r.SourceDurationMs >= 0 {
		sourceDuration = (time.Duration(r.SourceDurationMs) * time.Millisecond).String()
	}

	verdict := style.Verdict(r.Passed)
	cmd.Printf("%s %s %s\n",
		verdict(icon.Get(lo.Ternary(r.Passed, icon.Success, icon.Fail))),
		style.Bold(verdict(r.Verdict())),
		style.Fg(color.Purple)(r.Tag),
	)
	if r.Failure != "" {
		cmd.Printf("  %s\n", verdict(r.Failure))
	}

	cmd.Printf("  %s %s played, media %s, finished: %s\n",
		icon.Get(icon.Clock),
		time.Duration(r.PlayingTimeMs)*time.Millisecond,
		sourceDuration,
		r.Reason,
	)
	cmd.Println(style.Faint("  video " + r.Video.String()))
	cmd.Println(style.Faint("  audio " + r.Audio.String()))
}
