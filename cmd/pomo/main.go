package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pomo/internal/bootstrap"
	settingsinadapter "pomo/internal/modules/settings/adapter/in"
	settingsdto "pomo/internal/modules/settings/dto"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "pomo",
		Short:         "Pomodoro timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir(), "data directory for settings, state and history")

	root.AddCommand(newTimerCmds(&dataDir)...)
	root.AddCommand(newInterruptCmd(&dataDir))
	root.AddCommand(newPresetCmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newHookCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newRunCmd(&dataDir))
	return root
}

func loadApp(dataDir string, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logOut)
}

// withApp opens the app for the duration of fn.
func withApp(dataDir string, fn func(*bootstrap.App) error) error {
	app, err := loadApp(dataDir, nil)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

// ─── timer ───────────────────────────────────────────────────────────────────

func newTimerCmds(dataDir *string) []*cobra.Command {
	simple := func(use, short string, op func(*bootstrap.App, context.Context) (timerdto.StateOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(*dataDir, func(app *bootstrap.App) error {
					out, err := op(app, cmd.Context())
					if err != nil {
						return err
					}
					printState(cmd.OutOrStdout(), out)
					return nil
				})
			},
		}
	}

	start := simple("start", "Start a session, or resume a paused one", func(a *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
		return a.TimerCLI.Start(ctx)
	})
	pause := simple("pause", "Pause the running session", func(a *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
		return a.TimerCLI.Pause(ctx)
	})
	resume := simple("resume", "Resume a paused session", func(a *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
		return a.TimerCLI.Resume(ctx)
	})
	sync := simple("sync", "Resolve phases that ended while pomo was not running", func(a *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
		return a.TimerCLI.Sync(ctx)
	})

	var reason string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset the current phase to idle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.TimerCLI.Reset(cmd.Context(), reason)
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	reset.Flags().StringVar(&reason, "reason", "", "warning to record: call_interrupted|time_changed")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the timer and any scheduled notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.TimerCLI.Status(cmd.Context())
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), out)
				pending, ok, err := app.TimerCLI.Pending(cmd.Context())
				if err != nil {
					return err
				}
				if ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notification: %q at %s\n", pending.Title, pending.FireAt.Local().Format(time.Kitchen))
				}
				return nil
			})
		},
	}

	return []*cobra.Command{start, pause, resume, reset, status, sync}
}

func newInterruptCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:       "interrupt <call|time-change>",
		Short:     "Report an interruption that resets the current session",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"call", "time-change"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.TimerCLI.Interrupt(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func printState(w io.Writer, out timerdto.StateOutput) {
	for _, phase := range out.Completed {
		_, _ = fmt.Fprintf(w, "completed %s\n", phase)
	}
	secs := (out.RemainingMs + 999) / 1000
	_, _ = fmt.Fprintf(w, "%s %s %02d:%02d %s preset=%q\n", out.Phase, out.Status, secs/60, secs%60, out.CycleLabel, out.PresetName)
	if out.PausesLeft >= 0 && out.Phase == "work" {
		_, _ = fmt.Fprintf(w, "pauses left: %d\n", out.PausesLeft)
	}
	if out.Banner != "" {
		_, _ = fmt.Fprintf(w, "warning: session reset (%s)\n", out.Banner)
	}
}

// ─── presets and settings ────────────────────────────────────────────────────

func newPresetCmd(dataDir *string) *cobra.Command {
	preset := &cobra.Command{Use: "preset", Short: "Manage timer presets"}

	preset.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				presets, err := app.SettingsCLI.ListPresets(cmd.Context())
				if err != nil {
					return err
				}
				for _, p := range presets {
					printPreset(cmd.OutOrStdout(), p)
				}
				return nil
			})
		},
	})

	var input settingsdto.PresetInput
	bindPresetFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&input.Name, "name", "", "preset name")
		c.Flags().IntVar(&input.WorkMinutes, "work", 25, "work minutes")
		c.Flags().IntVar(&input.ShortBreakMinutes, "short", 5, "short break minutes")
		c.Flags().IntVar(&input.LongBreakMinutes, "long", 15, "long break minutes")
		c.Flags().IntVar(&input.LongBreakInterval, "interval", 4, "work sessions before a long break")
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a preset and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SettingsCLI.AddPreset(cmd.Context(), input)
				if err != nil {
					return err
				}
				printPreset(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	bindPresetFlags(add)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a preset's durations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				merged, err := mergePresetFlags(cmd, app.SettingsCLI, args[0], input)
				if err != nil {
					return err
				}
				out, err := app.SettingsCLI.UpdatePreset(cmd.Context(), merged)
				if err != nil {
					return err
				}
				printPreset(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	bindPresetFlags(update)

	presetOp := func(use, short string, nargs int, op func(*bootstrap.App, context.Context, []string) (settingsdto.PresetOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(*dataDir, func(app *bootstrap.App) error {
					out, err := op(app, cmd.Context(), args)
					if err != nil {
						return err
					}
					printPreset(cmd.OutOrStdout(), out)
					return nil
				})
			},
		}
	}

	selectCmd := presetOp("select <id>", "Make a preset active", 1, func(a *bootstrap.App, ctx context.Context, args []string) (settingsdto.PresetOutput, error) {
		return a.SettingsCLI.SelectPreset(ctx, args[0])
	})
	rename := presetOp("rename <id> <name>", "Rename a preset", 2, func(a *bootstrap.App, ctx context.Context, args []string) (settingsdto.PresetOutput, error) {
		return a.SettingsCLI.RenamePreset(ctx, args[0], args[1])
	})

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if err := app.SettingsCLI.DeletePreset(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	preset.AddCommand(add, update, selectCmd, rename, del)
	return preset
}

// mergePresetFlags starts from the stored preset and overlays only the flags
// the user actually passed.
func mergePresetFlags(cmd *cobra.Command, handler settingsinadapter.CLIHandler, id string, flags settingsdto.PresetInput) (settingsdto.PresetInput, error) {
	presets, err := handler.ListPresets(cmd.Context())
	if err != nil {
		return settingsdto.PresetInput{}, err
	}
	merged := settingsdto.PresetInput{ID: id}
	for _, p := range presets {
		if p.ID == id {
			merged = settingsdto.PresetInput{
				ID:                p.ID,
				Name:              p.Name,
				WorkMinutes:       p.WorkMinutes,
				ShortBreakMinutes: p.ShortBreakMinutes,
				LongBreakMinutes:  p.LongBreakMinutes,
				LongBreakInterval: p.LongBreakInterval,
			}
			break
		}
	}
	changed := cmd.Flags().Changed
	if changed("name") {
		merged.Name = flags.Name
	}
	if changed("work") {
		merged.WorkMinutes = flags.WorkMinutes
	}
	if changed("short") {
		merged.ShortBreakMinutes = flags.ShortBreakMinutes
	}
	if changed("long") {
		merged.LongBreakMinutes = flags.LongBreakMinutes
	}
	if changed("interval") {
		merged.LongBreakInterval = flags.LongBreakInterval
	}
	return merged, nil
}

func printPreset(w io.Writer, p settingsdto.PresetOutput) {
	marker := " "
	if p.Active {
		marker = "*"
	}
	_, _ = fmt.Fprintf(w, "%s %s %q work=%dm short=%dm long=%dm interval=%d\n",
		marker, p.ID, p.Name, p.WorkMinutes, p.ShortBreakMinutes, p.LongBreakMinutes, p.LongBreakInterval)
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Show or change settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SettingsCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one setting (" + strings.Join(settingsinadapter.Keys, ", ") + ")",
		Args:      cobra.ExactArgs(2),
		ValidArgs: settingsinadapter.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SettingsCLI.Set(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return settings
}

func printSettings(w io.Writer, s settingsdto.SettingsOutput) {
	_, _ = fmt.Fprintf(w, "preset: %s (%s)\n", s.ActivePreset.Name, s.ActivePreset.ID)
	_, _ = fmt.Fprintf(w, "focus-mode: %s\n", s.FocusMode)
	_, _ = fmt.Fprintf(w, "strict-pause-limit: %d\n", s.StrictPauseLimit)
	_, _ = fmt.Fprintf(w, "auto-start-breaks: %t\n", s.AutoStartBreaks)
	_, _ = fmt.Fprintf(w, "auto-start-work: %t\n", s.AutoStartWork)
	_, _ = fmt.Fprintf(w, "sound: %s\n", s.Sound)
	_, _ = fmt.Fprintf(w, "privacy-mode: %s (history %s)\n", s.PrivacyMode, onOff(s.PersistHistory))
	_, _ = fmt.Fprintf(w, "analytics-consent: %s (analytics %s, crash reports %s)\n",
		s.AnalyticsConsent, onOff(s.TrackAnalytics), onOff(s.ReportCrashes))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// ─── history ─────────────────────────────────────────────────────────────────

func newStatsCmd(dataDir *string) *cobra.Command {
	var rangeName, from, to string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show completed work sessions per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.HistoryCLI.Stats(cmd.Context(), rangeName, from, to)
				if err != nil {
					return err
				}
				for _, day := range out.Days {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %3d %s\n", day.Date, day.CompletedWorkSessions, strings.Repeat("▇", day.CompletedWorkSessions))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total %d (%s..%s)\n", out.Total, out.Start, out.End)
				return nil
			})
		},
	}
	stats.Flags().StringVar(&rangeName, "range", "7", "timeframe: 7|30")
	stats.Flags().StringVar(&from, "from", "", "custom range start YYYY-MM-DD")
	stats.Flags().StringVar(&to, "to", "", "custom range end YYYY-MM-DD")
	return stats
}

// ─── hooks ───────────────────────────────────────────────────────────────────

func newHookCmd(dataDir *string) *cobra.Command {
	hook := &cobra.Command{Use: "hook", Short: "Inspect notification hooks"}

	hook.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List hooks from the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				hooks, err := app.HookCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(hooks) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks")
					return nil
				}
				for _, h := range hooks {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t capabilities=%s binary=%s\n",
						h.Name, h.Version, h.Enabled, strings.Join(h.Capabilities, ","), h.Binary)
				}
				return nil
			})
		},
	})

	hook.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check hook binaries, checksums and handshake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				results, err := app.HookCLI.Doctor(cmd.Context())
				if err != nil {
					return err
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s binary=%t checksum=%t lifecycle=%t", r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})

	var kind string
	testCmd := &cobra.Command{
		Use:   "test <name>",
		Short: "Send a synthetic event to one hook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if err := app.HookCLI.Test(cmd.Context(), args[0], kind, time.Now().UnixMilli()); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s accepted %s\n", args[0], kind)
				return nil
			})
		},
	}
	testCmd.Flags().StringVar(&kind, "kind", "session-completed", "event kind")
	hook.AddCommand(testCmd)
	return hook
}

// ─── long-running ────────────────────────────────────────────────────────────

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the pomo terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// The alternate screen owns the terminal, so logs go to a file.
			if err := os.MkdirAll(*dataDir, 0o755); err != nil {
				return err
			}
			logFile, err := os.OpenFile(filepath.Join(*dataDir, "pomo.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()

			app, err := loadApp(*dataDir, logFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newRunCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Drive the timer headlessly until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(*dataDir, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				first, lastBanner := true, ""
				return app.TimerCLI.Run(ctx, func(out timerdto.StateOutput) {
					if first || len(out.Completed) > 0 || out.Banner != lastBanner {
						printState(w, out)
					}
					first, lastBanner = false, out.Banner
				})
			})
		},
	}
}
