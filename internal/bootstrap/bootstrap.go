package bootstrap

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	historyinadapter "pomo/internal/modules/history/adapter/in"
	historyoutadapter "pomo/internal/modules/history/adapter/out"
	historyservice "pomo/internal/modules/history/service"
	historyusecase "pomo/internal/modules/history/usecase"
	hookinadapter "pomo/internal/modules/hook/adapter/in"
	hookoutadapter "pomo/internal/modules/hook/adapter/out"
	hookservice "pomo/internal/modules/hook/service"
	hookusecase "pomo/internal/modules/hook/usecase"
	settingsinadapter "pomo/internal/modules/settings/adapter/in"
	settingsoutadapter "pomo/internal/modules/settings/adapter/out"
	settingsservice "pomo/internal/modules/settings/service"
	settingsusecase "pomo/internal/modules/settings/usecase"
	timerinadapter "pomo/internal/modules/timer/adapter/in"
	timeroutadapter "pomo/internal/modules/timer/adapter/out"
	timerservice "pomo/internal/modules/timer/service"
	timerusecase "pomo/internal/modules/timer/usecase"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/config"
	"pomo/internal/platform/id"
	"pomo/internal/platform/logging"
	"pomo/internal/platform/sqlite"
	uiapp "pomo/internal/ui/app"
)

type App struct {
	TimerCLI    timerinadapter.CLIHandler
	TimerTUI    timerinadapter.TUIHandler
	SettingsCLI settingsinadapter.CLIHandler
	HistoryCLI  historyinadapter.CLIHandler
	HookCLI     hookinadapter.CLIHandler

	db *sql.DB
}

// New wires every module. Logs go to logOut; pass nil for stderr.
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	if logOut == nil {
		logOut = os.Stderr
	}
	log := logging.New(cfg.LogLevel, logOut)
	clk := clock.SystemClock{}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(
		clk,
		historyoutadapter.NewSQLiteHistoryStore(db),
		nil,
	))

	// Settings needs the timer to enforce the work lock and the timer needs
	// settings for its durations; the guard is bound once both exist.
	guard := settingsoutadapter.NewTimerGuard()
	settingsUC := settingsusecase.NewInteractor(
		settingsservice.NewSettingsService(id.NewULID(), settingsoutadapter.NewYAMLSettingsStore(cfg.SettingsPath)),
		guard,
		settingsoutadapter.NewHistoryEraser(historyUC),
		log.Named("settings"),
	)

	hookUC := hookusecase.NewInteractor(hookservice.NewHookService(
		hookoutadapter.NewFileManifestStore(cfg.HooksDir),
		hookoutadapter.NewGRPCHost(log.Named("hook")),
		hookservice.WithLogger(log.Named("hook")),
	))

	timerLog := log.Named("timer")
	controller := timerservice.NewController(
		clk,
		timeroutadapter.NewFileStateStore(cfg.StatePath),
		timeroutadapter.NewSettingsConfigSource(settingsUC),
		timeroutadapter.NewSQLiteNotifier(db, clk),
		timeroutadapter.NewHistoryRecorder(historyUC),
		timerservice.WithCue(timeroutadapter.NewChimeCue(timerLog)),
		timerservice.WithHooks(timeroutadapter.NewHookDispatcher(hookUC)),
		timerservice.WithLogger(timerLog),
	)
	timerUC := timerusecase.NewInteractor(
		controller,
		timerservice.WithInterval(cfg.TickInterval),
		timerservice.WithTickerLogger(timerLog),
	)
	guard.Bind(timerUC)

	return &App{
		TimerCLI:    timerinadapter.NewCLIHandler(timerUC),
		TimerTUI:    timerinadapter.NewTUIHandler(timerUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		HistoryCLI:  historyinadapter.NewCLIHandler(historyUC),
		HookCLI:     hookinadapter.NewCLIHandler(hookUC),
		db:          db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TimerTUI, app.SettingsCLI, 0)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
