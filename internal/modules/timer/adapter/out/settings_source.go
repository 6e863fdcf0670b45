package out

import (
	"context"

	settingsin "pomo/internal/modules/settings/port/in"
	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
)

// SettingsConfigSource reads the transition options from the settings module
// on every call so edits made by other processes are picked up.
type SettingsConfigSource struct {
	settings settingsin.Usecase
}

func NewSettingsConfigSource(settings settingsin.Usecase) timerout.ConfigSource {
	return SettingsConfigSource{settings: settings}
}

func (s SettingsConfigSource) Options(ctx context.Context) (timerout.Options, error) {
	out, err := s.settings.Get(ctx)
	if err != nil {
		return timerout.Options{}, err
	}
	active := out.ActivePreset
	return timerout.Options{
		Config: domain.TransitionConfig{
			Preset: domain.Preset{
				ID:                active.ID,
				Name:              active.Name,
				WorkMinutes:       active.WorkMinutes,
				ShortBreakMinutes: active.ShortBreakMinutes,
				LongBreakMinutes:  active.LongBreakMinutes,
				LongBreakInterval: active.LongBreakInterval,
			},
			FocusMode:        domain.FocusMode(out.FocusMode),
			StrictPauseLimit: out.StrictPauseLimit,
			AutoStartBreaks:  out.AutoStartBreaks,
			AutoStartWork:    out.AutoStartWork,
		},
		Sound:          out.Sound,
		PersistHistory: out.PersistHistory,
	}, nil
}
