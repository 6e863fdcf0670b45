package usecase

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"

	"pomo/internal/modules/settings/domain"
	"pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
	settingsout "pomo/internal/modules/settings/port/out"
	"pomo/internal/modules/settings/service"
	apperrors "pomo/internal/platform/errors"
)

type Interactor struct {
	svc    *service.SettingsService
	timer  settingsout.TimerGuard
	eraser settingsout.HistoryEraser
	log    hclog.Logger
}

// NewInteractor wires the settings usecase. timer and eraser may be nil, in
// which case mutations are never locked and history is left alone.
func NewInteractor(svc *service.SettingsService, timer settingsout.TimerGuard, eraser settingsout.HistoryEraser, log hclog.Logger) settingsin.Usecase {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Interactor{svc: svc, timer: timer, eraser: eraser, log: log}
}

func (i *Interactor) Get(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.svc.Get(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(settings), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	if err := i.ensureUnlocked(ctx); err != nil {
		return dto.SettingsOutput{}, err
	}
	settings, err := i.svc.Update(ctx, toPatch(input))
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	if !domain.CanPersist(settings.PrivacyMode) && i.eraser != nil {
		if err := i.eraser.Clear(ctx); err != nil {
			return dto.SettingsOutput{}, err
		}
		i.log.Info("history cleared", "privacy_mode", settings.PrivacyMode)
	}
	return toOutput(settings), nil
}

func (i *Interactor) AddPreset(ctx context.Context, input dto.PresetInput) (dto.PresetOutput, error) {
	if err := i.ensureUnlocked(ctx); err != nil {
		return dto.PresetOutput{}, err
	}
	preset, err := i.svc.AddPreset(ctx, fromInput(input))
	if err != nil {
		return dto.PresetOutput{}, err
	}
	return presetOutput(preset, true), i.syncIdle(ctx)
}

func (i *Interactor) UpdatePreset(ctx context.Context, input dto.PresetInput) (dto.PresetOutput, error) {
	if err := i.ensureUnlocked(ctx); err != nil {
		return dto.PresetOutput{}, err
	}
	preset, err := i.svc.UpdatePreset(ctx, fromInput(input))
	if err != nil {
		return dto.PresetOutput{}, err
	}
	settings, err := i.svc.Get(ctx)
	if err != nil {
		return dto.PresetOutput{}, err
	}
	active := settings.ActivePresetID == preset.ID
	if active {
		if err := i.syncIdle(ctx); err != nil {
			return dto.PresetOutput{}, err
		}
	}
	return presetOutput(preset, active), nil
}

func (i *Interactor) SelectPreset(ctx context.Context, id string) (dto.PresetOutput, error) {
	if err := i.ensureUnlocked(ctx); err != nil {
		return dto.PresetOutput{}, err
	}
	preset, changed, err := i.svc.SelectPreset(ctx, id)
	if err != nil {
		return dto.PresetOutput{}, err
	}
	if changed {
		if err := i.syncIdle(ctx); err != nil {
			return dto.PresetOutput{}, err
		}
	}
	return presetOutput(preset, true), nil
}

func (i *Interactor) RenamePreset(ctx context.Context, id, name string) (dto.PresetOutput, error) {
	if err := i.ensureUnlocked(ctx); err != nil {
		return dto.PresetOutput{}, err
	}
	preset, err := i.svc.RenamePreset(ctx, id, name)
	if err != nil {
		return dto.PresetOutput{}, err
	}
	settings, err := i.svc.Get(ctx)
	if err != nil {
		return dto.PresetOutput{}, err
	}
	return presetOutput(preset, settings.ActivePresetID == preset.ID), nil
}

func (i *Interactor) DeletePreset(ctx context.Context, id string) error {
	if err := i.ensureUnlocked(ctx); err != nil {
		return err
	}
	activeChanged, err := i.svc.DeletePreset(ctx, id)
	if err != nil {
		return err
	}
	if activeChanged {
		return i.syncIdle(ctx)
	}
	return nil
}

func (i *Interactor) ensureUnlocked(ctx context.Context) error {
	if i.timer == nil {
		return nil
	}
	active, err := i.timer.WorkActive(ctx)
	if err != nil {
		return err
	}
	if active {
		return apperrors.ErrSettingsLocked
	}
	return nil
}

func (i *Interactor) syncIdle(ctx context.Context) error {
	if i.timer == nil {
		return nil
	}
	return i.timer.SyncIdle(ctx)
}

func toPatch(input dto.UpdateInput) domain.Patch {
	patch := domain.Patch{
		AutoStartBreaks:  input.AutoStartBreaks,
		AutoStartWork:    input.AutoStartWork,
		StrictPauseLimit: input.StrictPauseLimit,
	}
	if input.FocusMode != nil {
		v := domain.FocusMode(*input.FocusMode)
		patch.FocusMode = &v
	}
	if input.Sound != nil {
		v := domain.Sound(*input.Sound)
		patch.Sound = &v
	}
	if input.PrivacyMode != nil {
		v := domain.PrivacyMode(*input.PrivacyMode)
		patch.PrivacyMode = &v
	}
	if input.AnalyticsConsent != nil {
		v := domain.AnalyticsConsent(*input.AnalyticsConsent)
		patch.AnalyticsConsent = &v
	}
	return patch
}

func fromInput(input dto.PresetInput) domain.Preset {
	return domain.Preset{
		ID:                input.ID,
		Name:              input.Name,
		WorkMinutes:       input.WorkMinutes,
		ShortBreakMinutes: input.ShortBreakMinutes,
		LongBreakMinutes:  input.LongBreakMinutes,
		LongBreakInterval: input.LongBreakInterval,
	}
}

func presetOutput(p domain.Preset, active bool) dto.PresetOutput {
	return dto.PresetOutput{
		ID:                p.ID,
		Name:              p.Name,
		WorkMinutes:       p.WorkMinutes,
		ShortBreakMinutes: p.ShortBreakMinutes,
		LongBreakMinutes:  p.LongBreakMinutes,
		LongBreakInterval: p.LongBreakInterval,
		Active:            active,
	}
}

func toOutput(s domain.Settings) dto.SettingsOutput {
	presets := make([]dto.PresetOutput, 0, len(s.Presets))
	for _, p := range s.Presets {
		presets = append(presets, presetOutput(p, p.ID == s.ActivePresetID))
	}
	return dto.SettingsOutput{
		Presets:          presets,
		ActivePreset:     presetOutput(s.ActivePreset(), true),
		AutoStartBreaks:  s.AutoStartBreaks,
		AutoStartWork:    s.AutoStartWork,
		FocusMode:        string(s.FocusMode),
		StrictPauseLimit: s.StrictPauseLimit,
		Sound:            string(s.Sound),
		PrivacyMode:      string(s.PrivacyMode),
		AnalyticsConsent: string(s.AnalyticsConsent),
		PersistHistory:   domain.CanPersist(s.PrivacyMode),
		TrackAnalytics:   domain.CanTrackAnalytics(s.PrivacyMode, s.AnalyticsConsent),
		ReportCrashes:    domain.CanReportCrash(s.PrivacyMode),
	}
}
