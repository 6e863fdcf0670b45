package service

import (
	"context"
	"fmt"
	"strings"

	"pomo/internal/modules/settings/domain"
	settingsout "pomo/internal/modules/settings/port/out"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/id"
)

type SettingsService struct {
	idGen id.Generator
	store settingsout.Store
}

func NewSettingsService(idGen id.Generator, store settingsout.Store) *SettingsService {
	return &SettingsService{idGen: idGen, store: store}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return settings.Normalize(), nil
}

func (s *SettingsService) Update(ctx context.Context, patch domain.Patch) (domain.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	next, err := current.Apply(patch)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return next, s.store.Save(ctx, next)
}

func (s *SettingsService) AddPreset(ctx context.Context, preset domain.Preset) (domain.Preset, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Preset{}, err
	}
	next, added := current.AddPreset(s.idGen.New(), preset)
	return added, s.store.Save(ctx, next)
}

func (s *SettingsService) UpdatePreset(ctx context.Context, preset domain.Preset) (domain.Preset, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Preset{}, err
	}
	next, ok := current.UpdatePreset(preset)
	if !ok {
		return domain.Preset{}, presetNotFound(preset.ID)
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Preset{}, err
	}
	return find(next, preset.ID), nil
}

// SelectPreset activates id. Selecting an unknown id changes nothing and
// reports the preset that stays active.
func (s *SettingsService) SelectPreset(ctx context.Context, id string) (domain.Preset, bool, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Preset{}, false, err
	}
	next, ok := current.SelectPreset(id)
	if !ok || next.ActivePresetID == current.ActivePresetID {
		return current.ActivePreset(), false, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Preset{}, false, err
	}
	return next.ActivePreset(), true, nil
}

func (s *SettingsService) RenamePreset(ctx context.Context, id, name string) (domain.Preset, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Preset{}, err
	}
	next, ok := current.RenamePreset(id, name)
	if !ok {
		return domain.Preset{}, presetNotFound(id)
	}
	renamed := find(next, id)
	if renamed.Name == find(current, id).Name {
		return renamed, nil
	}
	return renamed, s.store.Save(ctx, next)
}

// DeletePreset reports whether the active preset changed as a result.
func (s *SettingsService) DeletePreset(ctx context.Context, id string) (bool, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	next, result := current.DeletePreset(id)
	switch result {
	case domain.DeleteUnknown:
		return false, presetNotFound(id)
	case domain.DeleteLast:
		return false, apperrors.ErrLastPreset
	}
	if err := s.store.Save(ctx, next); err != nil {
		return false, err
	}
	return next.ActivePresetID != current.ActivePresetID, nil
}

func presetNotFound(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: preset id is required", apperrors.ErrInvalidInput)
	}
	return fmt.Errorf("preset %q: %w", id, apperrors.ErrNotFound)
}

func find(settings domain.Settings, id string) domain.Preset {
	for _, p := range settings.Presets {
		if p.ID == id {
			return p
		}
	}
	return domain.Preset{}
}
