package in

import (
	"context"

	"pomo/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.SettingsOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error)
	AddPreset(ctx context.Context, input dto.PresetInput) (dto.PresetOutput, error)
	UpdatePreset(ctx context.Context, input dto.PresetInput) (dto.PresetOutput, error)
	SelectPreset(ctx context.Context, id string) (dto.PresetOutput, error)
	RenamePreset(ctx context.Context, id, name string) (dto.PresetOutput, error)
	DeletePreset(ctx context.Context, id string) error
}
