package in

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	settingsdto "pomo/internal/modules/settings/dto"
	settingsin "pomo/internal/modules/settings/port/in"
	apperrors "pomo/internal/platform/errors"
)

// Keys accepted by Set, in display order.
var Keys = []string{
	"focus-mode",
	"strict-pause-limit",
	"auto-start-breaks",
	"auto-start-work",
	"sound",
	"privacy-mode",
	"analytics-consent",
}

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (settingsdto.SettingsOutput, error) {
	return h.usecase.Get(ctx)
}

// Set parses a single key/value pair from the command line and applies it.
func (h CLIHandler) Set(ctx context.Context, key, value string) (settingsdto.SettingsOutput, error) {
	input, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return settingsdto.SettingsOutput{}, err
	}
	return h.usecase.Update(ctx, input)
}

func parseSetting(key, value string) (settingsdto.UpdateInput, error) {
	var input settingsdto.UpdateInput
	switch key {
	case "focus-mode":
		input.FocusMode = &value
	case "sound":
		input.Sound = &value
	case "privacy-mode":
		input.PrivacyMode = &value
	case "analytics-consent":
		input.AnalyticsConsent = &value
	case "strict-pause-limit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return input, fmt.Errorf("%w: %s expects an integer", apperrors.ErrInvalidInput, key)
		}
		input.StrictPauseLimit = &n
	case "auto-start-breaks", "auto-start-work":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return input, fmt.Errorf("%w: %s expects true or false", apperrors.ErrInvalidInput, key)
		}
		if key == "auto-start-breaks" {
			input.AutoStartBreaks = &b
		} else {
			input.AutoStartWork = &b
		}
	default:
		return input, fmt.Errorf("%w: unknown setting %q (known: %s)", apperrors.ErrInvalidInput, key, strings.Join(Keys, ", "))
	}
	return input, nil
}

func (h CLIHandler) ListPresets(ctx context.Context) ([]settingsdto.PresetOutput, error) {
	out, err := h.usecase.Get(ctx)
	if err != nil {
		return nil, err
	}
	return out.Presets, nil
}

func (h CLIHandler) AddPreset(ctx context.Context, input settingsdto.PresetInput) (settingsdto.PresetOutput, error) {
	return h.usecase.AddPreset(ctx, input)
}

func (h CLIHandler) UpdatePreset(ctx context.Context, input settingsdto.PresetInput) (settingsdto.PresetOutput, error) {
	return h.usecase.UpdatePreset(ctx, input)
}

func (h CLIHandler) SelectPreset(ctx context.Context, id string) (settingsdto.PresetOutput, error) {
	return h.usecase.SelectPreset(ctx, id)
}

func (h CLIHandler) RenamePreset(ctx context.Context, id, name string) (settingsdto.PresetOutput, error) {
	return h.usecase.RenamePreset(ctx, id, name)
}

func (h CLIHandler) DeletePreset(ctx context.Context, id string) error {
	return h.usecase.DeletePreset(ctx, id)
}
