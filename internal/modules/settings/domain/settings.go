package domain

import (
	"fmt"
	"strings"
)

type FocusMode string

const (
	FocusStrict FocusMode = "strict"
	FocusLoose  FocusMode = "loose"
)

func (m FocusMode) Valid() bool { return m == FocusStrict || m == FocusLoose }

type Sound string

const (
	SoundChime   Sound = "chime"
	SoundBell    Sound = "bell"
	SoundDigital Sound = "digital"
)

func (s Sound) Valid() bool {
	switch s {
	case SoundChime, SoundBell, SoundDigital:
		return true
	default:
		return false
	}
}

type Preset struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	WorkMinutes       int    `yaml:"work_minutes"`
	ShortBreakMinutes int    `yaml:"short_break_minutes"`
	LongBreakMinutes  int    `yaml:"long_break_minutes"`
	LongBreakInterval int    `yaml:"long_break_interval"`
}

type Settings struct {
	Presets          []Preset         `yaml:"presets"`
	ActivePresetID   string           `yaml:"active_preset_id"`
	AutoStartBreaks  bool             `yaml:"auto_start_breaks"`
	AutoStartWork    bool             `yaml:"auto_start_work"`
	FocusMode        FocusMode        `yaml:"focus_mode"`
	StrictPauseLimit int              `yaml:"strict_pause_limit"`
	Sound            Sound            `yaml:"sound"`
	PrivacyMode      PrivacyMode      `yaml:"privacy_mode"`
	AnalyticsConsent AnalyticsConsent `yaml:"analytics_consent"`
}

func DefaultPreset() Preset {
	return Preset{
		ID:                "default",
		Name:              "Classic 25/5",
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
	}
}

func Default() Settings {
	return Settings{
		Presets:          []Preset{DefaultPreset()},
		ActivePresetID:   DefaultPreset().ID,
		AutoStartBreaks:  true,
		AutoStartWork:    true,
		FocusMode:        FocusStrict,
		StrictPauseLimit: 1,
		Sound:            SoundChime,
		PrivacyMode:      PrivacyNormal,
		AnalyticsConsent: ConsentUnknown,
	}
}

// DefaultPresetName names the preset at a zero-based index.
func DefaultPresetName(index int) string {
	return fmt.Sprintf("Preset %d", index+1)
}

// Sanitize trims the name, falling back to fallbackName, and replaces
// non-positive numbers with the classic values.
func (p Preset) Sanitize(fallbackName string) Preset {
	def := DefaultPreset()
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = fallbackName
	}
	p.WorkMinutes = positiveOr(p.WorkMinutes, def.WorkMinutes)
	p.ShortBreakMinutes = positiveOr(p.ShortBreakMinutes, def.ShortBreakMinutes)
	p.LongBreakMinutes = positiveOr(p.LongBreakMinutes, def.LongBreakMinutes)
	p.LongBreakInterval = positiveOr(p.LongBreakInterval, def.LongBreakInterval)
	return p
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// ActivePreset returns the selected preset, or the first one if the id is stale.
func (s Settings) ActivePreset() Preset {
	if i := s.indexOf(s.ActivePresetID); i >= 0 {
		return s.Presets[i]
	}
	if len(s.Presets) > 0 {
		return s.Presets[0]
	}
	return DefaultPreset()
}

func (s Settings) indexOf(id string) int {
	for i, p := range s.Presets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s Settings) HasPreset(id string) bool {
	return s.indexOf(id) >= 0
}

// Normalize repairs a loaded document so every field holds a usable value.
func (s Settings) Normalize() Settings {
	def := Default()
	presets := make([]Preset, 0, len(s.Presets))
	for i, p := range s.Presets {
		p = p.Sanitize(DefaultPresetName(i))
		if strings.TrimSpace(p.ID) == "" {
			p.ID = fmt.Sprintf("preset-%d", i+1)
		}
		presets = append(presets, p)
	}
	if len(presets) == 0 {
		presets = def.Presets
	}
	s.Presets = presets
	if !s.HasPreset(s.ActivePresetID) {
		s.ActivePresetID = s.Presets[0].ID
	}
	if !s.FocusMode.Valid() {
		s.FocusMode = def.FocusMode
	}
	if s.StrictPauseLimit < 0 {
		s.StrictPauseLimit = def.StrictPauseLimit
	}
	if !s.Sound.Valid() {
		s.Sound = def.Sound
	}
	if !s.PrivacyMode.Valid() {
		s.PrivacyMode = def.PrivacyMode
	}
	if !s.AnalyticsConsent.Valid() {
		s.AnalyticsConsent = def.AnalyticsConsent
	}
	return s
}

// Patch holds optional field updates; nil fields are left alone.
type Patch struct {
	AutoStartBreaks  *bool
	AutoStartWork    *bool
	FocusMode        *FocusMode
	StrictPauseLimit *int
	Sound            *Sound
	PrivacyMode      *PrivacyMode
	AnalyticsConsent *AnalyticsConsent
}

func (s Settings) Apply(p Patch) (Settings, error) {
	if p.AutoStartBreaks != nil {
		s.AutoStartBreaks = *p.AutoStartBreaks
	}
	if p.AutoStartWork != nil {
		s.AutoStartWork = *p.AutoStartWork
	}
	if p.FocusMode != nil {
		if !p.FocusMode.Valid() {
			return Settings{}, fmt.Errorf("unknown focus mode %q", *p.FocusMode)
		}
		s.FocusMode = *p.FocusMode
	}
	if p.StrictPauseLimit != nil {
		if *p.StrictPauseLimit < 0 {
			return Settings{}, fmt.Errorf("strict pause limit must be non-negative")
		}
		s.StrictPauseLimit = *p.StrictPauseLimit
	}
	if p.Sound != nil {
		if !p.Sound.Valid() {
			return Settings{}, fmt.Errorf("unknown sound %q", *p.Sound)
		}
		s.Sound = *p.Sound
	}
	if p.PrivacyMode != nil {
		if !p.PrivacyMode.Valid() {
			return Settings{}, fmt.Errorf("unknown privacy mode %q", *p.PrivacyMode)
		}
		s.PrivacyMode = *p.PrivacyMode
	}
	if p.AnalyticsConsent != nil {
		if !p.AnalyticsConsent.Valid() {
			return Settings{}, fmt.Errorf("unknown analytics consent %q", *p.AnalyticsConsent)
		}
		s.AnalyticsConsent = *p.AnalyticsConsent
	}
	return s, nil
}
