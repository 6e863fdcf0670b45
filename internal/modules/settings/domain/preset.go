package domain

import "strings"

// Preset mutations return a new Settings and never alias the receiver's slice.

func (s Settings) clonePresets() []Preset {
	return append([]Preset(nil), s.Presets...)
}

// AddPreset appends a sanitized preset and makes it active.
func (s Settings) AddPreset(id string, p Preset) (Settings, Preset) {
	p = p.Sanitize(DefaultPresetName(len(s.Presets)))
	p.ID = id
	s.Presets = append(s.clonePresets(), p)
	s.ActivePresetID = id
	return s, p
}

// UpdatePreset replaces the preset with the same id. It reports false for an unknown id.
func (s Settings) UpdatePreset(p Preset) (Settings, bool) {
	i := s.indexOf(p.ID)
	if i < 0 {
		return s, false
	}
	presets := s.clonePresets()
	presets[i] = p.Sanitize(DefaultPresetName(i))
	s.Presets = presets
	return s, true
}

// SelectPreset activates id. An unknown id leaves the settings unchanged.
func (s Settings) SelectPreset(id string) (Settings, bool) {
	if !s.HasPreset(id) {
		return s, false
	}
	s.ActivePresetID = id
	return s, true
}

// RenamePreset sets a trimmed name; blank names fall back to "Preset N".
func (s Settings) RenamePreset(id, name string) (Settings, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return s, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPresetName(i)
	}
	presets := s.clonePresets()
	presets[i].Name = name
	s.Presets = presets
	return s, true
}

// DeletePreset removes id unless it is the last preset. Deleting the active
// preset activates the first remaining one.
func (s Settings) DeletePreset(id string) (Settings, DeleteResult) {
	i := s.indexOf(id)
	if i < 0 {
		return s, DeleteUnknown
	}
	if len(s.Presets) <= 1 {
		return s, DeleteLast
	}
	presets := make([]Preset, 0, len(s.Presets)-1)
	presets = append(presets, s.Presets[:i]...)
	presets = append(presets, s.Presets[i+1:]...)
	s.Presets = presets
	if s.ActivePresetID == id {
		s.ActivePresetID = presets[0].ID
	}
	return s, DeleteOK
}

type DeleteResult int

const (
	DeleteOK DeleteResult = iota
	DeleteUnknown
	DeleteLast
)
