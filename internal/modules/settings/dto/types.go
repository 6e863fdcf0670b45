package dto

type PresetOutput struct {
	ID                string
	Name              string
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
	Active            bool
}

type SettingsOutput struct {
	Presets          []PresetOutput
	ActivePreset     PresetOutput
	AutoStartBreaks  bool
	AutoStartWork    bool
	FocusMode        string
	StrictPauseLimit int
	Sound            string
	PrivacyMode      string
	AnalyticsConsent string
	PersistHistory   bool
	TrackAnalytics   bool
	ReportCrashes    bool
}

// UpdateInput carries optional changes; nil fields are left untouched.
type UpdateInput struct {
	AutoStartBreaks  *bool
	AutoStartWork    *bool
	FocusMode        *string
	StrictPauseLimit *int
	Sound            *string
	PrivacyMode      *string
	AnalyticsConsent *string
}

type PresetInput struct {
	ID                string
	Name              string
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
}
