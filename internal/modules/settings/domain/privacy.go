package domain

type PrivacyMode string

const (
	PrivacyNormal  PrivacyMode = "normal"
	PrivacyPrivate PrivacyMode = "privacy"
	PrivacyStrict  PrivacyMode = "strict"
)

func (m PrivacyMode) Valid() bool {
	switch m {
	case PrivacyNormal, PrivacyPrivate, PrivacyStrict:
		return true
	default:
		return false
	}
}

type AnalyticsConsent string

const (
	ConsentUnknown AnalyticsConsent = "unknown"
	ConsentGranted AnalyticsConsent = "granted"
	ConsentDenied  AnalyticsConsent = "denied"
)

func (c AnalyticsConsent) Valid() bool {
	switch c {
	case ConsentUnknown, ConsentGranted, ConsentDenied:
		return true
	default:
		return false
	}
}

// CanPersist reports whether settings and history may be written to disk.
func CanPersist(mode PrivacyMode) bool {
	return mode != PrivacyStrict
}

func CanTrackAnalytics(mode PrivacyMode, consent AnalyticsConsent) bool {
	return mode == PrivacyNormal && consent == ConsentGranted
}

func CanReportCrash(mode PrivacyMode) bool {
	return mode == PrivacyNormal
}
