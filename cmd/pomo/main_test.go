package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	settingsdto "pomo/internal/modules/settings/dto"
)

func TestPrintSettingsShowsPrivacyOutcomes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	printSettings(&buf, settingsdto.SettingsOutput{
		ActivePreset:     settingsdto.PresetOutput{ID: "default", Name: "Classic 25/5"},
		PrivacyMode:      "normal",
		AnalyticsConsent: "granted",
		PersistHistory:   true,
		TrackAnalytics:   true,
		ReportCrashes:    true,
	})
	assert.Contains(t, buf.String(), "privacy-mode: normal (history on)")
	assert.Contains(t, buf.String(), "analytics-consent: granted (analytics on, crash reports on)")

	buf.Reset()
	printSettings(&buf, settingsdto.SettingsOutput{
		PrivacyMode:      "strict",
		AnalyticsConsent: "granted",
	})
	assert.Contains(t, buf.String(), "privacy-mode: strict (history off)")
	assert.Contains(t, buf.String(), "analytics-consent: granted (analytics off, crash reports off)")
}
