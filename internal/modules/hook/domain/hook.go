package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	CapabilityNotify     Capability = "notify"
	CapabilityBanner     Capability = "banner"
	CapabilityCompletion Capability = "completion"
)

// Effect kinds as emitted by the timer.
const (
	EventScheduleNotification = "schedule-notification"
	EventCancelNotification   = "cancel-notification"
	EventSessionCompleted     = "session-completed"
	EventBanner               = "banner"
)

var ErrChecksumMismatch = errors.New("hook checksum mismatch")

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("hook name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("hook %s: version is required", m.Name)
	}
	if m.Binary == "" {
		return fmt.Errorf("hook %s: binary path is required", m.Name)
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("hook %s: sha256 must be lowercase 64-char hex", m.Name)
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("hook %s: capabilities are required", m.Name)
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("hook %s: duplicate capability %s", m.Name, capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityNotify, CapabilityBanner, CapabilityCompletion:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// CapabilityFor maps an event kind to the capability a hook needs to receive it.
func CapabilityFor(kind string) (Capability, bool) {
	switch kind {
	case EventScheduleNotification, EventCancelNotification:
		return CapabilityNotify, true
	case EventBanner:
		return CapabilityBanner, true
	case EventSessionCompleted:
		return CapabilityCompletion, true
	default:
		return "", false
	}
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Event is a timer effect as delivered to hooks. Times are Unix milliseconds.
type Event struct {
	Kind          string
	Phase         string
	PlannedEndMs  int64
	CompletedWork bool
	Reason        string
	AtMs          int64
}

func (e Event) Validate() error {
	if _, ok := CapabilityFor(e.Kind); !ok {
		return fmt.Errorf("unknown event kind: %q", e.Kind)
	}
	if e.AtMs <= 0 {
		return fmt.Errorf("event time is required")
	}
	return nil
}
