package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"pomo/internal/modules/hook/domain"
	"pomo/internal/modules/hook/dto"
	hookout "pomo/internal/modules/hook/port/out"
	apperrors "pomo/internal/platform/errors"
)

const DefaultCallTimeout = 2 * time.Second

type Option func(*HookService)

func WithLogger(log hclog.Logger) Option {
	return func(s *HookService) { s.log = log }
}

func WithCallTimeout(timeout time.Duration) Option {
	return func(s *HookService) {
		if timeout > 0 {
			s.callTimeout = timeout
		}
	}
}

type HookService struct {
	store       hookout.ManifestStore
	host        hookout.Host
	log         hclog.Logger
	callTimeout time.Duration
}

func NewHookService(store hookout.ManifestStore, host hookout.Host, opts ...Option) *HookService {
	s := &HookService{store: store, host: host, log: hclog.NewNullLogger(), callTimeout: DefaultCallTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HookService) List(ctx context.Context) ([]dto.HookInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HookInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.HookInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *HookService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
			results = append(results, result)
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.ChecksumValid = true
		if m.Enabled && s.host != nil {
			callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
			if err := s.host.CheckLifecycle(callCtx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
			cancel()
		}
		results = append(results, result)
	}
	return results, nil
}

// Dispatch delivers event to every enabled hook holding the matching
// capability and returns how many hooks accepted it.
func (s *HookService) Dispatch(ctx context.Context, event domain.Event) int {
	capability, ok := domain.CapabilityFor(event.Kind)
	if !ok {
		s.log.Warn("dropping hook event", "kind", event.Kind)
		return 0
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		s.log.Error("load hook manifests", "error", err)
		return 0
	}
	delivered := 0
	for _, m := range manifests {
		if !m.Enabled || !m.HasCapability(capability) {
			continue
		}
		if err := s.deliver(ctx, m, event); err != nil {
			s.log.Warn("hook failed", "hook", m.Name, "kind", event.Kind, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

func (s *HookService) Send(ctx context.Context, name string, event domain.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	capability, _ := domain.CapabilityFor(event.Kind)
	manifest, err := s.getRunnableManifest(ctx, name, capability)
	if err != nil {
		return err
	}
	return s.deliver(ctx, manifest, event)
}

func (s *HookService) deliver(ctx context.Context, manifest domain.Manifest, event domain.Event) error {
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return err
	}
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	if err := s.host.HandleEvent(callCtx, manifest, event); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", apperrors.ErrHookTimeout, manifest.Name)
		}
		return err
	}
	return nil
}

func (s *HookService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate hook name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *HookService) getRunnableManifest(ctx context.Context, name string, capability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, m := range manifests {
		if m.Name != name {
			continue
		}
		if !m.Enabled {
			return domain.Manifest{}, fmt.Errorf("%w: %s", apperrors.ErrHookDisabled, name)
		}
		if !m.HasCapability(capability) {
			return domain.Manifest{}, fmt.Errorf("%w: %s needs %s", apperrors.ErrCapabilityMissing, name, capability)
		}
		return m, nil
	}
	return domain.Manifest{}, fmt.Errorf("hook %q: %w", name, apperrors.ErrNotFound)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read hook binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
