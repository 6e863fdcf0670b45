package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	hookrpc "pomo/internal/modules/hook/adapter/out/rpc"
	"pomo/internal/modules/hook/domain"
	hookout "pomo/internal/modules/hook/port/out"
)

const defaultStartTimeout = 3 * time.Second

// GRPCHost launches a hook binary per call and talks to it over go-plugin.
type GRPCHost struct {
	log hclog.Logger
}

// NewGRPCHost returns a host that routes plugin output through log. A nil
// logger discards it.
func NewGRPCHost(log hclog.Logger) hookout.Host {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &GRPCHost{log: log}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	meta, err := client.GetMetadata(ctx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) HandleEvent(ctx context.Context, manifest domain.Manifest, event domain.Event) error {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return err
	}
	defer closeFn()

	response, err := client.HandleEvent(ctx, &hookrpc.HookEvent{
		Kind:          event.Kind,
		Phase:         event.Phase,
		PlannedEndMs:  event.PlannedEndMs,
		CompletedWork: event.CompletedWork,
		Reason:        event.Reason,
		AtMs:          event.AtMs,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("handle event: %w", context.DeadlineExceeded)
		}
		return fmt.Errorf("handle event: %w", err)
	}
	if !response.Accepted {
		return fmt.Errorf("hook %s rejected %s: %s", manifest.Name, event.Kind, response.Message)
	}
	return nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (hookrpc.HookClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  hookrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          hookrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.log.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start hook %s: %w", manifest.Name, err)
	}
	raw, err := rpcClient.Dispense(hookrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense hook %s: %w", manifest.Name, err)
	}
	typed, ok := raw.(hookrpc.HookClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("hook rpc client type mismatch")
	}
	return typed, closeFn, nil
}
