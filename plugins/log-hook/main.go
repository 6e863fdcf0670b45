// Command log-hook is a minimal pomo hook that appends every event it
// receives as a JSON line to the file named by POMO_HOOK_LOG.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-plugin"

	hookrpc "pomo/internal/modules/hook/adapter/out/rpc"
)

type server struct {
	mu   sync.Mutex
	path string
}

func (s *server) GetMetadata(_ context.Context, _ *hookrpc.Empty) (*hookrpc.Metadata, error) {
	return &hookrpc.Metadata{
		Name:         "log",
		Version:      "1.0.0",
		Capabilities: []string{"notify", "banner", "completion"},
	}, nil
}

func (s *server) HandleEvent(_ context.Context, in *hookrpc.HookEvent) (*hookrpc.HandleEventResponse, error) {
	if s.path == "" {
		return &hookrpc.HandleEventResponse{Accepted: true, Message: "POMO_HOOK_LOG not set"}, nil
	}
	line, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open hook log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return nil, fmt.Errorf("write hook log: %w", err)
	}
	return &hookrpc.HandleEventResponse{Accepted: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: hookrpc.HandshakeConfig,
		Plugins:         hookrpc.PluginMap(&server{path: os.Getenv("POMO_HOOK_LOG")}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
