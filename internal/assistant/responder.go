package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrUnavailable = errors.New("assistant provider unavailable")

// Responder produces one assistant reply for one user utterance.
// paperContext is an advisory hint describing the paper being worked
// on; implementations may fold it into the reply but it never decides
// which answer strategy applies. Swapping the implementation must not
// affect session bookkeeping.
type Responder interface {
	Respond(ctx context.Context, utterance string, paperContext string) (string, error)
}

type Factory func(args interface{}) (Responder, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func NewResponder(name string, args interface{}) (Responder, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("assistant.provider is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported assistant provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode assistant config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode assistant config: %w", err)
	}
	return nil
}
