package citation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
)

// Source is the external citation index the ranker draws its candidate
// pool from. Implementations preserve their own retrieval order; the
// ranker keeps that order as the within-tier tie-break.
type Source interface {
	Search(ctx context.Context, query string, limit int) ([]model.Citation, error)
}

type Factory func(args interface{}) (Source, error)

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

func NewSource(name string, args interface{}) (Source, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("citation.source is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported citation source: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode source config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode source config: %w", err)
	}
	return nil
}
