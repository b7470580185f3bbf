// Package store provides WorkspaceStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/wage-engine/earnings"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	initial earnings.Workspace
	current earnings.Workspace
}

func NewMemory(initial earnings.Workspace) *Memory {
	return &Memory{initial: initial.Clone(), current: initial.Clone()}
}

func (m *Memory) Load(_ context.Context) (earnings.Workspace, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Clone(), nil
}

func (m *Memory) Save(_ context.Context, w earnings.Workspace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = w.Clone()
	return nil
}

// Reset restores the workspace given to NewMemory.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial.Clone()
	return nil
}
