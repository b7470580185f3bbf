/*
store.go - Persistence interface for the workspace

PURPOSE:
  Defines how the host keeps its Workspace between requests. Storage is
  process-scoped: implementations keep data in memory (or an in-memory
  SQLite database) and lose it on exit.

IMPLEMENTATIONS:
  - earnings/store/memory.go: Plain in-memory store (tests, CLI)
  - store/sqlite/sqlite.go: In-memory SQLite store (server)

CONTRACT:
  - Load never returns a Workspace that shares slices with the store.
  - Load on an empty store returns the store's initial workspace.
  - Reset returns the store to its initial workspace.
*/
package earnings

import "context"

// WorkspaceStore keeps the current Workspace.
type WorkspaceStore interface {
	Load(ctx context.Context) (Workspace, error)
	Save(ctx context.Context, w Workspace) error
	Reset(ctx context.Context) error
}
