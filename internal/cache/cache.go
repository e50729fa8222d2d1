// Package cache stores settled layout positions keyed by payload
// content, so re-rendering an unchanged graph skips the simulation.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/msalah0e/canopy/internal/graph"
)

// Dir returns the cache directory path.
func Dir() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "canopy")
}

// Key derives the cache key for a raw payload.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

type position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type snapshot struct {
	Positions map[string]position `json:"positions"`
}

func entryPath(key string) string {
	return filepath.Join(Dir(), key+".json")
}

// Store writes the settled positions of a render set under a key.
// Nodes without a position are omitted.
func Store(key string, set *graph.RenderSet) error {
	snap := snapshot{Positions: make(map[string]position, len(set.Nodes))}
	for _, n := range set.Nodes {
		if n.Positioned() {
			snap.Positions[n.ID] = position{X: n.X, Y: n.Y}
		}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return err
	}
	return os.WriteFile(entryPath(key), data, 0o644)
}

// Restore applies cached positions onto a freshly built set. It reports
// whether a usable entry covered every node; a partial hit still
// applies what it has so the simulation starts closer to rest.
func Restore(key string, set *graph.RenderSet) bool {
	data, err := os.ReadFile(entryPath(key))
	if err != nil {
		return false
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return false
	}
	covered := 0
	for _, n := range set.Nodes {
		if pos, ok := snap.Positions[n.ID]; ok {
			n.X, n.Y = pos.X, pos.Y
			covered++
		}
	}
	return covered == len(set.Nodes) && covered > 0
}

// Clear removes every cached layout.
func Clear() error {
	return os.RemoveAll(Dir())
}
