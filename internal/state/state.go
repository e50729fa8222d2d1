package state

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/msalah0e/canopy/internal/graph"
)

// NodePin is a saved fixed position for one node.
type NodePin struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// CameraPose is a saved viewport.
type CameraPose struct {
	Zoom    float64 `toml:"zoom"`
	CenterX float64 `toml:"center_x"`
	CenterY float64 `toml:"center_y"`
}

// Layout is the saved arrangement for one named graph.
type Layout struct {
	Pins    map[string]NodePin `toml:"pins"`
	Camera  CameraPose         `toml:"camera"`
	SavedAt time.Time          `toml:"saved_at"`
}

// State tracks all saved layouts.
type State struct {
	Layouts map[string]Layout `toml:"layouts"`
}

func statePath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "canopy", "state.toml")
}

// Load reads the state file, returning empty state if it doesn't exist.
func Load() *State {
	s := &State{Layouts: make(map[string]Layout)}
	data, err := os.ReadFile(statePath())
	if err != nil {
		return s
	}
	_ = toml.Unmarshal(data, s)
	if s.Layouts == nil {
		s.Layouts = make(map[string]Layout)
	}
	return s
}

// Save writes the state file to disk.
func Save(s *State) error {
	path := statePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(s)
}

// RecordLayout saves the pinned nodes and camera pose of a graph under
// a name. Unpinned nodes are not recorded; the simulation will place
// them again next time.
func RecordLayout(name string, set *graph.RenderSet, cam CameraPose) error {
	s := Load()
	l := Layout{Pins: make(map[string]NodePin), Camera: cam, SavedAt: time.Now()}
	for _, n := range set.Nodes {
		if n.Pinned() {
			l.Pins[n.ID] = NodePin{X: *n.FX, Y: *n.FY}
		}
	}
	s.Layouts[name] = l
	return Save(s)
}

// ApplyLayout re-pins saved nodes onto a freshly built set. Pins whose
// node no longer exists are skipped. The saved camera pose is returned
// when a layout was found.
func ApplyLayout(name string, set *graph.RenderSet) (CameraPose, bool) {
	l, ok := Load().Layouts[name]
	if !ok {
		return CameraPose{}, false
	}
	for id, pin := range l.Pins {
		n := set.NodeByID(id)
		if n == nil {
			continue
		}
		n.X, n.Y = pin.X, pin.Y
		n.Pin()
	}
	return l.Camera, true
}

// Remove deletes a saved layout.
func Remove(name string) error {
	s := Load()
	delete(s.Layouts, name)
	return Save(s)
}

// List returns all saved layouts by name.
func List() map[string]Layout {
	return Load().Layouts
}
