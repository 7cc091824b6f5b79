package schedules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/epmodel/schedkit/core/schedule"
)

// Store resolves schedule rulesets by name.
type Store interface {
	Get(name string) (*schedule.Ruleset, error)
	List() ([]string, error)
}

// DirStore serves rulesets from JSON files in a directory. A schedule named
// "office_occupancy" is read from <dir>/office_occupancy.json. Loaded
// rulesets are frozen and cached.
type DirStore struct {
	dir string

	mu    sync.Mutex
	cache map[string]*schedule.Ruleset
}

// NewDirStore returns a store backed by dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir, cache: make(map[string]*schedule.Ruleset)}
}

// Get loads the named ruleset, reading it from disk on first use.
func (s *DirStore) Get(name string) (*schedule.Ruleset, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid schedule name %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rs, ok := s.cache[name]; ok {
		return rs, nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("load schedule %q: %w", name, err)
	}
	rs := &schedule.Ruleset{}
	if err := json.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", name, err)
	}
	rs.Freeze()
	s.cache[name] = rs
	return rs, nil
}

// List returns the names of all schedules in the directory, sorted.
func (s *DirStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
