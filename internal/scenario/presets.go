package scenario

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/jinzhu/copier"
)

//go:embed presets/*.yaml
var presetFS embed.FS

var (
	presetMu    sync.Mutex
	presetCache = map[string]*File{}
)

// Presets returns the names of the built-in scenarios, sorted.
func Presets() []string {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Preset returns a built-in scenario by name. Each call returns an independent copy, so callers
// may edit it before building a world.
func Preset(name string) (*File, error) {
	presetMu.Lock()
	defer presetMu.Unlock()

	f, ok := presetCache[name]
	if !ok {
		data, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(Presets(), ", "))
		}
		if f, err = Parse(data); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		presetCache[name] = f
	}

	var out File
	if err := copier.CopyWithOption(&out, f, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copy preset %s: %w", name, err)
	}
	return &out, nil
}

// Load resolves name as a generated course ("course" or "course:<seed>"), then as a preset,
// and as a file path otherwise.
func Load(name string) (*File, error) {
	if seed, ok, err := parseCourse(name); ok {
		if err != nil {
			return nil, err
		}
		opts := DefaultCourseOptions()
		opts.Seed = seed
		return GenerateCourse(opts), nil
	}
	if f, err := Preset(name); err == nil {
		return f, nil
	}
	return LoadFile(name)
}
