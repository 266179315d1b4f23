package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader reads level files from a file system tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("level: builtin levels: %v", err))
	}
	return &Loader{fsys: sub}
}

// LoadAll recursively scans and loads every level file, sorted by number.
// Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelFile(p) {
			return nil
		}

		lvl, err := l.load(p)
		if err != nil {
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking %s: %w", l.describe(), err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Number < levels[j].Number
	})
	return levels, nil
}

// LoadFile loads a single level file by its path relative to the root.
func (l *Loader) LoadFile(name string) (Level, error) {
	return l.load(filepath.ToSlash(name))
}

func (l *Loader) load(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("level: reading %s: %w", p, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("level: parsing %s: %w", p, err)
	}
	if l.Root != "" {
		lvl.Path = filepath.Join(l.Root, filepath.FromSlash(p))
	}
	return lvl, nil
}

// LoadByNumber returns the level with the given number.
func (l *Loader) LoadByNumber(number int) (Level, error) {
	if lvl, err := l.LoadFile(FileName(number)); err == nil && lvl.Number == number {
		return lvl, nil
	}

	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.Number == number {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: level %d in %s", ErrNotFound, number, l.describe())
}

// Numbers returns the available level numbers in order.
func (l *Loader) Numbers() ([]int, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, lvl.Number)
	}
	return out, nil
}

func (l *Loader) describe() string {
	if l.Root == "" {
		return "builtin levels"
	}
	return l.Root
}

func isLevelFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}

// Store writes lvl into dir under its canonical file name and returns the
// path written.
func Store(dir string, lvl Level) (string, error) {
	if err := lvl.Validate(); err != nil {
		return "", err
	}
	data, err := lvl.Encode()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("level: cannot create directory: %w", err)
	}
	p := filepath.Join(dir, FileName(lvl.Number))
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("level: cannot write %s: %w", p, err)
	}
	return p, nil
}

// Chain tries each loader in order and returns the first level found.
type Chain []*Loader

// LoadByNumber returns the level from the first loader that has it.
func (c Chain) LoadByNumber(number int) (Level, error) {
	for _, l := range c {
		lvl, err := l.LoadByNumber(number)
		if err == nil {
			return lvl, nil
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, fs.ErrNotExist) {
			return Level{}, err
		}
	}
	return Level{}, fmt.Errorf("%w: level %d", ErrNotFound, number)
}

// LoadAll merges the levels of every loader; earlier loaders win on
// duplicate numbers.
func (c Chain) LoadAll() ([]Level, error) {
	seen := make(map[int]bool)
	var out []Level
	for _, l := range c {
		levels, err := l.LoadAll()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, lvl := range levels {
			if !seen[lvl.Number] {
				seen[lvl.Number] = true
				out = append(out, lvl)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}
