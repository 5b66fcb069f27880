package gridio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mad-life/internal/core"
)

const (
	// DefaultInputDir is where front-ends look for grid files.
	DefaultInputDir = "Input"
	// DefaultOutputDir receives persisted iterations.
	DefaultOutputDir = "Output"
)

// Store is the file-backed grid service used by the simulation.
type Store struct {
	InputDir  string
	OutputDir string
}

// NewStore returns a Store rooted at the given directories. Empty values fall
// back to DefaultInputDir and DefaultOutputDir.
func NewStore(inputDir, outputDir string) *Store {
	if inputDir == "" {
		inputDir = DefaultInputDir
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &Store{InputDir: inputDir, OutputDir: outputDir}
}

// ReadGrid loads the grid stored at path.
func (s *Store) ReadGrid(path string) (*core.Grid, error) {
	return ReadFile(path)
}

// IterationFileName returns "<base>_out-<iteration>.txt".
func IterationFileName(baseName string, iteration int) string {
	return fmt.Sprintf("%s_out-%d.txt", baseName, iteration)
}

// WriteGridIteration writes g as generation iteration of baseName into the
// output directory, creating the directory when needed.
func (s *Store) WriteGridIteration(baseName string, iteration int, g *core.Grid) error {
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	return WriteFile(filepath.Join(s.OutputDir, IterationFileName(baseName, iteration)), g)
}

// ListInputFiles returns the sorted paths of the *.txt files in the input
// directory. A missing directory yields an empty list.
func (s *Store) ListInputFiles() ([]string, error) {
	entries, err := os.ReadDir(s.InputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		out = append(out, filepath.Join(s.InputDir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// BaseName strips the directory and extension from path, giving the prefix
// used for iteration files.
func BaseName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "input"
	}
	return stem
}
