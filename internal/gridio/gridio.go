// Package gridio reads and writes grids in the plain-text grid format:
//
//	rows cols
//	t t t ...   (rows lines of cols tokens)
//
// Tokens are 0/1 for dead/alive cells and D/A for dead/alive obstacles. Any
// other token reads as a dead cell. Short lines and missing trailing rows are
// padded with dead cells.
package gridio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"mad-life/internal/core"
)

var (
	// ErrFileRead wraps every failure to open or parse a grid file.
	ErrFileRead = errors.New("grid read failed")
	// ErrFileWrite wraps every failure to create or write a grid file.
	ErrFileWrite = errors.New("grid write failed")
	// ErrBadHeader reports a missing or non-positive "rows cols" header.
	ErrBadHeader = errors.New("bad grid header")
)

// Read parses a grid from r.
func Read(r io.Reader) (*core.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
		}
		return nil, fmt.Errorf("%w: %w: empty input", ErrFileRead, ErrBadHeader)
	}
	rows, cols, err := parseHeader(sc.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	g, err := core.NewGrid(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	for r := 0; r < rows && sc.Scan(); r++ {
		fields := strings.Fields(sc.Text())
		for c := 0; c < cols && c < len(fields); c++ {
			alive, obstacle := parseToken(fields[c])
			g.SetAt(g.Index(r, c), alive, obstacle)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	return g, nil
}

func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	rows, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: rows %q", ErrBadHeader, fields[0])
	}
	cols, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: cols %q", ErrBadHeader, fields[1])
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrBadHeader, rows, cols)
	}
	return rows, cols, nil
}

func parseToken(tok string) (alive, obstacle bool) {
	switch tok {
	case "1":
		return true, false
	case "A", "a":
		return true, true
	case "D", "d":
		return false, true
	default:
		return false, false
	}
}

func token(alive, obstacle bool) byte {
	switch {
	case obstacle && alive:
		return 'A'
	case obstacle:
		return 'D'
	case alive:
		return '1'
	default:
		return '0'
	}
}

// Write serializes g to w.
func Write(w io.Writer, g *core.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", g.Rows(), g.Cols())
	line := make([]byte, 0, 2*g.Cols())
	for r := 0; r < g.Rows(); r++ {
		line = line[:0]
		for c := 0; c < g.Cols(); c++ {
			if c > 0 {
				line = append(line, ' ')
			}
			idx := g.Index(r, c)
			line = append(line, token(g.AliveAt(idx), g.ObstacleAt(idx)))
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("%w: %v", ErrFileWrite, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	return nil
}

// ReadFile loads a grid from path.
func ReadFile(path string) (*core.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	defer f.Close()
	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteFile stores g at path, replacing any existing file.
func WriteFile(path string, g *core.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	return nil
}
