// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// ErrEmptyROM is returned for a ROM without any instruction.
var ErrEmptyROM = errors.New("rom is empty")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a ROM file. A ROM that does not fit into the memory of the virtual
// machine is rejected before it is read completely.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &chip8.LoadError{Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, &chip8.LoadError{Path: path, Err: fmt.Errorf("reading file info: %w", err)}
	}
	if info.Size() > chip8.MaxROMSize {
		return nil, &chip8.LoadError{Path: path, Size: int(info.Size()), Err: chip8.ErrROMTooLarge}
	}

	return l.LoadReader(file, path)
}

// LoadReader reads a ROM from a reader, name is used for error messages.
func (l *Loader) LoadReader(reader io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxROMSize+1))
	if err != nil {
		return nil, &chip8.LoadError{Path: name, Size: len(data), Err: err}
	}

	switch {
	case len(data) == 0:
		return nil, &chip8.LoadError{Path: name, Err: ErrEmptyROM}
	case len(data) > chip8.MaxROMSize:
		return nil, &chip8.LoadError{Path: name, Size: len(data), Err: chip8.ErrROMTooLarge}
	}
	return data, nil
}
