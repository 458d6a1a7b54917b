package gameboy

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// LoadError is returned when a ROM image can not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("gameboy: loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a ROM image from path, decompressing it if needed.
func Load(path string) ([]byte, error) {
	b, err := utils.LoadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return b, nil
}
