package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/plate-prep/internal/config"
)

// DisplayImage writes img to <cfg.DebugDir>/<name>.png when cfg.DebugGeneral
// is set, and does nothing otherwise. An empty DebugDir means the working
// directory. Characters in name that are unsafe in file names are replaced
// with '_'.
func DisplayImage(cfg config.Config, name string, img image.Image) error {
	if !cfg.DebugGeneral {
		return nil
	}

	dir := cfg.DebugDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create debug directory: %w", err)
	}

	path := filepath.Join(dir, debugFileName(name)+".png")
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save debug image: %w", err)
	}
	return nil
}

func debugFileName(name string) string {
	if name == "" {
		return "debug"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
