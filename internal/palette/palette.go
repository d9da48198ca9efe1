// Package palette holds the seven piece colors and their INI persistence:
// one "index=R G B" entry per shape, with malformed or missing entries
// falling back to the defaults.
package palette

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/google/renameio/v2/maybe"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/ini.v1"

	"github.com/vovakirdan/tetris-saver/internal/core"
)

// Size is the number of palette entries, one per shape.
const Size = core.PaletteSize

// section is the INI section the entries are written under.
const section = "colors"

// relPath is the palette location below the user config directory.
var relPath = filepath.Join("tetris-saver", "palette.ini")

// EdgeFactor scales a color to get the darker tile edge.
const EdgeFactor = 0.75

// Names labels the slots in shape order.
var Names = [Size]string{"I", "O", "T", "S", "Z", "L", "J"}

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Palette maps each shape index to its color.
type Palette [Size]RGB

// Default returns the compiled-in colors.
func Default() Palette {
	return Palette{
		{0, 255, 255}, // I cyan
		{255, 255, 0}, // O yellow
		{128, 0, 128}, // T purple
		{0, 255, 0},   // S green
		{255, 0, 0},   // Z red
		{0, 0, 255},   // L blue
		{255, 165, 0}, // J orange
	}
}

// Colorful converts the color for use with go-colorful.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Darker returns the edge shade of the color.
func (c RGB) Darker() RGB {
	return RGB{
		R: uint8(float64(c.R) * EdgeFactor),
		G: uint8(float64(c.G) * EdgeFactor),
		B: uint8(float64(c.B) * EdgeFactor),
	}
}

// String returns the space-separated triple used in the palette file.
func (c RGB) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// ParseRGB parses a space-separated "R G B" triple with each component in
// [0, 255].
func ParseRGB(s string) (RGB, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return RGB{}, fmt.Errorf("palette: expected 3 components, got %d", len(fields))
	}
	var out [3]uint8
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return RGB{}, fmt.Errorf("palette: component %q: %w", f, err)
		}
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("palette: component %d out of range", v)
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

// DefaultPath returns the palette file below the user config directory,
// creating the directory if needed.
func DefaultPath() (string, error) {
	p, err := xdg.ConfigFile(relPath)
	if err != nil {
		return "", fmt.Errorf("palette: cannot resolve config path: %w", err)
	}
	return p, nil
}

// Load reads the palette at path. The returned palette is always usable: a
// missing file yields the defaults and no error, and entries that are
// missing or malformed keep their default color. A non-nil error only
// explains why some or all entries fell back.
func Load(path string) (Palette, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("palette: cannot open %s: %w", path, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return p, fmt.Errorf("palette: cannot read %s: %w", path, err)
	}
	return p, nil
}

// Parse reads INI entries from r on top of the defaults. Keys are slot
// indexes, optionally prefixed with "color", in any section. Lines that are
// not entries are skipped and malformed colors keep their default. On a read
// error the entries before the failure are still applied.
func Parse(r io.Reader) (Palette, error) {
	p := Default()

	data, readErr := io.ReadAll(r)
	f, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return p, err
	}

	for _, sec := range f.Sections() {
		for _, key := range sec.Keys() {
			idx, ok := slotIndex(key.Name())
			if !ok {
				continue
			}
			c, err := ParseRGB(key.String())
			if err != nil {
				continue // Keep the default for this slot
			}
			p[idx] = c
		}
	}
	return p, readErr
}

func slotIndex(key string) (int, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.TrimPrefix(key, "color")
	idx, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || idx < 0 || idx >= Size {
		return 0, false
	}
	return idx, true
}

// Write serializes all entries to w.
func (p Palette) Write(w io.Writer) error {
	f := ini.Empty()
	sec, err := f.NewSection(section)
	if err != nil {
		return err
	}
	sec.Comment = fmt.Sprintf("tetris-saver piece colors: index=R G B (%s)", strings.Join(Names[:], " "))
	for i, c := range p {
		if _, err := sec.NewKey(strconv.Itoa(i), c.String()); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}

// Save replaces the palette file at path atomically where the platform
// allows it.
func (p Palette) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("palette: cannot create directory %s: %w", dir, err)
	}

	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return fmt.Errorf("palette: cannot encode: %w", err)
	}
	if err := maybe.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("palette: cannot write %s: %w", path, err)
	}
	return nil
}
