package palette

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesShapes(t *testing.T) {
	p := Default()
	require.Equal(t, RGB{0, 255, 255}, p[0], "I is cyan")
	require.Equal(t, RGB{255, 165, 0}, p[6], "J is orange")
	require.Len(t, Names, Size)
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB(" 12  34 56 ")
	require.NoError(t, err)
	require.Equal(t, RGB{12, 34, 56}, c)

	for _, bad := range []string{"", "1 2", "1 2 3 4", "1 2 x", "1 2 256", "-1 0 0"} {
		_, err := ParseRGB(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestParseFallsBackPerEntry(t *testing.T) {
	input := strings.Join([]string{
		"; comment",
		"# another comment",
		"[colors]",
		"",
		"0=1 2 3",
		"color1 = 4 5 6",
		"2=not a color",
		"3=300 0 0",
		"9=7 7 7",
		"garbage line",
	}, "\n")

	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	def := Default()
	require.Equal(t, RGB{1, 2, 3}, p[0])
	require.Equal(t, RGB{4, 5, 6}, p[1])
	require.Equal(t, def[2], p[2], "malformed value keeps default")
	require.Equal(t, def[3], p[3], "out of range value keeps default")
	require.Equal(t, def[4], p[4], "missing entry keeps default")
	require.Equal(t, def[6], p[6])
}

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	require.Equal(t, Default(), p)
}

func TestLoadSkipsOverlongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.ini")
	data := "0=1 2 3\n; " + strings.Repeat("x", 70000) + "\n1=4 5 6\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, RGB{1, 2, 3}, p[0])
	require.Equal(t, RGB{4, 5, 6}, p[1])
	require.Equal(t, Default()[2], p[2])
}

func TestLoadUnreadablePathFallsBack(t *testing.T) {
	p, err := Load(t.TempDir())
	require.Error(t, err)
	require.Equal(t, Default(), p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "palette.ini")

	p := Default()
	p[2] = RGB{10, 20, 30}
	p[5] = RGB{255, 255, 255}
	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, p, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[colors]")
	require.Contains(t, string(data), "10 20 30")

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestColorHelpers(t *testing.T) {
	c := RGB{200, 100, 0}
	require.Equal(t, RGB{150, 75, 0}, c.Darker())
	require.Equal(t, "#c86400", c.Hex())
	require.Equal(t, "200 100 0", c.String())
}
