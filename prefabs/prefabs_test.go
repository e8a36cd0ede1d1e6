package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#4fc3f7", color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}, false},
		{"7e57c233", color.NRGBA{R: 0x7e, G: 0x57, B: 0xc2, A: 0x33}, false},
		{" #000000 ", color.NRGBA{A: 0xff}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestYAMLColor(t *testing.T) {
	var spec SpriteComponentSpec
	require.NoError(t, yaml.Unmarshal([]byte("width: 8\ncolor: \"#ff000080\"\n"), &spec))
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0x80}, spec.Color.NRGBA)

	err := yaml.Unmarshal([]byte("color: [1, 2]\n"), &spec)
	assert.Error(t, err)
}

func TestLoadEmbeddedPrefabs(t *testing.T) {
	for _, name := range []string{"player.yaml", "chaser.yaml", "solid.yaml", "gravity_zone.yaml", "grapple_anchor.yaml", "camera.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Name)
			assert.NotEmpty(t, spec.Components)
		})
	}

	_, err := LoadEntityBuildSpec("nope.yaml")
	assert.Error(t, err)
}

func TestDecodePlayerSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("prefabs/player.yaml")
	require.NoError(t, err)

	player, err := DecodeComponentSpec[PlayerComponentSpec](spec.Components["player"])
	require.NoError(t, err)
	assert.Positive(t, player.RunSpeed)
	assert.Positive(t, player.JumpSpeed)
	assert.Positive(t, player.DashDuration)

	grapple, err := DecodeComponentSpec[GrappleComponentSpec](spec.Components["grapple"])
	require.NoError(t, err)
	assert.Equal(t, "reel", grapple.Mode)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"chaser.tengo", "scripts/chaser.tengo", "prefabs/scripts/chaser.tengo"} {
		src, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(src), "vx")
	}
}

func TestWatchedName(t *testing.T) {
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{filepath.Join("prefabs", "player.yaml"), "player.yaml", true},
		{filepath.Join("prefabs", "extra.yml"), "extra.yml", true},
		{filepath.Join("prefabs", "scripts", "chaser.tengo"), "scripts/chaser.tengo", true},
		{filepath.Join("prefabs", "player.yaml~"), "", false},
		{filepath.Join("prefabs", "README.md"), "", false},
	}
	for _, c := range cases {
		got, ok := watchedName(c.path)
		assert.Equal(t, c.ok, ok, c.path)
		assert.Equal(t, c.want, got, c.path)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("name: player\n"), 0o644))

	var got []string
	deadline := time.Now().Add(2 * time.Second)
	for len(got) == 0 && time.Now().Before(deadline) {
		got = w.Poll()
		time.Sleep(10 * time.Millisecond)
	}
	require.NotEmpty(t, got)
	assert.Equal(t, "player.yaml", got[0])
	assert.NotContains(t, got, "notes.txt")

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")
}
