package script

import (
	"fmt"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/tilewalk"
	"github.com/stretchr/testify/require"
)

// blank serves empty images sized by the path, e.g. "16x24" or "16x24-n1".
var blank = tilewalk.ImageLoaderFunc(func(path string) (*ebiten.Image, error) {
	var w, h int
	if _, err := fmt.Sscanf(path, "%dx%d", &w, &h); err != nil {
		return nil, fmt.Errorf("image %s: %w", path, tilewalk.ErrNotFound)
	}
	return ebiten.NewImage(w, h), nil
})

type fakeSound struct {
	played, looped []string
}

func (f *fakeSound) Play(path string) { f.played = append(f.played, path) }
func (f *fakeSound) Loop(path string) { f.looped = append(f.looped, path) }

func newBridge(t *testing.T) (*Bridge, *fakeSound) {
	t.Helper()
	s, err := tilewalk.NewSurface(tilewalk.SurfaceOptions{Width: 320, Height: 180, Loader: blank})
	require.NoError(t, err)
	snd := &fakeSound{}
	return NewBridge(s, snd, nil), snd
}

// exec runs a command that must succeed.
func exec(t *testing.T, b *Bridge, cmd string, args ...string) string {
	t.Helper()
	res, err := b.Exec(cmd, args...)
	require.NoError(t, err, "%s %v", cmd, args)
	return res
}

// node resolves a handle result that must exist.
func node(t *testing.T, b *Bridge, h string) *tilewalk.Node {
	t.Helper()
	var id int
	_, err := fmt.Sscan(h, &id)
	require.NoError(t, err)
	n, ok := b.Node(id)
	require.True(t, ok, "handle %s", h)
	return n
}
