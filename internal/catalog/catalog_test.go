package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"CollageBoard/internal/state"
)

type failing struct{ err error }

func (f failing) SampleImages(context.Context) ([]state.ImageRef, error) { return nil, f.err }

func TestStaticReturnsCopy(t *testing.T) {
	refs, err := DefaultSamples.SampleImages(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 5)

	refs[0] = "changed"
	require.Equal(t, state.ImageRef("sample_1"), DefaultSamples[0])
}

func TestStaticHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DefaultSamples.SampleImages(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFromStringsSkipsBlank(t *testing.T) {
	require.Equal(t, Static{"a", "b"}, FromStrings([]string{" a ", "", "b", "  "}))
}

func TestDirListsImagesOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "notes.txt", "c.webp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	refs, err := Dir{Path: dir}.SampleImages(context.Background())
	require.NoError(t, err)
	require.Equal(t, []state.ImageRef{
		state.ImageRef(filepath.Join(dir, "a.JPG")),
		state.ImageRef(filepath.Join(dir, "b.png")),
		state.ImageRef(filepath.Join(dir, "c.webp")),
	}, refs)
}

func TestDirMissing(t *testing.T) {
	_, err := Dir{Path: filepath.Join(t.TempDir(), "absent")}.SampleImages(context.Background())
	require.Error(t, err)
}

func TestLoadAsyncDispatchesSamples(t *testing.T) {
	st := state.NewStore(state.DefaultOptions())
	select {
	case <-LoadAsync(context.Background(), Static{"x", "y"}, st):
	case <-time.After(2 * time.Second):
		t.Fatal("catalog load did not finish")
	}
	require.Equal(t, []state.ImageRef{"x", "y"}, st.State().SampleImages)
	require.Nil(t, st.State().Error)
}

func TestLoadFailureRaisesError(t *testing.T) {
	st := state.NewStore(state.DefaultOptions())
	Load(context.Background(), failing{err: errors.New("disk gone")}, st)

	s := st.State()
	require.NotNil(t, s.Error)
	require.Contains(t, *s.Error, "disk gone")
	require.Empty(t, s.SampleImages)

	st.Dispatch(state.DismissError{})
	require.Nil(t, st.State().Error)
}
