package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"bike.png":             "bike.png",
		"../../etc/passwd.png": "passwd.png",
		`C:\Users\me\tent.jpg`: "tent.jpg",
		" spaced.gif ":         "spaced.gif",
	}
	for in, want := range tests {
		got, err := BaseName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, bad := range []string{"", "..", "/", "dir/.."} {
		_, err := BaseName(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestSave(t *testing.T) {
	s := newStorage(t)

	rel, err := s.Save(WishlistDir, "../bike.png", strings.NewReader("png"), false)
	require.NoError(t, err)
	assert.Equal(t, "lists_for_life/wishlist/bike.png", rel)

	data, err := os.ReadFile(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	_, err = s.Save(WishlistDir, "bike.png", strings.NewReader("again"), false)
	assert.ErrorIs(t, err, ErrExists)

	_, err = s.Save(YearDir(2025), "bike.png", strings.NewReader("v1"), true)
	require.NoError(t, err)
	_, err = s.Save(YearDir(2025), "bike.png", strings.NewReader("v2"), true)
	require.NoError(t, err)

	_, err = s.Save(CoversDir, "notes.txt", strings.NewReader("x"), false)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRemoveAndOpen(t *testing.T) {
	s := newStorage(t)
	_, err := s.Save(CoversDir, "dune.jpg", strings.NewReader("jpg"), false)
	require.NoError(t, err)

	full, err := s.Open(CoversDir, "dune.jpg")
	require.NoError(t, err)
	assert.FileExists(t, full)

	require.NoError(t, s.Remove(CoversDir, "dune.jpg"))
	assert.ErrorIs(t, s.Remove(CoversDir, "dune.jpg"), ErrNotFound)
	_, err = s.Open(CoversDir, "dune.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNames(t *testing.T) {
	s := newStorage(t)
	for _, n := range []string{"sky.png", "forest.jpg", "autumn.png"} {
		_, err := s.Save(BannersDir, n, strings.NewReader("x"), false)
		require.NoError(t, err)
	}
	names, err := s.Names(BannersDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"autumn", "forest", "sky"}, names)

	names, err = s.Names(IconsDir)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = s.Names("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestYearFolders(t *testing.T) {
	s := newStorage(t)
	require.NoError(t, s.RenameYear(1990, 1991), "missing folder is ignored")

	_, err := s.Save(YearDir(2024), "march.png", strings.NewReader("x"), true)
	require.NoError(t, err)
	require.NoError(t, s.RenameYear(2024, 2026))

	_, err = s.Open(YearDir(2026), "march.png")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(s.Root(), "yearly_plans", "year", "2024"))

	_, err = s.Save(YearDir(2027), "may.png", strings.NewReader("x"), true)
	require.NoError(t, err)
	assert.ErrorIs(t, s.RenameYear(2026, 2027), ErrExists)

	require.NoError(t, s.RemoveYear(2026))
	assert.NoDirExists(t, filepath.Join(s.Root(), "yearly_plans", "year", "2026"))
}
