package geotek

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, n), 0755))
	}
}

func sessionNames(sessions []Session) []string {
	names := make([]string, len(sessions))
	for i, s := range sessions {
		names[i] = s.Name
	}
	return names
}

func TestDiscoverSessions_FiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"MSCL_DCH-p2",
		"MSCL_DCH-p10",
		"MSCL_DCH-p1",
		"XYZ_DCH_part1", // wrong instrument token
		"notes",         // no token at all
		".MSCL_DCH-p9",  // hidden
	)
	// A stray file whose name would otherwise match.
	require.NoError(t, os.WriteFile(filepath.Join(root, "MSCL_DCH-p3"), []byte("x"), 0644))

	sessions, err := DiscoverSessions(root, "mscl", "-p")
	require.NoError(t, err)

	assert.Equal(t, []string{"MSCL_DCH-p1", "MSCL_DCH-p2", "MSCL_DCH-p10"}, sessionNames(sessions),
		"part numbers sort numerically, not lexically")
}

func TestDiscoverSessions_FractionalParts(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "MSCL_LAKE-p2", "MSCL_LAKE-p1.5", "MSCL_LAKE-p1")

	sessions, err := DiscoverSessions(root, "mscl", "-p")
	require.NoError(t, err)

	assert.Equal(t, []string{"MSCL_LAKE-p1", "MSCL_LAKE-p1.5", "MSCL_LAKE-p2"}, sessionNames(sessions))
	assert.Equal(t, 1.5, sessions[1].Part)
}

func TestDiscoverSessions_UnparsablePartSortsLast(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "MSCL_LAKE-p2", "MSCL_LAKE-pfinal", "MSCL_LAKE-p1")

	sessions, err := DiscoverSessions(root, "mscl", "-p")
	require.NoError(t, err)

	assert.Equal(t, []string{"MSCL_LAKE-p1", "MSCL_LAKE-p2", "MSCL_LAKE-pfinal"}, sessionNames(sessions))
}

func TestDiscoverSessions_PartNumberWithTrailingNote(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "MSCL_LAKE-p2 redo", "MSCL_LAKE-p1")

	sessions, err := DiscoverSessions(root, "mscl", "-p")
	require.NoError(t, err)

	require.Len(t, sessions, 2)
	assert.Equal(t, 2.0, sessions[1].Part)
}

func TestDiscoverSessions_EmptySeparatorDisablesPartFilter(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "XRF_run2", "XRF_run1", "notes")

	sessions, err := DiscoverSessions(root, "xrf", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"XRF_run1", "XRF_run2"}, sessionNames(sessions),
		"folders without a part token are kept and ordered by name")
}

func TestDiscoverSessions_MissingRoot(t *testing.T) {
	_, err := DiscoverSessions(filepath.Join(t.TempDir(), "nope"), "mscl", "-p")
	assert.Error(t, err)
}

func TestSessionFiles_SkipsHiddenAndDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.out"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.out"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.out"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.out"), 0755))

	files, err := sessionFiles(dir, func(name string) bool { return hasExt(name, ".out") })
	require.NoError(t, err)
	assert.Equal(t, []string{"a.out", "b.out"}, files)
}
