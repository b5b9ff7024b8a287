package importer

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestImportExactPath(t *testing.T) {
	fsys := fstest.MapFS{
		"vars.less": &fstest.MapFile{Data: []byte("@c: red;")},
	}
	imp := New(fsys)

	source, canonical, already, err := imp.Import("vars.less", "main.less")
	require.NoError(t, err)
	require.False(t, already)
	require.Equal(t, "vars.less", canonical)
	require.Equal(t, "@c: red;", source)
}

func TestImportAppendsLessExtension(t *testing.T) {
	fsys := fstest.MapFS{
		"vars.less": &fstest.MapFile{Data: []byte("@c: red;")},
	}
	imp := New(fsys)

	_, canonical, _, err := imp.Import("vars", "main.less")
	require.NoError(t, err)
	require.Equal(t, "vars.less", canonical)
}

func TestImportRelativeToCurrentFile(t *testing.T) {
	fsys := fstest.MapFS{
		"lib/vars.less": &fstest.MapFile{Data: []byte("@c: blue;")},
	}
	imp := New(fsys)

	source, canonical, _, err := imp.Import("vars.less", "lib/main.less")
	require.NoError(t, err)
	require.Equal(t, "lib/vars.less", canonical)
	require.Equal(t, "@c: blue;", source)
}

func TestImportFallsBackToPartial(t *testing.T) {
	fsys := fstest.MapFS{
		"_mixins.less": &fstest.MapFile{Data: []byte(".m() {}")},
	}
	imp := New(fsys)

	_, canonical, _, err := imp.Import("mixins", "main.less")
	require.NoError(t, err)
	require.Equal(t, "_mixins.less", canonical)
}

func TestImportNotFound(t *testing.T) {
	imp := New(fstest.MapFS{})

	_, _, _, err := imp.Import("missing.less", "main.less")
	require.Error(t, err)
}
