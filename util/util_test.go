package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleToFilename(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("My_Song_Official_Video.mid", TitleToFilename("My Song! (Official Video)"))
	assert.Equal("already-safe.mid", TitleToFilename("already-safe"))
	assert.Equal("a_b.mid", TitleToFilename("  a   b  "))
	assert.Equal("output.mid", TitleToFilename("???"))
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.bin")
	err := WriteFileAtomic(path, []byte("hello"))

	assert := assert.New(t)
	assert.NoError(err)
	data, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal([]byte("hello"), data)
}

func TestWriteFileAtomicFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "file.bin")
	err := WriteFileAtomic(path, []byte("hello"))

	assert := assert.New(t)
	assert.Error(err)
	entries, readErr := os.ReadDir(dir)
	assert.NoError(readErr)
	assert.Empty(entries)
}

func TestMinMax(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1, Min(1, 2))
	assert.Equal(uint32(2), Max(uint32(1), uint32(2)))
	assert.Equal(1.5, Max(1.5, -3.0))
}
