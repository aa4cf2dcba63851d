package portfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFields(t *testing.T) {
	fields := ScanFields(gpingPortfile)

	var keys []string
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"PortSystem", "PortGroup", "PortGroup", "github.setup", "revision", "categories", "license", "description", "checksums"}, keys)

	setup, ok := fieldNamed(fields, "github.setup")
	require.True(t, ok)
	assert.Equal(t, "orf gping 0.1 v", setup.Value)
	assert.Equal(t, 7, setup.Line)
	assert.Equal(t, setup.Value, gpingPortfile[setup.Start:setup.End])

	sums, ok := fieldNamed(fields, "checksums")
	require.True(t, ok)
	assert.Contains(t, sums.Value, "rmd160")
	assert.Contains(t, sums.Value, "size    30070")
	assert.Equal(t, 14, sums.Line)

	_, ok = fieldNamed(fields, "homepage")
	assert.False(t, ok)
}

func TestScanFields_SkipsCommentsAndBlocks(t *testing.T) {
	text := "# version 9.9\n\nsubport foo {\n    revision 1\n}\n"
	fields := ScanFields(text)
	require.Len(t, fields, 2)
	assert.Equal(t, "subport", fields[0].Key)
	assert.Equal(t, "revision", fields[1].Key)
	assert.Equal(t, "1", fields[1].Value)
	assert.Equal(t, 4, fields[1].Line)
}

func TestFieldClassifiers(t *testing.T) {
	assert.True(t, IsVersionField("version"))
	assert.True(t, IsVersionField("github.setup"))
	assert.True(t, IsVersionField("python.setup"))
	assert.False(t, IsVersionField("revision"))
	assert.True(t, IsChecksumField("checksums"))
	assert.True(t, IsChecksumField("checksums-append"))
	assert.False(t, IsChecksumField("distname"))
}

func fieldNamed(fields []Field, key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
