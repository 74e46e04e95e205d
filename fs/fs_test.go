package fs

import (
	"bytes"
	"io"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestPrintEmptyFS(t *testing.T) {
	output := captureOutput(func() {
		Print("Static", fstest.MapFS{})
	})

	assert.Contains(t, output, "Static:")
}

func TestPrintWithFiles(t *testing.T) {
	testFS := fstest.MapFS{
		"map.css": &fstest.MapFile{Data: []byte("body {}")},
		"map.js":  &fstest.MapFile{Data: []byte("void 0")},
	}

	output := captureOutput(func() {
		Print("Static", testFS)
	})

	assert.Contains(t, output, "Static:")
	assert.Contains(t, output, "map.css")
	assert.Contains(t, output, "map.js")
}

func TestPrintNestedDirectories(t *testing.T) {
	testFS := fstest.MapFS{
		"icons/marker.svg":          &fstest.MapFile{Data: []byte("<svg/>")},
		"icons/selected/marker.svg": &fstest.MapFile{Data: []byte("<svg/>")},
		"map.css":                   &fstest.MapFile{Data: []byte("body {}")},
	}

	output := captureOutput(func() {
		Print("Static", testFS)
	})

	assert.Contains(t, output, "icons")
	assert.Contains(t, output, "selected")
	assert.Contains(t, output, "marker.svg")
	assert.Contains(t, output, "map.css")
}
