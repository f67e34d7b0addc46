package pipeline

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/isseis/go-qrfile/internal/qrsymbol"
	"github.com/stretchr/testify/require"
)

// payloadImage is a stand-in raster that remembers the text rendered into it.
type payloadImage struct {
	image.Image
	text string
}

type fakeRenderer struct {
	version  int
	err      error
	calls    int
	lastText string
	lastCfg  qrsymbol.RenderConfig
}

func (r *fakeRenderer) Render(text string, cfg qrsymbol.RenderConfig) (*qrsymbol.Symbol, error) {
	r.calls++
	r.lastText = text
	r.lastCfg = cfg
	if r.err != nil {
		return nil, r.err
	}
	if text == "" {
		return nil, qrsymbol.ErrPayloadEmpty
	}
	version := r.version
	if version == 0 {
		version = 1
	}
	return &qrsymbol.Symbol{
		Image:   &payloadImage{Image: image.NewGray(image.Rect(0, 0, 21, 21)), text: text},
		Version: version,
		Modules: 17 + 4*version,
	}, nil
}

// fakeDetector returns the configured text, or the text carried by a payloadImage.
type fakeDetector struct {
	text string
	err  error
}

func (d *fakeDetector) Detect(img image.Image) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	if d.text != "" {
		return d.text, nil
	}
	if p, ok := img.(*payloadImage); ok {
		return p.text, nil
	}
	return "", qrsymbol.ErrNoQRCodeFound
}

// safeTempDir returns a temp directory with symlinks resolved.
func safeTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}
