package image

import (
	"bytes"
	stdimage "image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestFromStdImageStraightAlpha(t *testing.T) {
	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	buf := FromStdImage(src)
	r, g, b, a := buf.GetRGBA(0, 0)
	if r != 200 || g != 100 || b != 50 || a != 128 {
		t.Errorf("NRGBA copy = (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestFromStdImagePremultipliedSource(t *testing.T) {
	// RGBA stores premultiplied; conversion must recover straight values.
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 25, A: 128})

	buf := FromStdImage(src)
	r, _, _, a := buf.GetRGBA(0, 0)
	if a != 128 {
		t.Fatalf("alpha = %d, want 128", a)
	}
	// 100 premultiplied at a=128 unpremultiplies to roughly 199.
	if r < 195 || r > 203 {
		t.Errorf("unpremultiplied red = %d, want near 199", r)
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	buf, err := NewImageBuf(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	buf.Fill(12, 34, 56, 255)
	_ = buf.SetRGBA(1, 1, 200, 100, 50, 255)

	var stream bytes.Buffer
	if err := buf.EncodePNG(&stream); err != nil {
		t.Fatal(err)
	}

	back, err := Decode(&stream)
	if err != nil {
		t.Fatal(err)
	}
	if back.Width() != 3 || back.Height() != 2 {
		t.Fatalf("decoded size %dx%d", back.Width(), back.Height())
	}
	if got := back.GetPacked(1, 1); got != 0xffc86432 {
		t.Errorf("decoded pixel = %#08x", got)
	}
}

func TestLoadImagePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tile.png")

	buf, err := NewImageBuf(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	buf.Fill(9, 8, 7, 255)

	f, err := os.Create(path) //nolint:gosec // temp dir path
	if err != nil {
		t.Fatal(err)
	}
	if err := buf.EncodePNG(f); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.GetPacked(0, 0); got != 0xff090807 {
		t.Errorf("loaded pixel = %#08x", got)
	}

	if _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should error")
	}
}
