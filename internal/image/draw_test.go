package image

import "testing"

func solidBuf(t *testing.T, w, h int, r, g, b, a uint8) *ImageBuf {
	t.Helper()
	buf, err := NewImageBuf(w, h)
	if err != nil {
		t.Fatal(err)
	}
	buf.Fill(r, g, b, a)
	return buf
}

func TestDrawImageNormal(t *testing.T) {
	dst := solidBuf(t, 8, 8, 0, 0, 0, 255)
	src := solidBuf(t, 4, 4, 255, 0, 0, 255)

	DrawImage(dst, src, DrawParams{
		DstRect: Rect{X: 2, Y: 2, Width: 4, Height: 4},
		Opacity: 1,
	})

	if r, _, _, _ := dst.GetRGBA(3, 3); r != 255 {
		t.Errorf("inside rect = %d, want 255", r)
	}
	if r, _, _, _ := dst.GetRGBA(0, 0); r != 0 {
		t.Errorf("outside rect = %d, want untouched", r)
	}
}

func TestDrawImageOpacity(t *testing.T) {
	dst := solidBuf(t, 4, 4, 0, 0, 0, 255)
	src := solidBuf(t, 4, 4, 255, 255, 255, 255)

	DrawImage(dst, src, DrawParams{
		DstRect: Rect{Width: 4, Height: 4},
		Opacity: 0.5,
	})

	if r, _, _, _ := dst.GetRGBA(2, 2); r < 120 || r > 135 {
		t.Errorf("half-opacity blit = %d, want near 128", r)
	}
}

func TestDrawImageMultiply(t *testing.T) {
	dst := solidBuf(t, 4, 4, 200, 200, 200, 255)
	src := solidBuf(t, 4, 4, 128, 128, 128, 255)

	DrawImage(dst, src, DrawParams{
		DstRect:   Rect{Width: 4, Height: 4},
		Opacity:   1,
		BlendMode: BlendMultiply,
	})

	// 200/255 * 128/255 is roughly 100.
	if r, _, _, _ := dst.GetRGBA(1, 1); r < 95 || r > 106 {
		t.Errorf("multiply blit = %d, want near 100", r)
	}
}

func TestDrawImageScreenLightens(t *testing.T) {
	dst := solidBuf(t, 2, 2, 100, 100, 100, 255)
	src := solidBuf(t, 2, 2, 100, 100, 100, 255)

	DrawImage(dst, src, DrawParams{
		DstRect:   Rect{Width: 2, Height: 2},
		Opacity:   1,
		BlendMode: BlendScreen,
	})

	if r, _, _, _ := dst.GetRGBA(0, 0); r <= 100 {
		t.Errorf("screen blit = %d, want lighter than 100", r)
	}
}

func TestDrawImageClipsDstRect(t *testing.T) {
	dst := solidBuf(t, 4, 4, 0, 0, 0, 255)
	src := solidBuf(t, 8, 8, 255, 0, 0, 255)

	// Rect extends past the destination; only the overlap paints.
	DrawImage(dst, src, DrawParams{
		DstRect: Rect{X: 2, Y: 2, Width: 8, Height: 8},
		Opacity: 1,
	})

	if r, _, _, _ := dst.GetRGBA(3, 3); r != 255 {
		t.Errorf("overlap = %d, want painted", r)
	}
	if r, _, _, _ := dst.GetRGBA(1, 1); r != 0 {
		t.Errorf("outside overlap = %d, want untouched", r)
	}
}

func TestDrawImageNilSafe(t *testing.T) {
	dst := solidBuf(t, 2, 2, 0, 0, 0, 255)
	DrawImage(nil, dst, DrawParams{DstRect: Rect{Width: 2, Height: 2}})
	DrawImage(dst, nil, DrawParams{DstRect: Rect{Width: 2, Height: 2}})
	if r, _, _, _ := dst.GetRGBA(0, 0); r != 0 {
		t.Error("nil-argument draw should be a no-op")
	}
}
