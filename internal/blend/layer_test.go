package blend

import (
	"testing"

	"github.com/gogpu/vraster/internal/image"
)

func newBase(t *testing.T, w, h int) *image.ImageBuf {
	t.Helper()
	base, err := image.NewImageBuf(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return base
}

func TestLayerStackPushPop(t *testing.T) {
	base := newBase(t, 16, 16)
	stack := NewLayerStack(base, image.NewPool(4))

	if stack.Depth() != 0 {
		t.Fatalf("fresh stack depth = %d", stack.Depth())
	}
	if stack.Current() != base {
		t.Error("empty stack should draw on the base")
	}

	layer, err := stack.Push(BlendSourceOver, 1, Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	if stack.Depth() != 1 {
		t.Errorf("depth after push = %d", stack.Depth())
	}
	if stack.Current() != layer.Buffer() {
		t.Error("current should be the pushed layer's buffer")
	}
	// Zero bounds adopt the base dimensions.
	if w, h := layer.Buffer().Bounds(); w != 16 || h != 16 {
		t.Errorf("layer size = %dx%d, want base size", w, h)
	}

	if got := stack.Pop(); got != base {
		t.Error("pop of the last layer should composite onto the base")
	}
	if stack.Depth() != 0 {
		t.Errorf("depth after pop = %d", stack.Depth())
	}
	if stack.Pop() != nil {
		t.Error("pop of an empty stack should return nil")
	}
}

func TestLayerPopComposites(t *testing.T) {
	base := newBase(t, 4, 4)
	base.Fill(0, 0, 0, 255)

	stack := NewLayerStack(base, image.NewPool(4))
	layer, err := stack.Push(BlendSourceOver, 1, Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	layer.Buffer().Fill(255, 255, 255, 255)
	stack.Pop()

	if r, _, _, a := base.GetRGBA(2, 2); r != 255 || a != 255 {
		t.Errorf("composited base pixel = %d/%d, want opaque white", r, a)
	}
}

func TestLayerOpacityScalesResult(t *testing.T) {
	base := newBase(t, 4, 4)
	base.Fill(0, 0, 0, 255)

	stack := NewLayerStack(base, image.NewPool(4))
	layer, err := stack.Push(BlendSourceOver, 0.5, Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	layer.Buffer().Fill(255, 255, 255, 255)
	stack.Pop()

	if r, _, _, _ := base.GetRGBA(1, 1); r < 115 || r > 140 {
		t.Errorf("half-opacity composite = %d, want near 128", r)
	}
}

func TestLayerBlendModeApplies(t *testing.T) {
	base := newBase(t, 4, 4)
	base.Fill(200, 200, 200, 255)

	stack := NewLayerStack(base, image.NewPool(4))
	layer, err := stack.Push(BlendMultiply, 1, Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	layer.Buffer().Fill(128, 128, 128, 255)
	stack.Pop()

	// 200/255 * 128/255 is roughly 100.
	if r, _, _, _ := base.GetRGBA(0, 0); r < 95 || r > 106 {
		t.Errorf("multiply layer composite = %d, want near 100", r)
	}
}

func TestLayerBoundsOffsetComposite(t *testing.T) {
	base := newBase(t, 8, 8)
	base.Fill(0, 0, 0, 255)

	stack := NewLayerStack(base, image.NewPool(4))
	layer, err := stack.Push(BlendSourceOver, 1, Bounds{X: 4, Y: 4, Width: 2, Height: 2})
	if err != nil {
		t.Fatal(err)
	}
	layer.Buffer().Fill(255, 0, 0, 255)
	stack.Pop()

	if r, _, _, _ := base.GetRGBA(5, 5); r != 255 {
		t.Errorf("offset layer pixel = %d, want painted", r)
	}
	if r, _, _, _ := base.GetRGBA(1, 1); r != 0 {
		t.Errorf("outside offset bounds = %d, want untouched", r)
	}
}

func TestLayerNestedComposite(t *testing.T) {
	base := newBase(t, 4, 4)
	base.Fill(0, 0, 0, 255)

	stack := NewLayerStack(base, image.NewPool(4))
	outer, err := stack.Push(BlendSourceOver, 1, Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	inner, err := stack.Push(BlendSourceOver, 1, Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	inner.Buffer().Fill(0, 255, 0, 255)

	// First pop lands on the outer layer, not the base.
	if got := stack.Pop(); got != outer.Buffer() {
		t.Fatal("inner pop should composite onto the outer layer")
	}
	if r, g, _, _ := base.GetRGBA(0, 0); r != 0 || g != 0 {
		t.Error("base touched before the outer layer popped")
	}

	stack.Pop()
	if _, g, _, _ := base.GetRGBA(0, 0); g != 255 {
		t.Errorf("nested composite green = %d, want 255", g)
	}
}

func TestLayerStackClear(t *testing.T) {
	base := newBase(t, 4, 4)
	stack := NewLayerStack(base, image.NewPool(4))
	if _, err := stack.Push(BlendSourceOver, 1, Bounds{}); err != nil {
		t.Fatal(err)
	}
	if _, err := stack.Push(BlendSourceOver, 1, Bounds{}); err != nil {
		t.Fatal(err)
	}

	stack.Clear()
	if stack.Depth() != 0 {
		t.Errorf("depth after clear = %d", stack.Depth())
	}
	if stack.Current() != base {
		t.Error("cleared stack should target the base without compositing")
	}
}

func TestNewLayerClampsOpacity(t *testing.T) {
	pool := image.NewPool(2)
	layer, err := NewLayer(BlendSourceOver, 7, Bounds{Width: 2, Height: 2}, pool)
	if err != nil {
		t.Fatal(err)
	}
	if layer.Opacity() != 1 {
		t.Errorf("opacity = %v, want clamped to 1", layer.Opacity())
	}

	layer.SetOpacity(-3)
	if layer.Opacity() != 0 {
		t.Errorf("opacity = %v, want clamped to 0", layer.Opacity())
	}
}
