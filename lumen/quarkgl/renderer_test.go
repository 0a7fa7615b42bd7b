package quarkgl

import "testing"

type segs [][2]Vec3

func (s segs) Len() int { return len(s) }
func (s segs) Segment(i int) (a, b Vec3, alpha Scalar, ok bool) {
	return s[i][0], s[i][1], 1, true
}

func orthoScene(n int) *Scene {
	s := CreateScene(n)
	s.Camera = Camera{
		Type:      CameraOrtho,
		Position:  V3(0, 0, 10),
		Target:    V3(0, 0, 0),
		Up:        V3(0, 1, 0),
		OrthoSize: 10,
		Near:      0.1,
		Far:       100,
		Aspect:    1,
	}
	return s
}

func TestSceneCapacity(t *testing.T) {
	s := CreateScene(2)
	if id := s.AddMesh(NewQuadMesh(1), Material{}); id != 0 {
		t.Fatalf("first id=%d", id)
	}
	if id := s.AddMesh(NewQuadMesh(1), Material{}); id != 1 {
		t.Fatalf("second id=%d", id)
	}
	if id := s.AddMesh(NewQuadMesh(1), Material{}); id != -1 {
		t.Fatalf("full scene returned %d", id)
	}
	s.RemoveNode(0)
	if id := s.AddMesh(NewQuadMesh(1), Material{}); id != 0 {
		t.Fatalf("reuse id=%d", id)
	}
	if id := s.AddPoints(nil, Material{}); id != -1 {
		t.Fatalf("nil points accepted")
	}
}

func TestSceneOrderStable(t *testing.T) {
	s := CreateScene(3)
	a := s.AddNode(Node{Kind: NodeMesh, Order: 1})
	b := s.AddNode(Node{Kind: NodeMesh, Order: 0})
	c := s.AddNode(Node{Kind: NodeMesh, Order: 1})
	want := []int{b, a, c}
	for i, id := range s.order {
		if id != want[i] {
			t.Fatalf("order=%v, want %v", s.order, want)
		}
	}
}

func TestRenderQuadFillsCenter(t *testing.T) {
	s := orthoScene(1)
	s.AddMesh(NewQuadMesh(4), Material{BaseColor: RGB(0xFF, 0, 0)})

	tgt := NewRGBATarget(20, 20)
	r := NewRenderer(20, 20, true)
	r.Render(tgt, s)

	if got := tgt.At(10, 10); got != RGB(0xFF, 0, 0) {
		t.Fatalf("center=%+v, want red", got)
	}
	if got := tgt.At(0, 0); got != RGB(0, 0, 0) {
		t.Fatalf("corner=%+v, want clear color", got)
	}
}

func TestRenderAdditivePointsSaturate(t *testing.T) {
	s := orthoScene(2)
	pc := &PointCloud{Positions: []Vec3{{}, {}}, Size: 1}
	s.AddPoints(pc, Material{BaseColor: RGB(200, 200, 200), Blend: BlendAdditive})

	tgt := NewRGBATarget(9, 9)
	r := NewRenderer(9, 9, false)
	r.Render(tgt, s)

	if got := tgt.At(4, 4); got.R != 0xFF {
		t.Fatalf("additive point=%+v, want saturated", got)
	}
}

func TestRenderLinesAndDisabled(t *testing.T) {
	s := orthoScene(1)
	id := s.AddLines(segs{{V3(-5, 0, 0), V3(5, 0, 0)}}, Material{BaseColor: RGB(0, 0xFF, 0)})

	tgt := NewRGBATarget(21, 21)
	r := NewRenderer(21, 21, false)
	r.Render(tgt, s)
	if got := tgt.At(10, 10); got.G != 0xFF {
		t.Fatalf("line pixel=%+v", got)
	}

	s.SetNodeEnabled(id, false)
	r.Render(tgt, s)
	if got := tgt.At(10, 10); got.G != 0 {
		t.Fatalf("disabled line drawn: %+v", got)
	}
}

func TestRenderBehindCameraSkipped(t *testing.T) {
	s := CreateScene(1)
	s.Camera.Position = V3(0, 0, 5)
	pc := &PointCloud{Positions: []Vec3{V3(0, 0, 10)}, Size: 3}
	s.AddPoints(pc, Material{BaseColor: RGB(0xFF, 0xFF, 0xFF)})

	tgt := NewRGBATarget(10, 10)
	NewRenderer(10, 10, false).Render(tgt, s)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if tgt.At(x, y).R != 0 {
				t.Fatalf("point behind camera drawn at %d,%d", x, y)
			}
		}
	}
}

func TestTextureSample(t *testing.T) {
	tex := &Texture{W: 2, H: 1, Pix: []Color{RGB(1, 0, 0), RGB(2, 0, 0)}}
	if got := tex.Sample(0, 0); got.R != 1 {
		t.Fatalf("left=%+v", got)
	}
	if got := tex.Sample(5, 0); got.R != 2 {
		t.Fatalf("clamped right=%+v", got)
	}
	var nilTex *Texture
	if got := nilTex.Sample(0, 0); got != (Color{}) {
		t.Fatalf("nil texture sample=%+v", got)
	}
}
