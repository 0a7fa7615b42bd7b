package quarkgl

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	got := Mat4Mul(a, b)
	if got != b {
		t.Fatalf("identity*a mismatch")
	}
	got2 := Mat4Mul(b, a)
	if got2 != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func TestTransformMatrixOrder(t *testing.T) {
	tr := Transform{Position: V3(1, 0, 0), Rotation: V3(0, 0, math32.Pi/2), Scale: V3(2, 2, 2)}
	got := Mat4MulPoint(tr.Matrix(), V3(1, 0, 0))
	// Scale to (2,0,0), rotate to (0,2,0), translate to (1,2,0).
	if math32.Abs(got.X-1) > 1e-4 || math32.Abs(got.Y-2) > 1e-4 || math32.Abs(got.Z) > 1e-4 {
		t.Fatalf("got %+v, want (1,2,0)", got)
	}
}

func TestTransformZeroScaleIsUnit(t *testing.T) {
	if (Transform{}).Matrix() != Mat4Identity() {
		t.Fatalf("zero transform should be identity")
	}
}

func TestFinite(t *testing.T) {
	if Finite(math32.NaN()) || Finite(math32.Inf(1)) {
		t.Fatalf("NaN/Inf reported finite")
	}
	if !Finite(1) {
		t.Fatalf("1 reported non-finite")
	}
}

func TestIcosphereOnRadius(t *testing.T) {
	m := NewIcosphereMesh(10, 2)
	if len(m.Indices) != 20*16*3 {
		t.Fatalf("indices=%d, want %d", len(m.Indices), 20*16*3)
	}
	for i, v := range m.Vertices {
		if d := math32.Abs(Len(v.Pos) - 10); d > 1e-3 {
			t.Fatalf("vertex %d at radius %v", i, Len(v.Pos))
		}
	}
}

func TestHexAndMix(t *testing.T) {
	gold, err := Hex("#FFC222")
	if err != nil {
		t.Fatalf("Hex: %v", err)
	}
	if gold != RGB(0xFF, 0xC2, 0x22) {
		t.Fatalf("gold=%+v", gold)
	}
	if _, err := Hex("nope"); err == nil {
		t.Fatalf("expected error for bad hex")
	}
	if got := Mix(gold, RGB(0, 0, 0), 0); got != gold {
		t.Fatalf("Mix t=0 = %+v", got)
	}
}
