package core

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

func TestVertexCount(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{0, 12},
		{1, 48},
		{3, 768},
		{5, 12288},
		{6, 49152},
		{-1, 0},
	}
	for _, tc := range tests {
		if got := VertexCount(tc.depth); got != tc.want {
			t.Errorf("VertexCount(%d) = %d, want %d", tc.depth, got, tc.want)
		}
	}
}

func TestGenerateCountsAndUnitLength(t *testing.T) {
	for depth := 0; depth <= 6; depth++ {
		for _, mode := range []NormalMode{Flat, Smooth} {
			mesh, err := Generate(depth, mode)
			if err != nil {
				t.Fatalf("Generate(%d, %v): %v", depth, mode, err)
			}
			if got, want := mesh.VertexCount(), VertexCount(depth); got != want {
				t.Fatalf("depth %d %v: %d vertices, want %d", depth, mode, got, want)
			}
			if mesh.VertexCount()%3 != 0 {
				t.Fatalf("depth %d: vertex count %d not a multiple of 3", depth, mesh.VertexCount())
			}
			if cap(mesh.Vertices) != VertexCount(depth) {
				t.Errorf("depth %d: buffer capacity %d, want exact %d", depth, cap(mesh.Vertices), VertexCount(depth))
			}
			for i, v := range mesh.Vertices {
				if l := v.Position.Vec3().Len(); math32.Abs(l-1) > epsilon {
					t.Fatalf("depth %d vertex %d: |p| = %f", depth, i, l)
				}
				if v.Position[3] != 1 {
					t.Fatalf("depth %d vertex %d: w = %f", depth, i, v.Position[3])
				}
			}
		}
	}
}

func TestGenerateRejectsNegativeDepth(t *testing.T) {
	_, err := Generate(-1, Smooth)
	if !errors.Is(err, ErrNegativeDepth) {
		t.Fatalf("expected ErrNegativeDepth, got %v", err)
	}
}

func TestGenerateDepthZeroIsTetrahedron(t *testing.T) {
	mesh, err := Generate(0, Smooth)
	if err != nil {
		t.Fatal(err)
	}
	for i, face := range tetrahedronFaces {
		a, b, c := mesh.Triangle(i)
		for j, v := range []Vertex{a, b, c} {
			if v.Position != tetrahedron[face[j]] {
				t.Errorf("face %d corner %d: got %v, want %v", i, j, v.Position, tetrahedron[face[j]])
			}
		}
	}
}

func TestGenerateSlots(t *testing.T) {
	specs := []SlotSpec{
		{Depth: 5, Mode: Smooth},
		{Depth: 3, Mode: Flat},
		{Depth: 4, Mode: Smooth},
		{Depth: 6, Mode: Smooth},
		{Depth: 5, Mode: Smooth},
		{Depth: 3, Mode: Smooth},
	}
	meshes, err := GenerateSlots(specs)
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != len(specs) {
		t.Fatalf("got %d meshes, want %d", len(meshes), len(specs))
	}
	for i, m := range meshes {
		if m.Depth != specs[i].Depth || m.Mode != specs[i].Mode {
			t.Errorf("slot %d: got depth %d mode %v", i, m.Depth, m.Mode)
		}
		if m.VertexCount() != VertexCount(specs[i].Depth) {
			t.Errorf("slot %d: %d vertices", i, m.VertexCount())
		}
	}

	_, err = GenerateSlots([]SlotSpec{{Depth: 1}, {Depth: -2}})
	if !errors.Is(err, ErrNegativeDepth) {
		t.Fatalf("expected ErrNegativeDepth for bad slot, got %v", err)
	}
}

func TestUnitDegenerate(t *testing.T) {
	got := unit(mgl32.Vec4{1e-5, 0, 0, 1})
	if got != (mgl32.Vec4{0, 0, 0, 1}) {
		t.Errorf("unit of near-zero vector = %v, want origin with w=1", got)
	}
	got = unit(mgl32.Vec4{0, 3, 4, 2})
	if !got.ApproxEqualThreshold(mgl32.Vec4{0, 0.6, 0.8, 1}, epsilon) {
		t.Errorf("unit((0,3,4)) = %v", got)
	}
}

func TestMeshFlatten(t *testing.T) {
	mesh, err := Generate(1, Flat)
	if err != nil {
		t.Fatal(err)
	}
	pos := mesh.Positions()
	nrm := mesh.Normals()
	if len(pos) != 4*mesh.VertexCount() || len(nrm) != 3*mesh.VertexCount() {
		t.Fatalf("flattened sizes %d/%d for %d vertices", len(pos), len(nrm), mesh.VertexCount())
	}
	last := mesh.Vertices[mesh.VertexCount()-1]
	if pos[len(pos)-1] != last.Position[3] || nrm[len(nrm)-1] != last.Normal[2] {
		t.Error("flattened data out of order")
	}
}
