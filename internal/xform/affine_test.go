package xform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityColumns(t *testing.T) {
	id := Identity()
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, id.BasisColumn(0))
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, id.BasisColumn(1))
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, id.BasisColumn(2))
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, id.Translation())
}

func TestFromTranslation(t *testing.T) {
	a := FromTranslation(mgl64.Vec3{1, 2, 3})
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, a.Translation())
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, a.BasisColumn(0))
}

func TestFromTRSComposesInOrder(t *testing.T) {
	// 90 degrees around Z maps +X to +Y; scale doubles; translate last.
	rot := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	a := FromTRS(mgl64.Vec3{10, 0, 0}, rot, mgl64.Vec3{2, 2, 2})

	p := a.TransformPoint(mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 10, p.X(), 1e-9)
	assert.InDelta(t, 2, p.Y(), 1e-9)
	assert.InDelta(t, 0, p.Z(), 1e-9)
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	rotate := FromTRS(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}), mgl64.Vec3{1, 1, 1})
	translate := FromTranslation(mgl64.Vec3{1, 0, 0})

	// rotate * translate: translate first, then rotate. (1,0,0)+(1,0,0)=(2,0,0)
	// rotated to (0,2,0).
	p := rotate.Mul(translate).TransformPoint(mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 0, p.X(), 1e-9)
	assert.InDelta(t, 2, p.Y(), 1e-9)
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	a := FromTranslation(mgl64.Vec3{5, 5, 5})
	v := a.TransformVector(mgl64.Vec3{1, 2, 3})
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, v)
}

func TestBasisColumnCarriesScale(t *testing.T) {
	a := FromTRS(mgl64.Vec3{}, mgl64.QuatIdent(), mgl64.Vec3{3, 1, 1})
	x := a.BasisColumn(0)
	require.InDelta(t, 3, x.Len(), 1e-9)
}

func TestColumnMajorLayout(t *testing.T) {
	a := FromTranslation(mgl64.Vec3{7, 8, 9})
	m := a.Mat4()
	assert.Equal(t, 7.0, m[12])
	assert.Equal(t, 8.0, m[13])
	assert.Equal(t, 9.0, m[14])
}
