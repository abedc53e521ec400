package xform

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Affine is a column-major 4x4 affine transform. Column layout follows the
// usual GL convention: elements [0,1,2] are the X basis axis, [4,5,6] the Y
// axis, [8,9,10] the Z axis, and [12,13,14] the translation.
type Affine struct {
	mat mgl64.Mat4
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{mat: mgl64.Ident4()}
}

// FromMat4 wraps an existing column-major matrix.
func FromMat4(m mgl64.Mat4) Affine {
	return Affine{mat: m}
}

// FromTranslation returns a pure translation transform.
func FromTranslation(t mgl64.Vec3) Affine {
	return Affine{mat: mgl64.Translate3D(t.X(), t.Y(), t.Z())}
}

// FromTRS composes translation, rotation, and scale in the usual T*R*S order.
func FromTRS(t mgl64.Vec3, r mgl64.Quat, s mgl64.Vec3) Affine {
	m := mgl64.Translate3D(t.X(), t.Y(), t.Z()).
		Mul4(r.Mat4()).
		Mul4(mgl64.Scale3D(s.X(), s.Y(), s.Z()))
	return Affine{mat: m}
}

// Mat4 returns the underlying column-major matrix.
func (a Affine) Mat4() mgl64.Mat4 {
	return a.mat
}

// Mul composes two transforms: the result applies b first, then a.
func (a Affine) Mul(b Affine) Affine {
	return Affine{mat: a.mat.Mul4(b.mat)}
}

// Translation returns the translation column.
func (a Affine) Translation() mgl64.Vec3 {
	return mgl64.Vec3{a.mat[12], a.mat[13], a.mat[14]}
}

// BasisColumn returns orientation column i (0=X, 1=Y, 2=Z). The column carries
// whatever scale the transform bakes in; callers normalize when they need
// unit axes.
func (a Affine) BasisColumn(i int) mgl64.Vec3 {
	base := i * 4
	return mgl64.Vec3{a.mat[base], a.mat[base+1], a.mat[base+2]}
}

// TransformPoint applies the full affine transform to a point: rotate and
// scale, then translate.
func (a Affine) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		a.mat[0]*p.X() + a.mat[4]*p.Y() + a.mat[8]*p.Z() + a.mat[12],
		a.mat[1]*p.X() + a.mat[5]*p.Y() + a.mat[9]*p.Z() + a.mat[13],
		a.mat[2]*p.X() + a.mat[6]*p.Y() + a.mat[10]*p.Z() + a.mat[14],
	}
}

// TransformVector applies only the rotation/scale part, ignoring translation.
func (a Affine) TransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		a.mat[0]*v.X() + a.mat[4]*v.Y() + a.mat[8]*v.Z(),
		a.mat[1]*v.X() + a.mat[5]*v.Y() + a.mat[9]*v.Z(),
		a.mat[2]*v.X() + a.mat[6]*v.Y() + a.mat[10]*v.Z(),
	}
}
