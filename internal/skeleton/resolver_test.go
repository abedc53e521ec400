package skeleton

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelviz/internal/asset"
	"skelviz/internal/core/ecs"
	"skelviz/internal/xform"
)

// fakeScene is a map-backed world-transform lookup.
type fakeScene map[ecs.EntityID]xform.Affine

func (f fakeScene) WorldMatrix(id ecs.EntityID) (xform.Affine, bool) {
	m, ok := f[id]
	return m, ok
}

func twoBoneAsset(t *testing.T) *asset.SkeletonAsset {
	t.Helper()
	a, err := asset.NewSkeleton("stick", []asset.Bone{
		{Name: "root", ParentIndex: asset.RootParent, BindPose: xform.FromTranslation(mgl64.Vec3{0, 1, 0})},
		{Name: "tip", ParentIndex: 0, BindPose: xform.FromTranslation(mgl64.Vec3{0, 2, 0})},
	})
	require.NoError(t, err)
	return a
}

func TestResolveBindFallback(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	scene := fakeScene{inst: xform.FromTranslation(mgl64.Vec3{10, 0, 0})}
	b := &Binding{Entity: inst}

	ip := NewResolver(scene).ResolveInstance(b, a, false)
	require.Len(t, ip.Bones, 2)

	for i, pose := range ip.Bones {
		require.True(t, pose.Valid, "bone %d", i)
		assert.Equal(t, SourceBindPose, pose.Source)
	}
	assert.Equal(t, mgl64.Vec3{10, 1, 0}, ip.Bones[0].Position)
	assert.Equal(t, mgl64.Vec3{10, 2, 0}, ip.Bones[1].Position)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, ip.Bones[0].Axis[0])
}

func TestResolveFallbackAxesKeepInstanceScale(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	scene := fakeScene{
		inst: xform.FromTRS(mgl64.Vec3{}, mgl64.QuatIdent(), mgl64.Vec3{2, 2, 2}),
	}
	b := &Binding{Entity: inst}

	ip := NewResolver(scene).ResolveInstance(b, a, false)
	// The fallback path does not normalize: a scaled instance world yields
	// scaled axes.
	assert.InDelta(t, 2.0, ip.Bones[0].Axis[0].Len(), 1e-12)
	assert.InDelta(t, 2.0, ip.Bones[0].Axis[1].Len(), 1e-12)
	assert.InDelta(t, 2.0, ip.Bones[0].Axis[2].Len(), 1e-12)
}

func TestResolveLivePrecedence(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	liveTip := ecs.EntityID(2)
	scene := fakeScene{
		inst:    xform.FromTranslation(mgl64.Vec3{10, 0, 0}),
		liveTip: xform.FromTranslation(mgl64.Vec3{-5, 7, 0}),
	}
	b := &Binding{Entity: inst, LiveBones: []ecs.EntityID{0, liveTip}}

	ip := NewResolver(scene).ResolveInstance(b, a, false)

	// Root has no live entity: bind fallback.
	assert.Equal(t, SourceBindPose, ip.Bones[0].Source)
	// Tip is driven live and ignores the instance world entirely.
	assert.Equal(t, SourceLive, ip.Bones[1].Source)
	assert.Equal(t, mgl64.Vec3{-5, 7, 0}, ip.Bones[1].Position)
}

func TestResolveLiveAxesNormalized(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	live := ecs.EntityID(2)
	scene := fakeScene{
		inst: xform.Identity(),
		live: xform.FromTRS(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}), mgl64.Vec3{3, 3, 3}),
	}
	b := &Binding{Entity: inst, LiveBones: []ecs.EntityID{live}}

	ip := NewResolver(scene).ResolveInstance(b, a, false)
	require.Equal(t, SourceLive, ip.Bones[0].Source)
	for c := 0; c < 3; c++ {
		assert.InDelta(t, 1.0, ip.Bones[0].Axis[c].Len(), 1e-12, "column %d", c)
	}
}

func TestResolveLiveDegenerateColumnGetsIdentityAxis(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	live := ecs.EntityID(2)

	// Zero out the X basis column entirely.
	m := mgl64.Ident4()
	m[0], m[1], m[2] = 0, 0, 0
	scene := fakeScene{
		inst: xform.Identity(),
		live: xform.FromMat4(m),
	}
	b := &Binding{Entity: inst, LiveBones: []ecs.EntityID{live}}

	ip := NewResolver(scene).ResolveInstance(b, a, false)
	require.True(t, ip.Bones[0].Valid)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, ip.Bones[0].Axis[0])
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, ip.Bones[0].Axis[1])
}

func TestResolveNoDataIsInvalidNotError(t *testing.T) {
	a := twoBoneAsset(t)
	b := &Binding{Entity: ecs.EntityID(1)}

	// Neither the instance nor any live bone is in the scene.
	ip := NewResolver(fakeScene{}).ResolveInstance(b, a, false)
	require.Len(t, ip.Bones, 2)
	for _, pose := range ip.Bones {
		assert.False(t, pose.Valid)
		assert.Equal(t, SourceNone, pose.Source)
	}
}

func TestResolveStaleLiveFallsBackToBind(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	scene := fakeScene{inst: xform.Identity()}
	// Live slot points at an entity the scene no longer knows.
	b := &Binding{Entity: inst, LiveBones: []ecs.EntityID{ecs.EntityID(99)}}

	ip := NewResolver(scene).ResolveInstance(b, a, false)
	assert.Equal(t, SourceBindPose, ip.Bones[0].Source)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, ip.Bones[0].Position)
}

func TestResolveIsIdempotent(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	live := ecs.EntityID(2)
	scene := fakeScene{
		inst: xform.FromTranslation(mgl64.Vec3{3, 0, 0}),
		live: xform.FromTranslation(mgl64.Vec3{0, 4, 0}),
	}
	b := &Binding{Entity: inst, LiveBones: []ecs.EntityID{live}}

	r := NewResolver(scene)
	first := r.ResolveInstance(b, a, true)
	second := r.ResolveInstance(b, a, true)
	assert.Equal(t, first.Bones, second.Bones)
}

func TestParentPositionPrefersLive(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	liveRoot := ecs.EntityID(2)
	scene := fakeScene{
		inst:     xform.FromTranslation(mgl64.Vec3{10, 0, 0}),
		liveRoot: xform.FromTranslation(mgl64.Vec3{1, 2, 3}),
	}
	b := &Binding{Entity: inst, LiveBones: []ecs.EntityID{liveRoot}}
	ip := NewResolver(scene).ResolveInstance(b, a, false)

	p, ok := ip.ParentPosition(0)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, p)
}

func TestParentPositionBindFallbackAndBounds(t *testing.T) {
	a := twoBoneAsset(t)
	inst := ecs.EntityID(1)
	scene := fakeScene{inst: xform.FromTranslation(mgl64.Vec3{10, 0, 0})}
	b := &Binding{Entity: inst}
	ip := NewResolver(scene).ResolveInstance(b, a, false)

	p, ok := ip.ParentPosition(0)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{10, 1, 0}, p)

	_, ok = ip.ParentPosition(-1)
	assert.False(t, ok)
	_, ok = ip.ParentPosition(5)
	assert.False(t, ok)
}
