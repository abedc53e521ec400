package asset

import (
	"fmt"

	"github.com/google/uuid"

	"skelviz/internal/debugdraw"
	"skelviz/internal/xform"
)

// RootParent marks a bone with no parent.
const RootParent = -1

// DefaultJointColor is the fallback joint color for bones without an
// authored visual hint.
var DefaultJointColor = debugdraw.RGB{R: 1.0, G: 0.55, B: 0.0}

// BoneVisual is the canonical, fixed-layout rendering hint. Optional fields
// in the authored file are resolved here once at load; the per-frame path
// never sniffs for absent values.
type BoneVisual struct {
	SizeMultiplier float64
	Color          debugdraw.RGB
}

func DefaultVisual() BoneVisual {
	return BoneVisual{SizeMultiplier: 1.0, Color: DefaultJointColor}
}

// Bone is one node of a skeleton hierarchy. BindPose is the reference-pose
// transform in the owning skeleton's model space, not world space.
type Bone struct {
	Name        string
	ParentIndex int // RootParent for bones with no parent
	BindPose    xform.Affine
	Visual      BoneVisual
}

// SkeletonAsset is an immutable ordered bone sequence. Instances reference it
// read-only; it lives until the owning asset is deleted.
type SkeletonAsset struct {
	id    uuid.UUID
	name  string
	bones []Bone
}

// NewSkeleton validates the hierarchy and canonicalizes visual hints. A
// zero-valued Visual gets the defaults; a zero size multiplier alone is
// promoted to 1. Parent indices must stay in range and must not form a cycle.
func NewSkeleton(name string, bones []Bone) (*SkeletonAsset, error) {
	canon := make([]Bone, len(bones))
	copy(canon, bones)
	for i := range canon {
		if canon[i].Visual == (BoneVisual{}) {
			canon[i].Visual = DefaultVisual()
		} else if canon[i].Visual.SizeMultiplier == 0 {
			canon[i].Visual.SizeMultiplier = 1.0
		}
	}
	if err := validateHierarchy(canon); err != nil {
		return nil, fmt.Errorf("skeleton %s: %w", name, err)
	}
	return &SkeletonAsset{id: uuid.New(), name: name, bones: canon}, nil
}

func validateHierarchy(bones []Bone) error {
	n := len(bones)
	for i := range bones {
		p := bones[i].ParentIndex
		if p == RootParent {
			continue
		}
		if p < 0 || p >= n {
			return fmt.Errorf("bone %d (%s): parent index %d out of range", i, bones[i].Name, p)
		}
		if p == i {
			return fmt.Errorf("bone %d (%s): self-parented", i, bones[i].Name)
		}
	}
	// Walk each parent chain; any walk longer than the bone count is a cycle.
	for i := range bones {
		steps := 0
		for p := bones[i].ParentIndex; p != RootParent; p = bones[p].ParentIndex {
			steps++
			if steps > n {
				return fmt.Errorf("bone %d (%s): parent chain forms a cycle", i, bones[i].Name)
			}
		}
	}
	return nil
}

func (a *SkeletonAsset) ID() uuid.UUID { return a.id }
func (a *SkeletonAsset) Name() string  { return a.name }

func (a *SkeletonAsset) BoneCount() int {
	return len(a.bones)
}

// Bone returns the bone at index i. Out-of-range access panics; callers
// iterate 0..BoneCount.
func (a *SkeletonAsset) Bone(i int) *Bone {
	return &a.bones[i]
}

// SkeletalMeshAsset binds a mesh type tag to its embedded skeleton.
type SkeletalMeshAsset struct {
	ID       uuid.UUID
	Name     string
	MeshTag  int32
	Skeleton *SkeletonAsset
}
