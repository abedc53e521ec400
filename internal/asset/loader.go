package asset

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"skelviz/internal/debugdraw"
	"skelviz/internal/xform"
)

// Authored file schema. Bind poses are written as TRS with Euler rotation in
// degrees; optional fields use pointers so absence is distinguishable and
// resolved once here.
type boneFile struct {
	Name        string      `yaml:"name"`
	Parent      *int        `yaml:"parent"` // absent or -1 = root
	Translation [3]float64  `yaml:"translation"`
	Rotation    [3]float64  `yaml:"rotation"` // Euler XYZ, degrees
	Scale       *[3]float64 `yaml:"scale"`
	Visual      *visualFile `yaml:"visual"`
}

type visualFile struct {
	Size  float64     `yaml:"size"`
	Color *[3]float64 `yaml:"color"`
}

type skeletonFile struct {
	Name  string     `yaml:"name"`
	Bones []boneFile `yaml:"bones"`
}

type skeletonListFile struct {
	Skeletons []skeletonFile `yaml:"skeletons"`
}

type meshFile struct {
	Name     string `yaml:"name"`
	MeshTag  int32  `yaml:"mesh_tag"`
	Skeleton string `yaml:"skeleton"`
}

type meshListFile struct {
	Meshes []meshFile `yaml:"meshes"`
}

// LoadRegistry loads skeleton assets and skeletal-mesh assets from YAML. The
// mesh file is optional (empty path = skeletons only).
func LoadRegistry(skeletonPath, meshPath string) (*Registry, error) {
	reg := NewRegistry()

	data, err := os.ReadFile(skeletonPath)
	if err != nil {
		return nil, fmt.Errorf("read skeleton list: %w", err)
	}
	var sf skeletonListFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse skeleton list: %w", err)
	}
	for _, entry := range sf.Skeletons {
		skel, err := buildSkeleton(entry)
		if err != nil {
			return nil, err
		}
		if err := reg.AddSkeleton(skel); err != nil {
			return nil, err
		}
	}

	if meshPath == "" {
		return reg, nil
	}
	data, err = os.ReadFile(meshPath)
	if err != nil {
		return nil, fmt.Errorf("read mesh list: %w", err)
	}
	var mf meshListFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse mesh list: %w", err)
	}
	for _, entry := range mf.Meshes {
		skel, ok := reg.SkeletonByName(entry.Skeleton)
		if !ok {
			return nil, fmt.Errorf("mesh %s: unknown skeleton %q", entry.Name, entry.Skeleton)
		}
		m := &SkeletalMeshAsset{
			ID:       uuid.New(),
			Name:     entry.Name,
			MeshTag:  entry.MeshTag,
			Skeleton: skel,
		}
		if err := reg.AddMesh(m); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func buildSkeleton(f skeletonFile) (*SkeletonAsset, error) {
	bones := make([]Bone, len(f.Bones))
	for i, bf := range f.Bones {
		parent := RootParent
		if bf.Parent != nil && *bf.Parent >= 0 {
			parent = *bf.Parent
		}

		scale := mgl64.Vec3{1, 1, 1}
		if bf.Scale != nil {
			scale = mgl64.Vec3{bf.Scale[0], bf.Scale[1], bf.Scale[2]}
		}
		rot := mgl64.AnglesToQuat(
			mgl64.DegToRad(bf.Rotation[0]),
			mgl64.DegToRad(bf.Rotation[1]),
			mgl64.DegToRad(bf.Rotation[2]),
			mgl64.XYZ,
		)
		bind := xform.FromTRS(
			mgl64.Vec3{bf.Translation[0], bf.Translation[1], bf.Translation[2]},
			rot,
			scale,
		)

		visual := DefaultVisual()
		if bf.Visual != nil {
			if bf.Visual.Size > 0 {
				visual.SizeMultiplier = bf.Visual.Size
			}
			if bf.Visual.Color != nil {
				visual.Color = debugdraw.RGB{R: bf.Visual.Color[0], G: bf.Visual.Color[1], B: bf.Visual.Color[2]}
			}
		}

		bones[i] = Bone{
			Name:        bf.Name,
			ParentIndex: parent,
			BindPose:    bind,
			Visual:      visual,
		}
	}
	return NewSkeleton(f.Name, bones)
}
