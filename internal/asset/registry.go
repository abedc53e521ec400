package asset

import (
	"fmt"

	"github.com/google/uuid"
)

// Registry holds all loaded skeleton and skeletal-mesh assets, keyed by asset
// ID, with a mesh-tag lookup for resolving a mesh instance's skeleton.
type Registry struct {
	skeletons  map[uuid.UUID]*SkeletonAsset
	meshes     map[uuid.UUID]*SkeletalMeshAsset
	byMeshTag  map[int32]uuid.UUID
	skelByName map[string]uuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{
		skeletons:  make(map[uuid.UUID]*SkeletonAsset, 16),
		meshes:     make(map[uuid.UUID]*SkeletalMeshAsset, 16),
		byMeshTag:  make(map[int32]uuid.UUID, 16),
		skelByName: make(map[string]uuid.UUID, 16),
	}
}

func (r *Registry) AddSkeleton(a *SkeletonAsset) error {
	if _, dup := r.skelByName[a.Name()]; dup {
		return fmt.Errorf("duplicate skeleton name %q", a.Name())
	}
	r.skeletons[a.ID()] = a
	r.skelByName[a.Name()] = a.ID()
	return nil
}

func (r *Registry) AddMesh(m *SkeletalMeshAsset) error {
	if _, dup := r.byMeshTag[m.MeshTag]; dup {
		return fmt.Errorf("duplicate mesh tag %d (%s)", m.MeshTag, m.Name)
	}
	r.meshes[m.ID] = m
	r.byMeshTag[m.MeshTag] = m.ID
	return nil
}

func (r *Registry) Skeleton(id uuid.UUID) (*SkeletonAsset, bool) {
	a, ok := r.skeletons[id]
	return a, ok
}

func (r *Registry) SkeletonByName(name string) (*SkeletonAsset, bool) {
	id, ok := r.skelByName[name]
	if !ok {
		return nil, false
	}
	return r.skeletons[id], true
}

func (r *Registry) SkeletalMesh(id uuid.UUID) (*SkeletalMeshAsset, bool) {
	m, ok := r.meshes[id]
	return m, ok
}

// MeshTagAsset maps a mesh type tag to the owning skeletal-mesh asset ID.
func (r *Registry) MeshTagAsset(tag int32) (uuid.UUID, bool) {
	id, ok := r.byMeshTag[tag]
	return id, ok
}

func (r *Registry) SkeletonCount() int { return len(r.skeletons) }
func (r *Registry) MeshCount() int     { return len(r.meshes) }
