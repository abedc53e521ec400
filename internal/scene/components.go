package scene

import "skelviz/internal/core/ecs"

// MeshInstance tags an entity as a skeletal-mesh instance of a mesh type.
// The tag resolves to a skeletal-mesh asset through the asset registry.
type MeshInstance struct {
	Tag int32
}

func (g *Graph) SetMeshInstance(id ecs.EntityID, tag int32) {
	g.meshes.Set(id, MeshInstance{Tag: tag})
}

// MeshTag returns the entity's mesh type tag, or false when the entity
// carries no mesh.
func (g *Graph) MeshTag(id ecs.EntityID) (int32, bool) {
	m, ok := g.meshes.Get(id)
	if !ok {
		return 0, false
	}
	return m.Tag, true
}
