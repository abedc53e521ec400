package scripting

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"skelviz/internal/core/ecs"
	"skelviz/internal/core/frame"
	"skelviz/internal/scene"
	"skelviz/internal/xform"
)

// DrivenInstance names one scripted instance and maps its bone names to the
// live entities the driver writes to.
type DrivenInstance struct {
	Label string
	Bones map[string]ecs.EntityID
}

// ScriptSystem runs pose driver scripts each frame, before transforms are
// recomposed, and writes the resulting local transforms into the scene graph.
type ScriptSystem struct {
	engine  *Engine
	graph   *scene.Graph
	driven  []DrivenInstance
	elapsed float64
}

func NewScriptSystem(engine *Engine, graph *scene.Graph) *ScriptSystem {
	return &ScriptSystem{engine: engine, graph: graph}
}

// AddInstance registers an instance for script driving.
func (s *ScriptSystem) AddInstance(d DrivenInstance) {
	s.driven = append(s.driven, d)
}

func (s *ScriptSystem) Phase() frame.Phase { return frame.PhaseScript }

func (s *ScriptSystem) Update(dt time.Duration) {
	if s.engine == nil {
		return
	}
	delta := dt.Seconds()
	s.elapsed += delta

	for _, d := range s.driven {
		names := make([]string, 0, len(d.Bones))
		for name := range d.Bones {
			names = append(names, name)
		}
		poses := s.engine.Drive(DriveContext{
			Time:     s.elapsed,
			Delta:    delta,
			Instance: d.Label,
			Bones:    names,
		})
		for _, p := range poses {
			id, ok := d.Bones[p.Bone]
			if !ok {
				continue
			}
			s.graph.SetLocal(id, localFromPose(p))
		}
	}
}

func localFromPose(p BonePose) xform.Affine {
	rot := mgl64.AnglesToQuat(
		mgl64.DegToRad(p.RotationDeg[0]),
		mgl64.DegToRad(p.RotationDeg[1]),
		mgl64.DegToRad(p.RotationDeg[2]),
		mgl64.XYZ,
	)
	scale := mgl64.Vec3{1, 1, 1}
	if p.HasScale {
		scale = mgl64.Vec3{p.Scale[0], p.Scale[1], p.Scale[2]}
	}
	return xform.FromTRS(
		mgl64.Vec3{p.Translation[0], p.Translation[1], p.Translation[2]},
		rot,
		scale,
	)
}
