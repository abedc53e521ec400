package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skelviz/internal/core/ecs"
	"skelviz/internal/core/event"
	"skelviz/internal/scene"
	"skelviz/internal/xform"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "driver.lua"), []byte(body), 0644))
	return dir
}

func TestEngineMissingDirIsFine(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Nil(t, e.Drive(DriveContext{}))
}

func TestEngineBrokenScriptFailsLoad(t *testing.T) {
	dir := writeScript(t, `function drive_pose(`)
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestDriveReturnsBonePoses(t *testing.T) {
	dir := writeScript(t, `
function drive_pose(ctx)
  return {
    spine = {
      translate = { 0, 1.25, 0 },
      rotate = { 0, 0, ctx.time * 10 },
    },
    head = {
      translate = { 0, 1.65, 0 },
      rotate = { 0, 0, 0 },
      scale = { 2, 2, 2 },
    },
  }
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	poses := e.Drive(DriveContext{Time: 2, Instance: "biped", Bones: []string{"spine", "head"}})
	require.Len(t, poses, 2)

	byName := map[string]BonePose{}
	for _, p := range poses {
		byName[p.Bone] = p
	}

	spine := byName["spine"]
	assert.Equal(t, [3]float64{0, 1.25, 0}, spine.Translation)
	assert.InDelta(t, 20, spine.RotationDeg[2], 1e-9)
	assert.False(t, spine.HasScale)

	head := byName["head"]
	assert.True(t, head.HasScale)
	assert.Equal(t, [3]float64{2, 2, 2}, head.Scale)
}

func TestDriveRuntimeErrorDrivesNothing(t *testing.T) {
	dir := writeScript(t, `
function drive_pose(ctx)
  error("boom")
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Nil(t, e.Drive(DriveContext{}))
}

func TestScriptSystemAppliesLocalTransforms(t *testing.T) {
	dir := writeScript(t, `
function drive_pose(ctx)
  return {
    root = { translate = { 3, 0, 0 }, rotate = { 0, 0, 0 } },
  }
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	w := ecs.NewWorld()
	g := scene.NewGraph(w, event.NewBus(), zap.NewNop())
	bone := g.Spawn(0, xform.Identity())

	sys := NewScriptSystem(e, g)
	sys.AddInstance(DrivenInstance{
		Label: "demo",
		Bones: map[string]ecs.EntityID{"root": bone},
	})
	sys.Update(16 * time.Millisecond)
	g.Recompute()

	m, ok := g.WorldMatrix(bone)
	require.True(t, ok)
	assert.InDelta(t, 3, m.Translation().X(), 1e-12)
}
