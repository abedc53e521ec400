package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for pose driver scripts.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all .lua files from the given
// directory. A missing directory is fine; the engine just drives nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load pose scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DriveContext holds pre-packed data for one pose driver invocation.
type DriveContext struct {
	Time     float64 // seconds since startup
	Delta    float64 // seconds since last frame
	Instance string  // instance label the script can branch on
	Bones    []string
}

// BonePose is one bone's local transform returned by a Lua driver.
// Rotation is in degrees, applied XYZ. A nil Scale means unit scale.
type BonePose struct {
	Bone        string
	Translation [3]float64
	RotationDeg [3]float64
	Scale       [3]float64
	HasScale    bool
}

// Drive calls the Lua drive_pose function and returns the local transforms it
// produced. A missing function or a script error drives nothing; pose
// visualization must keep running regardless of script health.
func (e *Engine) Drive(ctx DriveContext) []BonePose {
	fn := e.vm.GetGlobal("drive_pose")
	if fn == lua.LNil {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("time", lua.LNumber(ctx.Time))
	t.RawSetString("dt", lua.LNumber(ctx.Delta))
	t.RawSetString("instance", lua.LString(ctx.Instance))

	bones := e.vm.NewTable()
	for i, name := range ctx.Bones {
		bones.RawSetInt(i+1, lua.LString(name))
	}
	t.RawSetString("bones", bones)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua drive_pose error", zap.Error(err), zap.String("instance", ctx.Instance))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	var poses []BonePose
	rt.ForEach(func(k, v lua.LValue) {
		row, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		p := BonePose{Bone: lua.LVAsString(k)}
		if tr, ok := row.RawGetString("translate").(*lua.LTable); ok {
			p.Translation = lVec3(tr)
		}
		if rot, ok := row.RawGetString("rotate").(*lua.LTable); ok {
			p.RotationDeg = lVec3(rot)
		}
		if sc, ok := row.RawGetString("scale").(*lua.LTable); ok {
			p.Scale = lVec3(sc)
			p.HasScale = true
		}
		poses = append(poses, p)
	})
	return poses
}

// lVec3 reads a three-element Lua array.
func lVec3(t *lua.LTable) [3]float64 {
	var v [3]float64
	for i := 0; i < 3; i++ {
		v[i] = float64(lua.LVAsNumber(t.RawGetInt(i + 1)))
	}
	return v
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
