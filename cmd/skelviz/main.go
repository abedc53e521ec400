package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skelviz/internal/asset"
	"skelviz/internal/config"
	"skelviz/internal/core/ecs"
	"skelviz/internal/core/event"
	"skelviz/internal/core/frame"
	"skelviz/internal/debugdraw"
	"skelviz/internal/scene"
	"skelviz/internal/scripting"
	"skelviz/internal/skeleton"
	"skelviz/internal/xform"

	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            skelviz  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m     skeleton pose debug visualizer        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main viewer logic ──────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/skelviz.toml"
	if p := os.Getenv("SKELVIZ_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load assets
	printSection("assets")
	registry, err := asset.LoadRegistry(cfg.Assets.SkeletonPath, cfg.Assets.MeshPath)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	printStat("skeletons", registry.SkeletonCount())
	printStat("skeletal meshes", registry.MeshCount())

	// 4. Core state: world, event bus, scene graph, overlay
	world := ecs.NewWorld()
	bus := event.NewBus()
	graph := scene.NewGraph(world, bus, log)
	overlay := skeleton.NewOverlay(bus)

	// 5. Lua pose drivers
	engine, err := scripting.NewEngine(cfg.Viewer.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	scriptSys := scripting.NewScriptSystem(engine, graph)

	// 6. Demo scene
	spawned, err := buildDemoScene(graph, registry, overlay, scriptSys)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	printStat("scene nodes", spawned)
	fmt.Println()

	// 7. Debug geometry buffer and optional viewer stream
	buf := debugdraw.NewBuffer()
	var stream *debugdraw.StreamServer
	if cfg.Stream.Enabled {
		stream, err = debugdraw.NewStreamServer(cfg.Stream.BindAddress, cfg.Stream.SendQueueSize, log)
		if err != nil {
			return fmt.Errorf("stream server: %w", err)
		}
		go stream.AcceptLoop()
	}

	// 8. Register systems with the frame runner
	runner := frame.NewRunner()
	runner.Register(event.NewDispatchSystem(bus))
	runner.Register(scriptSys)
	runner.Register(scene.NewTransformSystem(graph))
	runner.Register(skeleton.NewSystem(overlay, graph, graph, registry, buf, skeleton.OptionsFromConfig(cfg.Draw)))
	runner.Register(debugdraw.NewFlushSystem(buf, stream))
	runner.Register(scene.NewCleanupSystem(world))

	// 9. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Viewer.TickRate)
	defer ticker.Stop()

	printSection("viewer ready")
	if stream != nil {
		printReady(fmt.Sprintf("streaming on %s", stream.Addr().String()))
	}
	printReady(fmt.Sprintf("frame loop started (tick: %s)", cfg.Viewer.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Viewer.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			if stream != nil {
				stream.Shutdown()
			}
			log.Info("viewer stopped")
			return nil
		}
	}
}

// buildDemoScene spawns one standalone skeleton instance with live bone
// entities (script-drivable) and one mesh-bound instance rendered purely from
// bind pose. Returns the number of spawned scene nodes.
func buildDemoScene(graph *scene.Graph, registry *asset.Registry, overlay *skeleton.Overlay, scripts *scripting.ScriptSystem) (int, error) {
	spawned := 0

	// Standalone instance: live bones parented under the instance entity at
	// their bind poses, so drivers see sensible starting transforms.
	skel, ok := registry.SkeletonByName("biped")
	if ok {
		inst := graph.Spawn(0, xform.FromTranslation(mgl64.Vec3{-2, 0, 0}))
		spawned++

		live := make([]ecs.EntityID, skel.BoneCount())
		named := make(map[string]ecs.EntityID, skel.BoneCount())
		for i := 0; i < skel.BoneCount(); i++ {
			b := skel.Bone(i)
			live[i] = graph.Spawn(inst, b.BindPose)
			named[b.Name] = live[i]
			spawned++
		}
		overlay.BindStandalone(inst, skel.ID(), live)
		scripts.AddInstance(scripting.DrivenInstance{Label: "biped", Bones: named})
	}

	// Mesh-bound instance: no live bones, bind-pose fallback only.
	for tag := int32(1); ; tag++ {
		meshID, ok := registry.MeshTagAsset(tag)
		if !ok {
			break
		}
		mesh, ok := registry.SkeletalMesh(meshID)
		if !ok {
			break
		}
		inst := graph.Spawn(0, xform.FromTranslation(mgl64.Vec3{float64(tag) * 2, 0, 0}))
		graph.SetMeshInstance(inst, mesh.MeshTag)
		overlay.BindMesh(inst, nil)
		spawned++
	}

	return spawned, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
