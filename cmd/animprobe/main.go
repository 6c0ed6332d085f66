package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/loader"
	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer/joint_buffer"
	"github.com/Carmen-Shannon/oxy-anim/engine/rig"
	"github.com/Carmen-Shannon/oxy-anim/engine/scene"
)

func main() {
	// ── Flags ───────────────────────────────────────────────────────
	configFile := flag.String("config", "", "Path to a YAML config file")
	model := flag.String("model", "", "Path to a .gltf or .glb model")
	clip := flag.String("clip", "", "Clip to play (default: first clip)")
	joint := flag.String("joint", "", "Joint to report (default: first root)")
	frames := flag.Int("frames", 0, "Number of frames to step (default: 120)")
	fps := flag.Float64("fps", 0, "Fixed step rate (default: 60)")
	speed := flag.Float64("speed", 0, "Playback speed multiplier (default: 1)")
	loop := flag.Bool("loop", false, "Loop the clip")
	watch := flag.Bool("watch", false, "Keep running in real time and reload the model when it changes")
	flag.Parse()

	// ── Config ──────────────────────────────────────────────────────
	var cfg Config
	if *configFile != "" {
		var err error
		cfg, err = LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("[animprobe] %v", err)
		}
	}

	// CLI flags override config file
	cfg.Resolve(Flags{
		Model:  *model,
		Clip:   *clip,
		Joint:  *joint,
		Frames: *frames,
		FPS:    float32(*fps),
		Speed:  float32(*speed),
		Loop:   *loop,
		Watch:  *watch,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[animprobe] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("[animprobe] %v", err)
	}
}

func run(ctx context.Context, cfg Config) error {
	// ── Rig ─────────────────────────────────────────────────────────
	l := loader.NewLoader(
		loader.BackendTypeGLTF,
		loader.WithSkinIndex(cfg.Skin),
		loader.WithRigOptions(rig.WithControllerOptions(animator.WithPlaybackSpeed(cfg.Speed))),
	)
	r, err := l.Load(cfg.Model)
	if err != nil {
		return err
	}

	jb := joint_buffer.NewJointBuffer(
		joint_buffer.WithLabel("animprobe joints"),
		joint_buffer.WithMaxJoints(cfg.MaxJoints),
	)
	p, err := newProbe(cfg, r, jb)
	if err != nil {
		return err
	}

	// ── Scene ───────────────────────────────────────────────────────
	sceneOpts := []scene.SceneBuilderOption{scene.WithProfiler(profiler.NewProfiler())}
	if cfg.Workers > 0 {
		sceneOpts = append(sceneOpts, scene.WithWorkers(cfg.Workers))
	}
	sc := scene.NewScene("animprobe", sceneOpts...)
	id := sc.Add(r)

	// ── Watch ───────────────────────────────────────────────────────
	var (
		events <-chan string
		tick   <-chan time.Time
	)
	if cfg.Watch {
		w, err := loader.NewWatcher(filepath.Dir(cfg.Model))
		if err != nil {
			return err
		}
		defer w.Close()
		events = w.Events

		ticker := time.NewTicker(time.Duration(float64(time.Second) / float64(cfg.FPS)))
		defer ticker.Stop()
		tick = ticker.C
		log.Printf("[animprobe] watching %s", filepath.Dir(cfg.Model))
	}

	// ── Frame loop ──────────────────────────────────────────────────
	dt := 1 / cfg.FPS
	logEvery := 1
	if cfg.Watch {
		logEvery = max(int(cfg.FPS), 1)
	}

	for frame := 0; cfg.Watch || frame < cfg.Frames; {
		if cfg.Watch {
			select {
			case <-ctx.Done():
				return nil
			case path, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				if !reloadable(path, cfg.Model) {
					continue
				}
				next, err := l.Reload(cfg.Model)
				if err != nil {
					log.Printf("[animprobe] reload failed, keeping previous rig: %v", err)
					continue
				}
				np, err := newProbe(cfg, next, jb)
				if err != nil {
					log.Printf("[animprobe] reload failed, keeping previous rig: %v", err)
					continue
				}
				sc.Remove(id)
				id = sc.Add(next)
				p = np
				continue
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		sc.Update(dt)
		rep, err := p.report(frame)
		if err != nil {
			return err
		}
		if frame%logEvery == 0 {
			log.Printf("[animprobe] %s", rep)
		}
		frame++
	}
	return nil
}
