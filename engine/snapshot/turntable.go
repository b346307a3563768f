package snapshot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/unixpickle/model3d/render3d"
	"go.uber.org/zap"
)

const (
	defaultFrames = 36
	defaultSize   = 256

	// poolQueueSize bounds tasks waiting for a worker.
	poolQueueSize = 64
	poolIdle      = time.Second
)

// ErrInvalidTurntable is returned when the frame count or image size is not positive.
var ErrInvalidTurntable = errors.New("turntable frames and size must be positive")

var (
	poolsMu sync.Mutex
	pools   = map[int]worker.DynamicWorkerPool{}
)

// sharedPool returns the render pool with the given worker count, creating it on first use.
// A stopped pool does not release every idle worker, so pools live for the process and
// repeated exports reuse them.
func sharedPool(workers int) worker.DynamicWorkerPool {
	poolsMu.Lock()
	defer poolsMu.Unlock()
	pool, ok := pools[workers]
	if !ok {
		pool = worker.NewDynamicWorkerPool(workers, poolQueueSize, poolIdle)
		pools[workers] = pool
	}
	return pool
}

type turntable struct {
	frames  int
	size    int
	workers int
	lights  []*render3d.PointLight
	logger  *zap.Logger
}

// FrameName returns the file name of the i-th turntable frame.
//
// Parameters:
//   - i: zero-based frame index
//
// Returns:
//   - string: the frame's file name
func FrameName(i int) string {
	return fmt.Sprintf("frame_%04d.png", i)
}

// TurntablePoses orbits a copy of ctrl through one full revolution around its up axis and
// returns the ray-tracing camera for each step. ctrl and its camera are left untouched.
//
// Parameters:
//   - ctrl: the controller whose pose and configuration seed the orbit
//   - frames: number of evenly spaced steps
//
// Returns:
//   - []*render3d.Camera: one camera per frame, the first at the current pose
func TurntablePoses(ctrl camera.CameraController, frames int) []*render3d.Camera {
	if frames <= 0 {
		return nil
	}
	src := ctrl.Camera()
	pos, up, target := src.Position(), src.Up(), ctrl.Target()
	cam := camera.NewCamera(
		camera.WithPosition(pos.X, pos.Y, pos.Z),
		camera.WithUp(up.X, up.Y, up.Z),
		camera.WithFov(src.Fov()),
		camera.WithAspect(1),
		camera.WithNear(src.Near()),
		camera.WithFar(src.Far()),
	)

	cfg := ctrl.Config()
	cfg.Enabled = true
	cfg.AutoRotate = false
	cfg.EnableDamping = false
	cfg.MinAzimuthAngle = math.Inf(-1)
	cfg.MaxAzimuthAngle = math.Inf(1)

	clone := camera.NewCameraController(cam, camera.WithConfig(cfg), camera.WithTarget(target.X, target.Y, target.Z))
	defer clone.Dispose()

	// An untimed auto-rotate step is 2π/3600 per unit of speed.
	cfg.AutoRotate = true
	cfg.AutoRotateSpeed = 3600 / float64(frames)
	clone.SetConfig(cfg)

	poses := make([]*render3d.Camera, frames)
	poses[0] = RenderCamera(cam)
	for i := 1; i < frames; i++ {
		clone.Update()
		poses[i] = RenderCamera(cam)
	}
	return poses
}

// Turntable renders one orbit of ctrl's camera around its target and writes the frames as
// frame_0000.png, frame_0001.png, ... into outputDir. Frames render concurrently on a worker
// pool. Cancelling ctx stops submitting frames; frames already rendering finish.
//
// Parameters:
//   - ctx: cancellation for the export
//   - ctrl: the controller whose pose seeds the orbit
//   - object: the scene to render
//   - outputDir: directory to write frames into; created if missing
//   - options: functional options to configure the export
//
// Returns:
//   - []string: paths of the frames written, in frame order
//   - error: the first render or write error, or ctx's error if cancelled
func Turntable(ctx context.Context, ctrl camera.CameraController, object render3d.Object, outputDir string, options ...TurntableOption) ([]string, error) {
	t := &turntable{
		frames:  defaultFrames,
		size:    defaultSize,
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(t)
	}
	if t.frames <= 0 || t.size <= 0 {
		return nil, ErrInvalidTurntable
	}
	if t.workers <= 0 {
		t.workers = 1
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	poses := TurntablePoses(ctrl, t.frames)
	paths := make([]string, len(poses))
	written := make([]bool, len(poses))

	pool := sharedPool(t.workers)

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	for i, rc := range poses {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		idx, pose := i, rc
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}

				img := render(pose, object, t.lights, t.size)
				path := filepath.Join(outputDir, FrameName(idx))
				if err := img.Save(path); err != nil {
					err = fmt.Errorf("write %s: %w", path, err)
					fail(err)
					return nil, err
				}

				errMu.Lock()
				paths[idx] = path
				written[idx] = true
				errMu.Unlock()
				t.logger.Debug("frame written", zap.Int("frame", idx), zap.String("path", path))
				return path, nil
			},
		})
	}
	wg.Wait()

	out := make([]string, 0, len(paths))
	for i, p := range paths {
		if written[i] {
			out = append(out, p)
		}
	}

	if firstErr != nil {
		return out, firstErr
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	t.logger.Info("turntable exported", zap.Int("frames", len(out)), zap.String("dir", outputDir))
	return out, nil
}
