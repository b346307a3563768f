// Command orbit-snapshot renders a turntable of an STL model around an orbit camera.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/snapshot"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/model3d/render3d"
	"go.uber.org/zap"
)

// dragSteps is how many move events a scripted drag is split into.
const dragSteps = 10

func main() {
	var distance, minDistance, maxDistance float64
	var polar, azimuth, fov float64
	var frames, size, workers int
	var configPath string
	var verbose bool
	var drag DragFlag
	color := VectorFlag{Value: model3d.XYZ(0.8, 0.8, 0.8)}

	flag.Float64Var(&distance, "distance", 3, "initial camera distance from the model center")
	flag.Float64Var(&minDistance, "min-distance", 0, "minimum camera distance")
	flag.Float64Var(&maxDistance, "max-distance", math.Inf(1), "maximum camera distance")
	flag.Float64Var(&polar, "polar", 60, "initial polar angle from the up axis, in degrees")
	flag.Float64Var(&azimuth, "azimuth", 0, "initial azimuthal angle, in degrees")
	flag.Float64Var(&fov, "fov", 45, "vertical field of view in degrees")
	flag.IntVar(&frames, "frames", 36, "number of turntable frames")
	flag.IntVar(&size, "size", 256, "side length of each frame in pixels")
	flag.IntVar(&workers, "workers", 0, "frames rendered concurrently (0 = number of CPUs)")
	flag.StringVar(&configPath, "config", "", "YAML controller config")
	flag.BoolVar(&verbose, "verbose", false, "log every frame and gesture")
	flag.Var(&drag, "drag", "scripted left-button drag before export, as 'dx,dy' pixels")
	flag.Var(&color, "color", "color of the model, as 'r,g,b'")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: orbit-snapshot [flags] <input.stl> <output-dir>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	flag.Parse()
	if len(flag.Args()) != 2 {
		flag.Usage()
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	cfg := camera.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = camera.LoadConfig(configPath)
		essentials.Must(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-distance":
			cfg.MinDistance = minDistance
		case "max-distance":
			cfg.MaxDistance = maxDistance
		}
	})

	logger.Info("loading model", zap.String("path", flag.Args()[0]))
	mesh := ReadMesh(flag.Args()[0])
	object := snapshot.SolidObject(model3d.MeshToCollider(mesh), color.Value)
	center := mesh.Min().Mid(mesh.Max())

	position := orbitPosition(center, distance, polar*math.Pi/180, azimuth*math.Pi/180)
	cam := camera.NewCamera(
		camera.WithPosition(position.X, position.Y, position.Z),
		camera.WithFov(float32(fov*math.Pi/180)),
		camera.WithAspect(1),
	)
	ctrl := camera.NewCameraController(cam,
		camera.WithConfig(cfg),
		camera.WithTarget(center.X, center.Y, center.Z),
		camera.WithViewport(float64(size), float64(size)),
		camera.WithLogger(logger),
	)
	defer ctrl.Dispose()

	if drag.IsSet() {
		scriptedDrag(ctrl, float64(size)/2, float64(size)/2, drag.DX, drag.DY, dragSteps)
		logger.Info("applied drag",
			zap.Float64("polar", ctrl.PolarAngle()),
			zap.Float64("azimuth", ctrl.AzimuthalAngle()),
			zap.Float64("distance", ctrl.Distance()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, err := snapshot.Turntable(ctx, ctrl, object, flag.Args()[1],
		snapshot.WithFrames(frames),
		snapshot.WithSize(size),
		snapshot.WithWorkers(workers),
		snapshot.WithLights(keyLights(object)...),
		snapshot.WithLogger(logger),
	)
	if err != nil {
		essentials.Die(fmt.Sprintf("turntable: %v (%d frames written)", err, len(paths)))
	}
}

func newLogger(verbose bool) *zap.Logger {
	newFn := zap.NewProduction
	if verbose {
		newFn = zap.NewDevelopment
	}
	logger, err := newFn()
	essentials.Must(err)
	return logger
}

// ReadMesh loads an STL file, scales it to unit size and rests it on the ground plane.
func ReadMesh(path string) *model3d.Mesh {
	r, err := os.Open(path)
	essentials.Must(err)
	defer r.Close()

	triangles, err := model3d.ReadSTL(r)
	essentials.Must(err)
	return placeOnGround(normalizeMesh(model3d.NewMeshTriangles(triangles)))
}

func normalizeMesh(mesh *model3d.Mesh) *model3d.Mesh {
	mesh = mesh.Translate(mesh.Min().Mid(mesh.Max()).Scale(-1))
	m := mesh.Max()
	size := math.Max(math.Max(m.X, m.Y), m.Z)
	return mesh.Scale(1 / size)
}

// placeOnGround lifts the mesh so its lowest point sits at y = 0, keeping its center above
// the controller's target floor.
func placeOnGround(mesh *model3d.Mesh) *model3d.Mesh {
	return mesh.Translate(model3d.XYZ(0, -mesh.Min().Y, 0))
}

// orbitPosition places a camera on the sphere of the given radius around center, with
// polar measured from +Y and azimuth from +Z toward +X.
func orbitPosition(center model3d.Coord3D, radius, polar, azimuth float64) model3d.Coord3D {
	sinPhi := math.Sin(polar)
	return center.Add(model3d.XYZ(
		radius*sinPhi*math.Sin(azimuth),
		radius*math.Cos(polar),
		radius*sinPhi*math.Cos(azimuth),
	))
}

// scriptedDrag feeds a left-button mouse drag from (x, y) by (dx, dy) into ctrl's pointer
// handlers, split into evenly spaced moves.
func scriptedDrag(ctrl camera.CameraController, x, y, dx, dy float64, steps int) {
	ev := common.PointerEvent{
		PointerID:   common.MousePointerID,
		PointerType: common.PointerMouse,
		Button:      common.MouseButtonLeft,
		X:           x,
		Y:           y,
	}
	ctrl.HandlePointerDown(ev)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		ev.X, ev.Y = x+dx*t, y+dy*t
		ctrl.HandlePointerMove(ev)
	}
	ctrl.HandlePointerUp(ev)
}

// keyLights places two fixed lights above and in front of the object so turntable frames
// show the model rotating under constant lighting.
func keyLights(object render3d.Object) []*render3d.PointLight {
	center := object.Min().Mid(object.Max())
	return []*render3d.PointLight{
		{Origin: center.Add(model3d.XYZ(2, 4, 3).Normalize().Scale(1000)), Color: render3d.NewColor(0.7)},
		{Origin: center.Add(model3d.XYZ(-3, 1, -2).Normalize().Scale(1000)), Color: render3d.NewColor(0.3)},
	}
}
