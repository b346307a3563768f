package snapshot

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/model3d/render3d"
)

// RenderCamera converts a camera pose into a ray-tracing camera. render3d image rows grow
// along ScreenY, so the camera's up axis is negated.
//
// Parameters:
//   - cam: the posed camera
//
// Returns:
//   - *render3d.Camera: a camera with the same origin, orientation and vertical field of view
func RenderCamera(cam camera.Camera) *render3d.Camera {
	right, up, _ := cam.Basis()
	return &render3d.Camera{
		Origin:      cam.Position(),
		ScreenX:     right,
		ScreenY:     up.Scale(-1),
		FieldOfView: float64(cam.Fov()),
	}
}

// HeadLight returns a white point light at the camera origin.
//
// Parameters:
//   - rc: the ray-tracing camera
//
// Returns:
//   - *render3d.PointLight: the light
func HeadLight(rc *render3d.Camera) *render3d.PointLight {
	return &render3d.PointLight{
		Origin: rc.Origin,
		Color:  render3d.NewColor(1),
	}
}

// RenderView ray traces object from the camera's current pose into a square image.
//
// Parameters:
//   - cam: the posed camera
//   - object: the scene to render
//   - lights: point lights; a head light is used when empty
//   - size: side length of the image in pixels
//
// Returns:
//   - *render3d.Image: the rendered image
func RenderView(cam camera.Camera, object render3d.Object, lights []*render3d.PointLight, size int) *render3d.Image {
	return render(RenderCamera(cam), object, lights, size)
}

func render(rc *render3d.Camera, object render3d.Object, lights []*render3d.PointLight, size int) *render3d.Image {
	if len(lights) == 0 {
		lights = []*render3d.PointLight{HeadLight(rc)}
	}
	caster := &render3d.RayCaster{
		Camera: rc,
		Lights: lights,
	}
	img := render3d.NewImage(size, size)
	caster.Render(img, object)
	return img
}

// SolidObject wraps a collider in a single flat color.
//
// Parameters:
//   - collider: the geometry
//   - color: RGB in [0, 1]
//
// Returns:
//   - render3d.Object: the renderable object
func SolidObject(collider model3d.Collider, color model3d.Coord3D) render3d.Object {
	return render3d.Objectify(
		collider,
		func(c model3d.Coord3D, rc model3d.RayCollision) render3d.Color {
			return render3d.NewColorRGB(color.X, color.Y, color.Z)
		},
	)
}
