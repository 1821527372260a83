package renderer

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/chewxy/math32"
)

// SceneCapturer is a software Capturer over a scene.Scene. Each face is rendered by
// casting one ray per texel against the bounding spheres of the enabled objects that
// survive the face's frustum cull; rays that hit nothing take the sky gradient.
// The six faces are rendered concurrently on a worker pool.
type SceneCapturer interface {
	Capturer

	// Scene returns the scene being captured.
	//
	// Returns:
	//   - scene.Scene: the captured scene
	Scene() scene.Scene

	// Captures returns how many captures have completed successfully.
	//
	// Returns:
	//   - uint64: the completed capture count
	Captures() uint64
}

type sceneCapturer struct {
	mu *sync.Mutex

	scene scene.Scene
	pool  worker.DynamicWorkerPool

	workers   int
	near, far float32
	skyTop    common.Color
	skyBottom common.Color
	light     common.Vec3

	captures uint64
	taskID   int
}

var _ SceneCapturer = &sceneCapturer{}

// NewSceneCapturer creates a capturer for the given scene.
//
// Parameters:
//   - s: the scene to capture
//   - options: functional options to configure the capturer
//
// Returns:
//   - SceneCapturer: the new capturer
func NewSceneCapturer(s scene.Scene, options ...SceneCapturerOption) SceneCapturer {
	if s == nil {
		panic("renderer: NewSceneCapturer requires a scene")
	}
	c := &sceneCapturer{
		mu:        &sync.Mutex{},
		scene:     s,
		workers:   camera.CubeFaceCount,
		near:      0.05,
		far:       500,
		skyTop:    common.Color{R: 0.45, G: 0.65, B: 0.95, A: 1},
		skyBottom: common.Color{R: 0.25, G: 0.22, B: 0.2, A: 1},
		light:     common.V3(0.3, 1, 0.2).Normalize(),
	}
	for _, option := range options {
		option(c)
	}
	c.pool = worker.NewDynamicWorkerPool(c.workers, 256, 1*time.Second)
	return c
}

func (c *sceneCapturer) Scene() scene.Scene {
	return c.scene
}

func (c *sceneCapturer) Captures() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captures
}

func (c *sceneCapturer) Capture(ctx context.Context, viewpoint common.Vec3, target *CubeMap, exclude ...uint64) error {
	if target.Size() == 0 {
		return ErrCaptureSize
	}
	start := time.Now()

	skip := make(map[uint64]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	var objects []game_object.GameObject
	for _, obj := range c.scene.Objects() {
		if _, ok := skip[obj.ID()]; ok || !obj.Enabled() || obj.Radius() <= 0 {
			continue
		}
		objects = append(objects, obj)
	}

	faces := camera.CubeFaces(viewpoint, c.near, c.far)
	size := target.Size()
	results := make([]*image.RGBA, len(faces))
	errs := make([]error, len(faces))

	// The pool's Wait blocks until workers idle-exit, so each capture joins its own tasks.
	var wg sync.WaitGroup
	for i := range faces {
		face := faces[i]
		wg.Add(1)
		c.pool.SubmitTask(worker.Task{
			ID: c.nextTaskID(),
			Do: func() (any, error) {
				defer wg.Done()
				img, err := c.renderFace(ctx, face, size, objects)
				results[face.Face], errs[face.Face] = img, err
				return nil, err
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("capture face %s: %w", camera.CubeFace(i), err)
		}
	}
	for i, img := range results {
		if err := target.SetFace(camera.CubeFace(i), img); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.captures++
	c.mu.Unlock()
	log.Printf("[Capture] %d objects into %dpx cube map from (%.2f, %.2f, %.2f) in %s",
		len(objects), size, viewpoint.X, viewpoint.Y, viewpoint.Z, time.Since(start).Round(time.Microsecond))
	return nil
}

func (c *sceneCapturer) nextTaskID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.taskID++
	return c.taskID
}

// renderFace ray-casts every texel of one face.
func (c *sceneCapturer) renderFace(ctx context.Context, face camera.Face, size int, objects []game_object.GameObject) (*image.RGBA, error) {
	frustum := face.Frustum()
	type sphere struct {
		center common.Vec3
		radius float32
		color  common.Color
	}
	var visible []sphere
	for _, obj := range objects {
		center, radius := obj.Position(), obj.Radius()
		if frustum.ContainsSphere(center, radius) {
			visible = append(visible, sphere{center: center, radius: radius, color: obj.Color()})
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	inv := 1 / float32(size)
	for y := range size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := range size {
			dir := FaceDirection(face.Face, (float32(x)+0.5)*inv, (float32(y)+0.5)*inv).Normalize()

			nearest := c.far
			hit := -1
			for i, s := range visible {
				if d, ok := raySphere(face.Eye, dir, s.center, s.radius); ok && d >= c.near && d < nearest {
					nearest, hit = d, i
				}
			}

			var col common.Color
			if hit < 0 {
				col = c.sky(dir)
			} else {
				s := visible[hit]
				n := face.Eye.Add(dir.Scale(nearest)).Sub(s.center).Normalize()
				lit := 0.35 + 0.65*math32.Max(0, n.Dot(c.light))
				col = common.Color{R: s.color.R * lit, G: s.color.G * lit, B: s.color.B * lit, A: 1}
			}
			img.SetRGBA(x, y, col.RGBA())
		}
	}
	return img, nil
}

// sky blends the ground and sky colors by the direction's elevation.
func (c *sceneCapturer) sky(dir common.Vec3) common.Color {
	t := (dir.Y + 1) / 2
	return common.Color{
		R: c.skyBottom.R + (c.skyTop.R-c.skyBottom.R)*t,
		G: c.skyBottom.G + (c.skyTop.G-c.skyBottom.G)*t,
		B: c.skyBottom.B + (c.skyTop.B-c.skyBottom.B)*t,
		A: 1,
	}
}

// raySphere returns the distance along a unit ray to the first intersection with a sphere.
// A ray starting inside the sphere reports the exit point.
func raySphere(origin, dir, center common.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	cc := oc.Dot(oc) - radius*radius
	disc := b*b - cc
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	if t := -b - sq; t > 0 {
		return t, true
	}
	if t := -b + sq; t > 0 {
		return t, true
	}
	return 0, false
}
