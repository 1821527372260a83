package portal

import (
	"context"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/Carmen-Shannon/oxy-portal/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-portal/engine/teleport"
)

const (
	// DefaultProximityThreshold is the viewer distance below which a portal teleports.
	DefaultProximityThreshold float32 = 0.5
	// DefaultFaceSize is the edge length in texels of each captured cube face.
	DefaultFaceSize = 64
)

// State is the lifecycle stage of a portal.
type State int

const (
	StateInitializing State = iota
	StateWaitingForPartner
	StateRenderPending
	StateActive
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateWaitingForPartner:
		return "waiting-for-partner"
	case StateRenderPending:
		return "render-pending"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Viewer is the tracked position that triggers teleports.
type Viewer interface {
	// Position returns the viewer's world position.
	Position() common.Vec3
}

// Shared holds the collaborators every portal of one scene uses. Scheduler is optional: without
// it the host calls Update itself.
type Shared struct {
	Scene     scene.Scene
	Registry  Registry
	Capturer  renderer.Capturer
	Teleport  teleport.Controller
	Viewer    Viewer
	Scheduler scheduler.Scheduler
}

// Portal is one end of a see-through teleport pair. It shows the environment captured from its
// own position and sends a viewer that comes close to the partner portal.
type Portal interface {
	Member
	scheduler.Updatable

	// Label returns the structured label the portal was created from.
	//
	// Returns:
	//   - string: the label
	Label() string

	// State returns the current lifecycle stage.
	//
	// Returns:
	//   - State: the stage
	State() State

	// RenderDirty reports whether the one-time environment capture is still outstanding.
	//
	// Returns:
	//   - bool: true until the first successful capture
	RenderDirty() bool

	// Body returns the portal's surface object.
	//
	// Returns:
	//   - game_object.GameObject: the body
	Body() game_object.GameObject

	// Indicator returns the ring object shown once the portal has captured its environment.
	//
	// Returns:
	//   - game_object.GameObject: the indicator
	Indicator() game_object.GameObject

	// Target returns the cube map the environment is captured into.
	//
	// Returns:
	//   - *renderer.CubeMap: the capture target
	Target() *renderer.CubeMap

	// Material returns the surface material, bound to Target after the first capture.
	//
	// Returns:
	//   - material.PortalMaterial: the material
	Material() material.PortalMaterial

	// PartnerID returns the weak handle of the partner.
	//
	// Returns:
	//   - uint64: the partner's body ID
	//   - bool: false while unresolved
	PartnerID() (uint64, bool)

	// Partner looks the partner up through the scene.
	//
	// Returns:
	//   - Portal: the partner, or nil if unresolved or removed from the scene
	Partner() Portal

	// Pose returns the world pose of the body, making a portal a teleport destination.
	//
	// Returns:
	//   - common.Pose: the body pose
	Pose() common.Pose

	// SurfaceUniforms packs the per-frame uniforms of the surface program for one eye.
	//
	// Parameters:
	//   - viewProj: the eye's view-projection matrix
	//   - viewer: the eye's world position
	//
	// Returns:
	//   - shader.GPUPortalUniforms: the uniforms, ready to Marshal
	SurfaceUniforms(viewProj [16]float32, viewer common.Vec3) shader.GPUPortalUniforms

	// Destroy deregisters the portal and removes its objects from the scene.
	Destroy()
}

type portal struct {
	mu *sync.Mutex

	shared Shared
	ctx    context.Context

	label     string
	group     string
	threshold float32
	faceSize  int
	gpuSize   int
	gpu       *renderer.GPU

	body      game_object.GameObject
	indicator game_object.GameObject
	target    *renderer.CubeMap
	gpuTarget renderer.GPUCubeTarget
	material  material.PortalMaterial

	state       State
	pairing     *Pairing
	partnerID   uint64
	renderDirty bool
	scheduleID  uint64
	destroyed   bool
}

var _ Portal = &portal{}
var _ teleport.Destination = &portal{}

// NewPortal turns body into a portal: it derives the group, adds the body and a hidden
// indicator to the scene, creates the capture target and material, and starts partner
// resolution. The body is added to the scene when it is not already there.
//
// Parameters:
//   - shared: the scene-wide collaborators
//   - body: the portal surface object
//   - options: functional options to configure the portal
//
// Returns:
//   - Portal: the new portal, waiting for its partner
func NewPortal(shared Shared, body game_object.GameObject, options ...PortalOption) Portal {
	if shared.Scene == nil || shared.Registry == nil || shared.Capturer == nil || shared.Teleport == nil || shared.Viewer == nil {
		panic("portal: NewPortal requires a scene, registry, capturer, teleport controller and viewer")
	}
	if body == nil {
		panic("portal: NewPortal requires a body")
	}

	p := &portal{
		mu:          &sync.Mutex{},
		shared:      shared,
		ctx:         context.Background(),
		threshold:   DefaultProximityThreshold,
		faceSize:    DefaultFaceSize,
		body:        body,
		state:       StateInitializing,
		renderDirty: true,
	}
	for _, option := range options {
		option(p)
	}

	p.label = common.Coalesce(p.label, body.Label())
	p.group = common.Coalesce(p.group, DeriveGroup(p.label))

	if shared.Scene.Get(body.ID()) == nil {
		shared.Scene.Add(body)
	}
	p.indicator = game_object.NewGameObject(
		game_object.WithLabel(p.label+"#indicator"),
		game_object.WithPose(body.Pose()),
		game_object.WithBounds(body.Radius()*1.15),
		game_object.WithColor(common.Color{R: 0.4, G: 0.8, B: 1, A: 1}),
		game_object.WithEnabled(false),
	)
	shared.Scene.Add(p.indicator)

	p.target = renderer.NewCubeMap(p.faceSize)
	p.material = material.NewPortalMaterial(material.WithName("portal:" + p.group))
	if p.gpu != nil {
		gt, err := renderer.NewGPUCubeTarget(p.gpu, uint32(common.Coalesce(p.gpuSize, p.faceSize)), renderer.WithTargetLabel("portal:"+p.label))
		if err != nil {
			log.Printf("[Portal] %q: GPU target unavailable, continuing CPU-only: %v", p.label, err)
		} else {
			p.gpuTarget = gt
			p.material.SetGPUTarget(gt)
			if _, err := p.material.BindEnvironment(p.gpu.Device); err != nil {
				log.Printf("[Portal] %q: environment bind group unavailable: %v", p.label, err)
			}
		}
	}

	shared.Scene.SetComponent(body.ID(), ComponentKey, p)
	p.state = StateWaitingForPartner
	p.pairing = shared.Registry.Resolve(p)
	if shared.Scheduler != nil {
		p.scheduleID = shared.Scheduler.Register(p)
	}
	return p
}

func (p *portal) ID() uint64 {
	return p.body.ID()
}

func (p *portal) Group() string {
	return p.group
}

func (p *portal) Label() string {
	return p.label
}

func (p *portal) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *portal) RenderDirty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderDirty
}

func (p *portal) Body() game_object.GameObject {
	return p.body
}

func (p *portal) Indicator() game_object.GameObject {
	return p.indicator
}

func (p *portal) Target() *renderer.CubeMap {
	return p.target
}

func (p *portal) Material() material.PortalMaterial {
	return p.material
}

func (p *portal) PartnerID() (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.partnerID, p.partnerID != 0
}

func (p *portal) Partner() Portal {
	id, ok := p.PartnerID()
	if !ok {
		return nil
	}
	v, ok := p.shared.Scene.Component(id, ComponentKey)
	if !ok {
		return nil
	}
	partner, _ := v.(Portal)
	return partner
}

func (p *portal) Pose() common.Pose {
	return p.body.Pose()
}

func (p *portal) SurfaceUniforms(viewProj [16]float32, viewer common.Vec3) shader.GPUPortalUniforms {
	return shader.GPUPortalUniforms{
		ViewProj: viewProj,
		Model:    p.body.Pose().Matrix(),
		Viewer:   [4]float32{viewer.X, viewer.Y, viewer.Z, 1},
	}
}

func (p *portal) Update(deltaTime float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return
	}

	switch p.state {
	case StateWaitingForPartner:
		if id, ok := p.pairing.Partner(); ok {
			p.partnerID = id
			p.state = StateRenderPending
		}
	case StateRenderPending:
		p.captureLocked()
	case StateActive:
		p.checkProximityLocked()
	}
}

// captureLocked runs the one-time environment capture from the portal's own position, binds it
// to the material and reveals the indicator. A failed capture is retried on the next tick.
func (p *portal) captureLocked() {
	if err := p.shared.Capturer.Capture(p.ctx, p.body.Position(), p.target, p.body.ID(), p.indicator.ID()); err != nil {
		log.Printf("[Portal] %q: environment capture failed: %v", p.label, err)
		return
	}
	if p.gpuTarget != nil {
		if err := p.gpuTarget.Upload(p.target); err != nil {
			log.Printf("[Portal] %q: cube upload failed: %v", p.label, err)
		}
	}
	p.material.SetEnvironment(p.target)
	p.indicator.SetPose(p.body.Pose())
	p.indicator.SetEnabled(true)
	p.renderDirty = false
	p.state = StateActive
	log.Printf("[Portal] %q active, partner %d", p.label, p.partnerID)
}

func (p *portal) checkProximityLocked() {
	if p.shared.Teleport.InProgress() {
		return
	}
	partner := p.shared.Scene.Get(p.partnerID)
	if partner == nil {
		return
	}
	if p.shared.Viewer.Position().Distance(p.body.Position()) >= p.threshold {
		return
	}
	if p.shared.Teleport.Request(partner) {
		log.Printf("[Portal] %q: viewer entered, teleporting to %d", p.label, p.partnerID)
	}
}

func (p *portal) Destroy() {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	p.destroyed = true
	if p.shared.Scheduler != nil {
		p.shared.Scheduler.Deregister(p.scheduleID)
	}
	if p.gpuTarget != nil {
		p.material.ReleaseGPU()
		p.gpuTarget.Release()
		p.gpuTarget = nil
	}
	p.mu.Unlock()

	p.shared.Scene.Remove(p.indicator.ID())
	p.shared.Scene.Remove(p.body.ID())
}
