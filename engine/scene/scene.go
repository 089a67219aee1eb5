package scene

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrel-gfx/kestrel/common"
	"github.com/kestrel-gfx/kestrel/engine/camera"
	"github.com/kestrel-gfx/kestrel/engine/instance"
	"github.com/kestrel-gfx/kestrel/engine/light"
	"github.com/kestrel-gfx/kestrel/engine/model"
	"github.com/kestrel-gfx/kestrel/engine/renderer"
	"github.com/kestrel-gfx/kestrel/engine/renderer/bind_group_provider"
	"github.com/kestrel-gfx/kestrel/engine/renderer/pipeline"
	"github.com/kestrel-gfx/kestrel/engine/renderer/shader"
)

// flatInstanceStride is the per-instance vertex buffer stride for pipelines
// whose instance input is a bare model matrix (no trailing scale vector).
const flatInstanceStride = 64

// groupRole identifies which scene-owned resource backs a shader bind group.
type groupRole int

const (
	groupRoleUnknown groupRole = iota
	groupRoleCamera
	groupRoleLight
	groupRoleMaterial
)

// sceneObject pairs a mesh with its instances and draw state for one pipeline.
type sceneObject struct {
	mdl         model.Model
	instances   []instance.Instance
	pipelineKey string

	instanced bool // vertex shader declares a slot-1 per-instance layout
	flat      bool // 64-byte matrix-only instance layout instead of the 76-byte lit layout

	bindGroups []bind_group_provider.BindGroupProvider // indexed by group number

	visible      int    // instances surviving the frustum cull this frame
	instanceData []byte // reusable marshal buffer for the instance upload
}

// overlay is a bufferless draw: the pipeline's vertex shader synthesizes
// positions from the vertex index, so no mesh or bind groups are involved.
type overlay struct {
	pipelineKey string
	vertexCount uint32
}

// Scene manages a collection of mesh objects with their per-instance
// transforms, a Camera, an optional point Light, and a Renderer. Meshes are
// registered via AddMesh, which wires pipelines, GPU buffers, and bind groups
// from the shaders' own reflection data. Update advances the light and
// re-uploads camera/light uniforms and culled instance data; DrawCalls emits
// one draw per object. Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering. Inactive
	// scenes skip Update and DrawCalls entirely.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera. The new camera must carry a
	// bind group provider already initialized against a compatible layout.
	SetCamera(cam camera.Camera)

	// Renderer returns the renderer this scene draws through.
	Renderer() renderer.Renderer

	// Light returns the scene's point light, or nil if none is attached.
	Light() light.Light

	// SetLight attaches a point light to the scene. If a mesh whose shaders
	// declare a light uniform was already added, the light's bind group is
	// initialized immediately against the recorded layout.
	//
	// Parameters:
	//   - lgt: the point light to attach
	//
	// Returns:
	//   - error: an error if the light's bind group could not be initialized
	SetLight(lgt light.Light) error

	// LightOrbitSpeed returns the light's orbit speed in radians per second.
	LightOrbitSpeed() float32

	// SetLightOrbitSpeed sets the angular speed, in radians per second, at
	// which Update revolves the light around the world Y axis. Zero disables
	// the orbit animation.
	//
	// Parameters:
	//   - speed: orbit speed in radians per second
	SetLightOrbitSpeed(speed float32)

	// CullingDisabled returns whether CPU frustum culling is disabled.
	CullingDisabled() bool

	// SetCullingDisabled enables or disables CPU frustum culling. When
	// disabled, every instance is uploaded and drawn each frame.
	//
	// Parameters:
	//   - disabled: true to disable frustum culling
	SetCullingDisabled(disabled bool)

	// AddMesh registers a mesh object under a render pipeline. The pipeline is
	// created from the given shaders (and registered if the key is new), the
	// model's vertex and index buffers are uploaded, and the shaders' bind
	// groups are resolved by reflection: a group naming a "camera" variable
	// binds the scene camera, "light" binds the scene light, and texture or
	// sampler groups bind the model's diffuse material. If the vertex shader
	// declares a slot-1 per-instance layout, an instance buffer is created
	// from the provided instances; otherwise instances may be nil and the
	// mesh draws once.
	//
	// Parameters:
	//   - pipelineKey: the key the pipeline is registered and drawn under
	//   - mdl: the model to draw (must carry CPU vertex/index data)
	//   - instances: per-instance transforms, required for instanced pipelines
	//   - vertexShader: the vertex stage
	//   - fragmentShader: the fragment stage
	//   - pipelineOptions: additional pipeline configuration
	//
	// Returns:
	//   - error: an error if any GPU resource could not be initialized
	AddMesh(pipelineKey string, mdl model.Model, instances []instance.Instance, vertexShader, fragmentShader shader.Shader, pipelineOptions ...pipeline.PipelineBuilderOption) error

	// AddOverlay registers a bufferless draw: the pipeline's vertex shader
	// synthesizes positions from the vertex index, so no mesh buffers or bind
	// groups are created.
	//
	// Parameters:
	//   - pipelineKey: the key the pipeline is registered and drawn under
	//   - vertexCount: the number of vertices the shader synthesizes
	//   - vertexShader: the vertex stage
	//   - fragmentShader: the fragment stage
	//   - pipelineOptions: additional pipeline configuration
	//
	// Returns:
	//   - error: an error if the pipeline could not be registered
	AddOverlay(pipelineKey string, vertexCount uint32, vertexShader, fragmentShader shader.Shader, pipelineOptions ...pipeline.PipelineBuilderOption) error

	// ObjectCount returns the number of registered mesh objects.
	ObjectCount() int

	// InstanceCount returns the total number of instances across all objects.
	InstanceCount() int

	// Update advances per-frame scene state: updates the camera, orbits the
	// light, uploads the camera and light uniforms in a single coalesced
	// write, and rebuilds each object's instance data in parallel on the
	// compute pool, frustum-culling instances by bounding sphere before the
	// upload. Inactive scenes return immediately.
	//
	// Parameters:
	//   - deltaTime: seconds elapsed since the previous update
	//
	// Returns:
	//   - error: reserved for upload failures; currently always nil
	Update(deltaTime float32) error

	// DrawCalls emits one draw per registered object, then the overlays, onto
	// the renderer's current frame. Must be called between BeginFrame and
	// EndFrame. Objects whose instances were all culled are skipped.
	//
	// Returns:
	//   - error: an error if a pipeline key is missing from the renderer cache
	DrawCalls() error
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	lgt             light.Light
	lightOrbitSpeed float32 // radians per second around world Y, 0 disables
	lightReady      bool
	lightLayout     wgpu.BindGroupLayoutDescriptor
	lightLayoutSeen bool

	cullingDisabled bool

	objects  []*sceneObject
	overlays []overlay

	writePool []bind_group_provider.BufferWrite // reusable coalesced buffer write slice

	// computePool manages a bounded set of reusable goroutines for the
	// parallel instance prep phase of Update. Workers persist across frames,
	// avoiding per-frame goroutine spawn/teardown overhead.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera, renderer, and a vertex shader
// used to discover the camera's bind group layout. All three are required and NewScene
// panics if any of them is nil. The vertex shader's BindGroupVarNames are scanned for
// a group containing "camera" and its layout descriptor is used to initialize the
// camera's BindGroupProvider on the GPU.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - vertexShader: a vertex shader whose bind groups include the camera uniform layout (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, vertexShader shader.Shader, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if vertexShader == nil {
		panic("scene: NewScene requires a non-nil vertex shader for camera BGP init")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		active:         false,
		cam:            cam,
		r:              r,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	// Queue size of 256 accommodates typical object counts with headroom.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	// Initialize the camera's bind group on the GPU using the layout from the vertex shader.
	cameraGroup := 0
	for i, names := range vertexShader.BindGroupVarNames() {
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), "camera") {
				cameraGroup = i
				break
			}
		}
	}
	if bgp := cam.BindGroupProvider(); bgp != nil {
		descriptor := widenVisibility(vertexShader.BindGroupLayoutDescriptor(cameraGroup))
		if err := r.InitBindGroup(bgp, descriptor, nil, nil); err != nil {
			panic(fmt.Sprintf("scene: failed to init camera bind group: %v", err))
		}
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Light() light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lgt
}

func (s *scene) SetLight(lgt light.Light) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lgt = lgt
	s.lightReady = false
	if lgt == nil || !s.lightLayoutSeen {
		return nil
	}
	return s.initLightLocked()
}

func (s *scene) LightOrbitSpeed() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lightOrbitSpeed
}

func (s *scene) SetLightOrbitSpeed(speed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightOrbitSpeed = speed
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) AddMesh(pipelineKey string, mdl model.Model, instances []instance.Instance, vertexShader, fragmentShader shader.Shader, pipelineOptions ...pipeline.PipelineBuilderOption) error {
	if mdl == nil {
		return fmt.Errorf("scene %q: AddMesh requires a non-nil model", s.Name())
	}
	if vertexShader == nil || fragmentShader == nil {
		return fmt.Errorf("scene %q: AddMesh requires both shader stages", s.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registerPipelineLocked(pipelineKey, vertexShader, fragmentShader, pipelineOptions); err != nil {
		return err
	}

	if err := s.r.InitMeshBuffers(mdl.MeshProvider(), mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
		return fmt.Errorf("scene %q: failed to init mesh buffers for %q: %w", s.name, mdl.Name(), err)
	}

	obj := &sceneObject{
		mdl:         mdl,
		instances:   instances,
		pipelineKey: pipelineKey,
	}

	if instanceLayout := vertexShader.VertexLayout(1); len(instanceLayout) > 0 {
		if len(instances) == 0 {
			return fmt.Errorf("scene %q: pipeline %q expects per-instance data but no instances were provided", s.name, pipelineKey)
		}
		obj.instanced = true
		obj.flat = instanceLayout[0].ArrayStride == flatInstanceStride
		obj.instanceData = marshalAllInstances(instances, obj.flat)
		obj.visible = len(instances)
		if err := s.r.InitInstanceBuffer(mdl.MeshProvider(), obj.instanceData, len(instances)); err != nil {
			return fmt.Errorf("scene %q: failed to init instance buffer for %q: %w", s.name, mdl.Name(), err)
		}
	}

	roles := classifyBindGroups(vertexShader, fragmentShader)
	maxGroup := -1
	for g := range roles {
		if g > maxGroup {
			maxGroup = g
		}
	}

	bindGroups := make([]bind_group_provider.BindGroupProvider, maxGroup+1)
	for g := 0; g <= maxGroup; g++ {
		switch roles[g] {
		case groupRoleCamera:
			bindGroups[g] = s.cam.BindGroupProvider()
		case groupRoleLight:
			// Record the layout so a light attached later can still bind.
			s.lightLayout = widenVisibility(groupDescriptor(g, vertexShader, fragmentShader))
			s.lightLayoutSeen = true
			if s.lgt == nil {
				return fmt.Errorf("scene %q: pipeline %q declares a light uniform but the scene has no light", s.name, pipelineKey)
			}
			if !s.lightReady {
				if err := s.initLightLocked(); err != nil {
					return err
				}
			}
			bindGroups[g] = s.lgt.BindGroupProvider()
		case groupRoleMaterial:
			if err := s.initMaterialLocked(mdl, fragmentShader, g); err != nil {
				return err
			}
			bindGroups[g] = mdl.MaterialProvider()
		default:
			return fmt.Errorf("scene %q: pipeline %q bind group %d names no recognizable camera, light, or material variable", s.name, pipelineKey, g)
		}
	}
	obj.bindGroups = bindGroups

	s.objects = append(s.objects, obj)
	return nil
}

func (s *scene) AddOverlay(pipelineKey string, vertexCount uint32, vertexShader, fragmentShader shader.Shader, pipelineOptions ...pipeline.PipelineBuilderOption) error {
	if vertexShader == nil || fragmentShader == nil {
		return fmt.Errorf("scene %q: AddOverlay requires both shader stages", s.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registerPipelineLocked(pipelineKey, vertexShader, fragmentShader, pipelineOptions); err != nil {
		return err
	}

	s.overlays = append(s.overlays, overlay{pipelineKey: pipelineKey, vertexCount: vertexCount})
	return nil
}

func (s *scene) ObjectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) InstanceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, obj := range s.objects {
		total += len(obj.instances)
	}
	return total
}

func (s *scene) Update(deltaTime float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}

	s.cam.Update()

	var camPos [3]float32
	if ctrl := s.cam.Controller(); ctrl != nil {
		camPos[0], camPos[1], camPos[2] = ctrl.Position()
	}
	viewProj := s.cam.ViewProjectionMatrix()

	// Coalesce the frame's uniform uploads into a single WriteBuffers call.
	s.writePool = s.writePool[:0]
	if bgp := s.cam.BindGroupProvider(); bgp != nil {
		camUniform := camera.GPUCameraUniform{
			ViewProj:       viewProj,
			CameraPosition: camPos,
		}
		s.writePool = append(s.writePool, bind_group_provider.BufferWrite{
			Provider: bgp,
			Binding:  0,
			Offset:   0,
			Data:     camUniform.Marshal(),
		})
	}
	if s.lgt != nil {
		if s.lightOrbitSpeed != 0 {
			s.lgt.OrbitY(s.lightOrbitSpeed * deltaTime)
		}
		if s.lightReady {
			lightUniform := s.lgt.Uniform()
			s.writePool = append(s.writePool, bind_group_provider.BufferWrite{
				Provider: s.lgt.BindGroupProvider(),
				Binding:  0,
				Offset:   0,
				Data:     lightUniform.Marshal(),
			})
		}
	}
	if len(s.writePool) > 0 {
		s.r.WriteBuffers(s.writePool)
	}

	var frustum *common.Frustum
	if !s.cullingDisabled {
		f := common.ExtractFrustumFromMatrix(viewProj[:])
		frustum = &f
	}

	// Phase 1: parallel CPU prep — submit each object's instance rebuild to
	// the compute pool. Workers are reused across frames (no goroutine spawn
	// overhead). A WaitGroup provides per-frame barrier sync since pool.Wait()
	// blocks until workers idle-exit which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	taskID := 0
	for _, obj := range s.objects {
		if !obj.instanced {
			continue
		}

		wg.Add(1)
		objCap := obj // capture for closure
		id := taskID
		taskID++
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				objCap.marshalVisible(frustum)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: serial GPU uploads of the rebuilt instance data.
	for _, obj := range s.objects {
		if !obj.instanced || obj.visible == 0 {
			continue
		}
		s.r.WriteInstanceBuffer(obj.mdl.MeshProvider(), obj.instanceData)
	}

	return nil
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.active {
		return nil
	}

	for _, obj := range s.objects {
		count := uint32(1)
		if obj.instanced {
			if obj.visible == 0 {
				continue
			}
			count = uint32(obj.visible)
		}
		if err := s.r.DrawCall(obj.pipelineKey, obj.mdl.MeshProvider(), count, obj.bindGroups); err != nil {
			return fmt.Errorf("scene %q: draw %q: %w", s.name, obj.pipelineKey, err)
		}
	}

	for _, ov := range s.overlays {
		if err := s.r.Draw(ov.pipelineKey, ov.vertexCount, 1, nil); err != nil {
			return fmt.Errorf("scene %q: draw overlay %q: %w", s.name, ov.pipelineKey, err)
		}
	}

	return nil
}

// registerPipelineLocked builds a pipeline from the shader pair and registers
// it with the renderer. Caller must hold the mutex.
func (s *scene) registerPipelineLocked(pipelineKey string, vertexShader, fragmentShader shader.Shader, pipelineOptions []pipeline.PipelineBuilderOption) error {
	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(fragmentShader),
	}, pipelineOptions...)
	if err := s.r.RegisterPipelines(pipeline.NewPipeline(pipelineKey, opts...)); err != nil {
		return fmt.Errorf("scene %q: failed to register pipeline %q: %w", s.name, pipelineKey, err)
	}
	return nil
}

// initLightLocked initializes the light's bind group against the recorded
// layout and writes the initial uniform so the buffer is valid before the
// first Update. Caller must hold the mutex.
func (s *scene) initLightLocked() error {
	bgp := s.lgt.BindGroupProvider()
	if bgp == nil {
		return fmt.Errorf("scene %q: light has no bind group provider", s.name)
	}
	if err := s.r.InitBindGroup(bgp, s.lightLayout, nil, nil); err != nil {
		return fmt.Errorf("scene %q: failed to init light bind group: %w", s.name, err)
	}
	lightUniform := s.lgt.Uniform()
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: bgp,
		Binding:  0,
		Offset:   0,
		Data:     lightUniform.Marshal(),
	}})
	s.lightReady = true
	return nil
}

// initMaterialLocked creates and initializes the model's diffuse material bind
// group (texture view + sampler) from the fragment shader's reflection data.
// Models shared across pipelines keep their existing provider. Caller must
// hold the mutex.
func (s *scene) initMaterialLocked(mdl model.Model, fragmentShader shader.Shader, group int) error {
	if mdl.MaterialProvider() != nil {
		return nil
	}

	provider := bind_group_provider.NewBindGroupProvider(mdl.Name() + "_material")

	staging, err := diffuseStagingData(mdl)
	if err != nil {
		return fmt.Errorf("scene %q: failed to stage diffuse texture for %q: %w", s.name, mdl.Name(), err)
	}

	names := fragmentShader.BindGroupVarNames()[group]
	bindings := make([]int, 0, len(names))
	for b := range names {
		bindings = append(bindings, b)
	}
	sort.Ints(bindings)

	for _, b := range bindings {
		lower := strings.ToLower(names[b])
		if strings.HasPrefix(lower, "s_") || strings.Contains(lower, "sampler") {
			samplerData := common.SamplerStagingData{
				AddressModeU: wgpu.AddressModeClampToEdge,
				AddressModeV: wgpu.AddressModeClampToEdge,
				AddressModeW: wgpu.AddressModeClampToEdge,
				MagFilter:    wgpu.FilterModeLinear,
				MinFilter:    wgpu.FilterModeNearest,
				MipmapFilter: wgpu.MipmapFilterModeNearest,
			}
			if err := s.r.InitSampler(provider, b, samplerData); err != nil {
				return fmt.Errorf("scene %q: failed to init sampler for %q: %w", s.name, mdl.Name(), err)
			}
		} else {
			if err := s.r.InitTextureView(provider, b, staging); err != nil {
				return fmt.Errorf("scene %q: failed to init texture view for %q: %w", s.name, mdl.Name(), err)
			}
		}
	}

	descriptor := widenVisibility(fragmentShader.BindGroupLayoutDescriptor(group))
	if err := s.r.InitBindGroup(provider, descriptor, nil, nil); err != nil {
		return fmt.Errorf("scene %q: failed to init material bind group for %q: %w", s.name, mdl.Name(), err)
	}

	mdl.SetMaterialProvider(provider)
	return nil
}

// marshalAllInstances snapshots every instance into a single contiguous buffer
// for the initial instance buffer upload. Per-frame culling in Update takes
// over once the scene starts ticking.
func marshalAllInstances(instances []instance.Instance, flat bool) []byte {
	if flat {
		flats := make([]instance.GPUFlatInstance, len(instances))
		for i, inst := range instances {
			flats[i] = inst.GPUFlatInstance()
		}
		return instance.MarshalFlatInstances(flats)
	}
	full := make([]instance.GPUInstance, len(instances))
	for i, inst := range instances {
		full[i] = inst.GPUInstance()
	}
	return instance.MarshalInstances(full)
}

// marshalVisible rebuilds the object's instance upload buffer, skipping
// instances whose bounding sphere falls outside the frustum. A nil frustum
// keeps every instance. Sets obj.visible to the surviving count.
func (obj *sceneObject) marshalVisible(frustum *common.Frustum) {
	obj.instanceData = obj.instanceData[:0]
	visible := 0
	radius := obj.mdl.BoundingRadius()
	for _, inst := range obj.instances {
		if frustum != nil {
			scale := inst.Scale()
			r := radius * max(scale[0], scale[1], scale[2])
			if !sphereVisible(frustum, inst.Position(), r) {
				continue
			}
		}
		if obj.flat {
			flat := inst.GPUFlatInstance()
			obj.instanceData = append(obj.instanceData, flat.Marshal()...)
		} else {
			full := inst.GPUInstance()
			obj.instanceData = append(obj.instanceData, full.Marshal()...)
		}
		visible++
	}
	obj.visible = visible
}

// sphereVisible tests a bounding sphere against all six frustum planes.
// Returns false only when the sphere is entirely in a plane's negative
// half-space, so results are conservative.
func sphereVisible(frustum *common.Frustum, center [3]float32, radius float32) bool {
	for _, p := range frustum.Planes {
		dist := p.Normal[0]*center[0] + p.Normal[1]*center[1] + p.Normal[2]*center[2] + p.Distance
		if dist < -radius {
			return false
		}
	}
	return true
}

// classifyBindGroups maps each bind group index declared by the shaders to the
// scene resource that backs it, keyed off the bound variable names: "camera"
// binds the scene camera, "light" the scene light, and diffuse texture or
// sampler names the model material.
func classifyBindGroups(shaders ...shader.Shader) map[int]groupRole {
	roles := make(map[int]groupRole)
	for _, sh := range shaders {
		if sh == nil {
			continue
		}
		for g, names := range sh.BindGroupVarNames() {
			if roles[g] != groupRoleUnknown {
				continue
			}
			for _, name := range names {
				lower := strings.ToLower(name)
				switch {
				case strings.Contains(lower, "camera"):
					roles[g] = groupRoleCamera
				case strings.Contains(lower, "light"):
					roles[g] = groupRoleLight
				case strings.Contains(lower, "diffuse") || strings.HasPrefix(lower, "t_") || strings.HasPrefix(lower, "s_"):
					roles[g] = groupRoleMaterial
				}
				if roles[g] != groupRoleUnknown {
					break
				}
			}
		}
	}
	return roles
}

// groupDescriptor returns the bind group layout descriptor for the group from
// whichever shader stage declares it.
func groupDescriptor(group int, vertexShader, fragmentShader shader.Shader) wgpu.BindGroupLayoutDescriptor {
	if desc := vertexShader.BindGroupLayoutDescriptor(group); len(desc.Entries) > 0 {
		return desc
	}
	return fragmentShader.BindGroupLayoutDescriptor(group)
}

// widenVisibility copies a bind group layout descriptor with every entry's
// visibility set to Vertex|Fragment, matching the widening the renderer
// applies to pipeline layouts so bind groups stay shareable across pipelines.
func widenVisibility(descriptor wgpu.BindGroupLayoutDescriptor) wgpu.BindGroupLayoutDescriptor {
	entries := make([]wgpu.BindGroupLayoutEntry, len(descriptor.Entries))
	for i, e := range descriptor.Entries {
		e.Visibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
		entries[i] = e
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label:   descriptor.Label,
		Entries: entries,
	}
}

// diffuseStagingData resolves the model's diffuse texture into staging data.
// The first imported material with a decoded texture wins; a material with
// only a base color produces a 1x1 texture of that color, and a model with no
// materials at all gets plain white.
func diffuseStagingData(mdl model.Model) (common.TextureStagingData, error) {
	materials := mdl.ImportedMaterials()
	for _, mat := range materials {
		if mat.DiffuseTexture == nil {
			continue
		}
		pixels, width, height, err := mat.DiffuseTexture.Decode()
		if err != nil {
			return common.TextureStagingData{}, err
		}
		return common.TextureStagingData{Pixels: pixels, Width: width, Height: height}, nil
	}

	color := [4]float32{1, 1, 1, 1}
	if len(materials) > 0 {
		color = materials[0].BaseColor
	}
	pixels := make([]byte, 4)
	for i, c := range color {
		if c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
		pixels[i] = byte(c*255 + 0.5)
	}
	return common.TextureStagingData{Pixels: pixels, Width: 1, Height: 1}, nil
}
