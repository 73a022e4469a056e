package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-fog/engine/camera"
	"github.com/Carmen-Shannon/oxy-fog/engine/light"
	"github.com/Carmen-Shannon/oxy-fog/engine/log"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuRenderer owns the WebGPU device, the window surface, the per-frame
// uniform and storage buffers and the box pass that reads them.
type wgpuRenderer struct {
	mu     *sync.Mutex
	logger log.Logger
	label  string

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount

	width  int
	height int

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	lightBuffer  *wgpu.Buffer
	fogBuffer    *wgpu.Buffer
	cameraBuffer *wgpu.Buffer
	postBuffer   *wgpu.Buffer

	boxShader       *wgpu.ShaderModule
	bindGroupLayout *wgpu.BindGroupLayout
	bindGroup       *wgpu.BindGroup
	pipelineLayout  *wgpu.PipelineLayout
	boxPipeline     *wgpu.RenderPipeline
	vertexBuffer    *wgpu.Buffer
	indexBuffer     *wgpu.Buffer
	indexCount      int

	frames       uint64
	lightUploads uint64
	closed       bool
}

var _ Renderer = &wgpuRenderer{}

// NewWGPURenderer creates a WebGPU device and surface for src and allocates the
// scene buffers. The calling goroutine is locked to its OS thread; every later
// call must come from the same thread.
//
// Parameters:
//   - src: the window to present into
//   - options: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter or device could be obtained
func NewWGPURenderer(src SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	runtime.LockOSThread()
	r := &wgpuRenderer{
		mu:          &sync.Mutex{},
		logger:      log.New("renderer"),
		label:       "oxy-fog",
		presentMode: PresentModeUncapped,
		sampleCount: MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(src.SurfaceDescriptor())

	a, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		r.release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	r.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: r.label + " Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		r.release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	r.device = d
	r.queue = d.GetQueue()

	if err := r.createSceneBuffers(); err != nil {
		r.release()
		return nil, err
	}
	if err := r.configureSurface(src.Width(), src.Height()); err != nil {
		r.release()
		return nil, err
	}
	if err := r.createBoxPipeline(); err != nil {
		r.release()
		return nil, err
	}
	r.logger.Infof("wgpu device ready: %dx%d, msaa %dx, present mode %d", r.width, r.height, r.sampleCount, r.presentMode)
	return r, nil
}

func (r *wgpuRenderer) createSceneBuffers() error {
	var lightHeader light.GPULightHeader
	var one light.GPULight
	var cam camera.GPUCameraUniform
	var post camera.GPUPostUniform
	var fog GPUFogUniform

	specs := []struct {
		dst   **wgpu.Buffer
		name  string
		size  int
		usage wgpu.BufferUsage
	}{
		{&r.lightBuffer, "Light Buffer", lightHeader.Size() + light.MaxGPULights*one.Size(), wgpu.BufferUsageStorage},
		{&r.fogBuffer, "Fog Uniform", fog.Size(), wgpu.BufferUsageUniform},
		{&r.cameraBuffer, "Camera Uniform", cam.Size(), wgpu.BufferUsageUniform},
		{&r.postBuffer, "Post Uniform", post.Size(), wgpu.BufferUsageUniform},
	}
	for _, s := range specs {
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: r.label + " " + s.name,
			Size:  uint64(s.size),
			Usage: s.usage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
		*s.dst = buf
	}
	return nil
}

// configureSurface configures the swapchain and rebuilds the size-dependent
// attachments. Caller must hold the mutex or be the constructor.
func (r *wgpuRenderer) configureSurface(width, height int) error {
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = capabilities.Formats[0]
	if width <= 0 || height <= 0 {
		return nil
	}
	r.width, r.height = width, height

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode.wgpu(),
		AlphaMode:   capabilities.AlphaModes[0],
	})

	r.releaseAttachments()

	count := uint32(r.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	var err error
	if msaaEnabled {
		r.msaaTexture, err = r.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         r.label + " MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        r.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		if r.msaaTextureView, err = r.msaaTexture.CreateView(nil); err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	// Depth sample count must match the color attachment.
	r.depthTexture, err = r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         r.label + " Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	if r.depthTextureView, err = r.depthTexture.CreateView(nil); err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	// With MSAA the multisampled texture is the View and the swapchain view
	// becomes the ResolveTarget each frame; without it the swapchain view is the View.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    r.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
				ClearValue: wgpu.Color{A: 1.0},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (r *wgpuRenderer) Submit(snap *SceneSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.vertexBuffer == nil {
		if err := r.uploadBoxMesh(snap); err != nil {
			return err
		}
	}
	r.upload(snap)
	if r.width == 0 || r.height == 0 {
		// minimized: keep uploads, skip the swapchain
		return nil
	}
	return r.drawFrame()
}

// upload writes the snapshot into the scene buffers. Lights are only written
// when they changed, and always on the first frame.
func (r *wgpuRenderer) upload(snap *SceneSnapshot) {
	if snap.LightsDirty || r.lightUploads == 0 {
		r.queue.WriteBuffer(r.lightBuffer, 0, light.MarshalLightBuffer(snap.Lights, ambientRadiance(snap)))
		r.lightUploads++
	}

	cam := cameraUniform(snap.Camera)
	r.queue.WriteBuffer(r.cameraBuffer, 0, cam.Marshal())

	post := camera.NewGPUPostUniform(snap.Camera.Post)
	r.queue.WriteBuffer(r.postBuffer, 0, post.Marshal())

	fog := NewGPUFogUniform(snap.Fog)
	r.queue.WriteBuffer(r.fogBuffer, 0, fog.Marshal())
}

func (r *wgpuRenderer) drawFrame() error {
	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()
	defer surfaceTexture.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	if r.sampleCount > 1 {
		r.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		r.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)
	r.drawBoxes(pass)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	defer commandBuffer.Release()

	r.queue.Submit(commandBuffer)
	r.surface.Present()
	r.frames++
	return nil
}

func (r *wgpuRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if width <= 0 || height <= 0 {
		r.width, r.height = 0, 0
		return
	}
	if err := r.configureSurface(width, height); err != nil {
		r.logger.Errorf("resize to %dx%d failed: %v", width, height, err)
	}
}

func (r *wgpuRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.release()
	r.logger.Infof("renderer closed after %d frames, %d light uploads", r.frames, r.lightUploads)
	return nil
}

func (r *wgpuRenderer) releaseAttachments() {
	if r.msaaTextureView != nil {
		r.msaaTextureView.Release()
		r.msaaTextureView = nil
	}
	if r.msaaTexture != nil {
		r.msaaTexture.Release()
		r.msaaTexture = nil
	}
	if r.depthTextureView != nil {
		r.depthTextureView.Release()
		r.depthTextureView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
}

// release frees everything in reverse creation order. Safe on a partially
// constructed renderer.
func (r *wgpuRenderer) release() {
	r.releaseBoxPass()
	r.releaseAttachments()
	for _, b := range []**wgpu.Buffer{&r.postBuffer, &r.cameraBuffer, &r.fogBuffer, &r.lightBuffer} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}

func ambientRadiance(snap *SceneSnapshot) [3]float32 {
	a := snap.Ambient
	return [3]float32{a.Color[0] * a.Brightness, a.Color[1] * a.Brightness, a.Color[2] * a.Brightness}
}
