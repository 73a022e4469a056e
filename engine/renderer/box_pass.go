package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fog/engine/camera"
	"github.com/Carmen-Shannon/oxy-fog/engine/light"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bindings of group 0 in boxShaderSource.
const (
	bindingCamera uint32 = iota
	bindingLights
	bindingFog
	bindingPost
)

// boxShaderSource shades the room boxes with every point light and attenuates
// them through the fog volume, then applies the camera's tonemapping.
const boxShaderSource = camera.GPUCameraUniformSource + "\n" +
	camera.GPUPostUniformSource + "\n" +
	light.GPULightHeaderSource + "\n" +
	light.GPULightSource + "\n" +
	GPUFogUniformSource + `

struct LightBuffer {
    header: LightHeader,
    lights: array<Light>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(0) @binding(1) var<storage, read> light_buffer: LightBuffer;
@group(0) @binding(2) var<uniform> fog: FogUniform;
@group(0) @binding(3) var<uniform> post: PostUniform;

const PI: f32 = 3.14159265;
const EXPOSURE: f32 = 0.02;
const FLAG_VOLUMETRIC: u32 = 2u;
const POST_HDR: u32 = 1u;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) albedo: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) albedo: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = camera.view_proj * vec4<f32>(in.position, 1.0);
    out.world_position = in.position;
    out.normal = in.normal;
    out.albedo = in.albedo;
    return out;
}

fn range_falloff(dist: f32, light_range: f32) -> f32 {
    let r = clamp(1.0 - pow(dist / light_range, 4.0), 0.0, 1.0);
    return r * r;
}

// Length of the segment origin..end_point inside the fog box.
fn fog_path_length(origin: vec3<f32>, end_point: vec3<f32>) -> f32 {
    let dir = end_point - origin;
    let safe_dir = select(dir, vec3<f32>(1e-6), abs(dir) < vec3<f32>(1e-6));
    let inv = 1.0 / safe_dir;
    let lo = fog.center - fog.scale * 0.5;
    let hi = fog.center + fog.scale * 0.5;
    let t0 = (lo - origin) * inv;
    let t1 = (hi - origin) * inv;
    let t_min = min(t0, t1);
    let t_max = max(t0, t1);
    let t_near = max(max(t_min.x, t_min.y), max(t_min.z, 0.0));
    let t_far = min(min(t_max.x, t_max.y), min(t_max.z, 1.0));
    return max(t_far - t_near, 0.0) * length(dir);
}

fn henyey_greenstein(cos_theta: f32, g: f32) -> f32 {
    let g2 = g * g;
    let denom = max(1.0 + g2 - 2.0 * g * cos_theta, 1e-4);
    return (1.0 - g2) / (4.0 * PI * pow(denom, 1.5));
}

fn aces_fitted(x: vec3<f32>) -> vec3<f32> {
    let a = 2.51;
    let b = 0.03;
    let c = 2.43;
    let d = 0.59;
    let e = 0.14;
    return clamp((x * (a * x + b)) / (x * (c * x + d) + e), vec3<f32>(0.0), vec3<f32>(1.0));
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let n = normalize(in.normal);
    let ambient = light_buffer.header.ambient;
    let view_dir = normalize(in.world_position - camera.camera_position);

    var radiance = in.albedo * ambient;
    var inscatter = vec3<f32>(0.0);
    let count = min(light_buffer.header.light_count, arrayLength(&light_buffer.lights));
    for (var i = 0u; i < count; i = i + 1u) {
        let l = light_buffer.lights[i];
        let to_light = l.position - in.world_position;
        let dist = max(length(to_light), l.radius);
        let falloff = range_falloff(dist, l.light_range) / (4.0 * PI * dist * dist);
        let ndotl = max(dot(n, to_light / dist), 0.0);
        radiance += in.albedo * l.color * l.intensity * falloff * ndotl;

        if ((l.flags & FLAG_VOLUMETRIC) != 0u) {
            let to_eye_light = l.position - camera.camera_position;
            let d = max(length(to_eye_light), l.radius);
            let phase = henyey_greenstein(dot(view_dir, to_eye_light / d), fog.anisotropy);
            inscatter += l.color * l.intensity * phase * range_falloff(d, l.light_range);
        }
    }

    let path = fog_path_length(camera.camera_position, in.world_position);
    let transmittance = exp(-fog.extinction * path);
    let scattered = fog.color * fog.density_factor * fog.scattering * path *
        (inscatter + ambient * post.volumetric_ambient);

    var color = (radiance * transmittance + scattered) * EXPOSURE;
    if ((post.flags & POST_HDR) != 0u) {
        if (post.tonemapping == 1u) {
            color = color / (color + vec3<f32>(1.0));
        } else if (post.tonemapping == 2u) {
            color = aces_fitted(color);
        }
    }
    return vec4<f32>(clamp(color, vec3<f32>(0.0), vec3<f32>(1.0)), 1.0);
}
`

// boxVertexLayout matches VertexInput in boxShaderSource.
var boxVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: boxVertexStride,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 2},
	},
}

// createBoxPipeline compiles the box shader and binds the scene buffers to it.
// The scene buffers and the surface format must exist.
func (r *wgpuRenderer) createBoxPipeline() error {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: r.label + " Box Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: boxShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("create box shader: %w", err)
	}
	r.boxShader = module

	fragmentAndVertex := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	r.bindGroupLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: r.label + " Scene Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: bindingCamera, Visibility: fragmentAndVertex, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
			{Binding: bindingLights, Visibility: wgpu.ShaderStageFragment, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage}},
			{Binding: bindingFog, Visibility: wgpu.ShaderStageFragment, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
			{Binding: bindingPost, Visibility: wgpu.ShaderStageFragment, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("create scene bind group layout: %w", err)
	}

	r.bindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  r.label + " Scene Bind Group",
		Layout: r.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: bindingCamera, Buffer: r.cameraBuffer, Size: wgpu.WholeSize},
			{Binding: bindingLights, Buffer: r.lightBuffer, Size: wgpu.WholeSize},
			{Binding: bindingFog, Buffer: r.fogBuffer, Size: wgpu.WholeSize},
			{Binding: bindingPost, Buffer: r.postBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create scene bind group: %w", err)
	}

	r.pipelineLayout, err = r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            r.label + " Box Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("create box pipeline layout: %w", err)
	}

	r.boxPipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  r.label + " Box Render Pipeline",
		Layout: r.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{boxVertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(r.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create box render pipeline: %w", err)
	}
	return nil
}

// uploadBoxMesh creates the vertex and index buffers for the snapshot's boxes.
// The geometry is static, so this runs once.
func (r *wgpuRenderer) uploadBoxMesh(snap *SceneSnapshot) error {
	mesh := buildBoxMesh(snap.Boxes, snap.Materials)
	if mesh.indexCount == 0 {
		return nil
	}

	vb, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: r.label + " Box Vertex Buffer",
		Size:  uint64(len(mesh.vertices)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create box vertex buffer: %w", err)
	}
	ib, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: r.label + " Box Index Buffer",
		Size:  uint64(len(mesh.indices)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return fmt.Errorf("create box index buffer: %w", err)
	}
	r.queue.WriteBuffer(vb, 0, mesh.vertices)
	r.queue.WriteBuffer(ib, 0, mesh.indices)

	r.vertexBuffer, r.indexBuffer, r.indexCount = vb, ib, mesh.indexCount
	r.logger.Debugf("box mesh uploaded: %d boxes, %d indices", len(snap.Boxes), mesh.indexCount)
	return nil
}

// drawBoxes records the box draw into pass.
func (r *wgpuRenderer) drawBoxes(pass *wgpu.RenderPassEncoder) {
	if r.indexCount == 0 {
		return
	}
	pass.SetPipeline(r.boxPipeline)
	pass.SetBindGroup(0, r.bindGroup, nil)
	pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(r.indexCount), 1, 0, 0, 0)
}

func (r *wgpuRenderer) releaseBoxPass() {
	if r.indexBuffer != nil {
		r.indexBuffer.Release()
		r.indexBuffer = nil
	}
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
		r.vertexBuffer = nil
	}
	r.indexCount = 0
	if r.boxPipeline != nil {
		r.boxPipeline.Release()
		r.boxPipeline = nil
	}
	if r.pipelineLayout != nil {
		r.pipelineLayout.Release()
		r.pipelineLayout = nil
	}
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.bindGroupLayout != nil {
		r.bindGroupLayout.Release()
		r.bindGroupLayout = nil
	}
	if r.boxShader != nil {
		r.boxShader.Release()
		r.boxShader = nil
	}
}
