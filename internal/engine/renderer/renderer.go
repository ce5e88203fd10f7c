// Package renderer draws the player mesh with the skin texture and the
// editing overlays through OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/gnumc/skin3d/internal/engine/shader"
	"github.com/gnumc/skin3d/internal/logger"
	"github.com/gnumc/skin3d/internal/model"
	"github.com/gnumc/skin3d/internal/skin"
	"github.com/gnumc/skin3d/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// floatsPerVertex is position (3) + uv (2) + normal (3).
const floatsPerVertex = 8

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Frame is everything one draw call needs from the application state.
type Frame struct {
	View        math.Mat4
	Proj        math.Mat4
	Hover       skin.Texel
	HasHover    bool
	ShowGrid    bool
	ShowOverlay bool
	Time        float32 // seconds, drives the marching ants
}

// Renderer owns the GL objects of the preview: one mesh buffer, the skin and
// selection textures and the shader program.
type Renderer struct {
	config Config

	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32

	baseIndexCount    int32
	overlayIndexCount int32

	skinTex      uint32
	selectionTex uint32

	// generations of the last uploaded snapshots
	texGen       uint64
	texUploaded  bool
	selGen       uint64
	selUploaded  bool
	hasSelection bool

	// uniform locations
	uProjection   int32
	uView         int32
	uTexture      int32
	uSelection    int32
	uHasSelection int32
	uShowGrid     int32
	uHoverPixel   int32
	uTexSize      int32
	uTime         int32
}

// New creates a renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	program, err := shader.CompileProgram(shader.VertexSource, shader.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program

	r.uProjection = shader.GetUniform(program, "uProjection")
	r.uView = shader.GetUniform(program, "uView")
	r.uTexture = shader.GetUniform(program, "uTexture")
	r.uSelection = shader.GetUniform(program, "uSelection")
	r.uHasSelection = shader.GetUniform(program, "uHasSelection")
	r.uShowGrid = shader.GetUniform(program, "uShowGrid")
	r.uHoverPixel = shader.GetUniform(program, "uHoverPixel")
	r.uTexSize = shader.GetUniform(program, "uTexSize")
	r.uTime = shader.GetUniform(program, "uTime")

	r.skinTex = newPixelTexture()
	r.selectionTex = newPixelTexture()

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// newPixelTexture allocates an atlas-sized texture with nearest filtering,
// so individual texels stay sharp at any zoom.
func newPixelTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Close releases all GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.skinTex != 0 {
		gl.DeleteTextures(1, &r.skinTex)
	}
	if r.selectionTex != 0 {
		gl.DeleteTextures(1, &r.selectionTex)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetMesh uploads the mesh geometry. Called on startup and whenever the
// variant or pose changes.
func (r *Renderer) SetMesh(mesh *model.Mesh) {
	base := mesh.Quads(false)
	all := mesh.Quads(true)

	vertices := make([]float32, 0, len(all)*4*floatsPerVertex)
	indices := make([]uint32, 0, len(all)*6)
	for qi, q := range all {
		for vi := 0; vi < 4; vi++ {
			v := q.Verts[vi]
			uv := q.UVs[vi]
			vertices = append(vertices,
				v.X, v.Y, v.Z,
				uv.X, uv.Y,
				q.Normal.X, q.Normal.Y, q.Normal.Z,
			)
		}
		b := uint32(qi * 4)
		indices = append(indices, b, b+1, b+2, b, b+2, b+3)
	}

	r.baseIndexCount = int32(len(base) * 6)
	r.overlayIndexCount = int32(len(all)*6) - r.baseIndexCount

	if r.vao == 0 {
		gl.GenVertexArrays(1, &r.vao)
		gl.GenBuffers(1, &r.vbo)
		gl.GenBuffers(1, &r.ebo)

		gl.BindVertexArray(r.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

		stride := int32(floatsPerVertex * 4)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(5*4)))
		gl.EnableVertexAttribArray(2)
	} else {
		gl.BindVertexArray(r.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	}

	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.String("variant", mesh.Variant.String()),
		zap.String("pose", mesh.Pose.String()),
		zap.Int("quads", len(all)),
	)
}

// SyncTexture uploads the skin snapshot if it is newer than the one on the
// GPU. Generations make unchanged frames free.
func (r *Renderer) SyncTexture(t *skin.Texture) {
	if r.texUploaded && t.Generation() == r.texGen {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, r.skinTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, skin.Size, skin.Size, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&t.Pix()[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.texGen = t.Generation()
	r.texUploaded = true
}

// SyncSelection uploads the selection mask if it changed. A nil mask means
// no selection.
func (r *Renderer) SyncSelection(m *skin.Mask) {
	if m == nil {
		r.hasSelection = false
		return
	}
	r.hasSelection = true
	if r.selUploaded && m.Generation() == r.selGen {
		return
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.BindTexture(gl.TEXTURE_2D, r.selectionTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, skin.Size, skin.Size, 0,
		gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&m.Bits()[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	r.selGen = m.Generation()
	r.selUploaded = true
}

// Draw renders one frame. The overlay layer draws in a second pass with the
// depth mask off, so its transparent texels never occlude the base layer.
func (r *Renderer) Draw(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.vao == 0 {
		return
	}

	gl.UseProgram(r.program)

	proj := f.Proj
	view := f.View
	gl.UniformMatrix4fv(r.uProjection, 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.uView, 1, false, view.Ptr())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.skinTex)
	gl.Uniform1i(r.uTexture, 0)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.selectionTex)
	gl.Uniform1i(r.uSelection, 1)

	hasSel := int32(0)
	if r.hasSelection {
		hasSel = 1
	}
	gl.Uniform1i(r.uHasSelection, hasSel)

	showGrid := int32(0)
	if f.ShowGrid {
		showGrid = 1
	}
	gl.Uniform1i(r.uShowGrid, showGrid)

	// (-1,-1) is outside the atlas and never matches a texel.
	hoverX, hoverY := float32(-1), float32(-1)
	if f.HasHover {
		hoverX = float32(f.Hover.X)
		hoverY = float32(f.Hover.Y)
	}
	gl.Uniform2f(r.uHoverPixel, hoverX, hoverY)

	gl.Uniform1f(r.uTexSize, float32(skin.Size))
	gl.Uniform1f(r.uTime, f.Time)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.baseIndexCount, gl.UNSIGNED_INT, nil)

	if f.ShowOverlay && r.overlayIndexCount > 0 {
		gl.DepthMask(false)
		gl.DrawElements(gl.TRIANGLES, r.overlayIndexCount, gl.UNSIGNED_INT,
			unsafe.Pointer(uintptr(r.baseIndexCount)*4))
		gl.DepthMask(true)
	}

	gl.BindVertexArray(0)
}
