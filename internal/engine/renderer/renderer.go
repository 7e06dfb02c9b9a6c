// Package renderer draws the scene with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/engine/camera"
	"github.com/Faultbox/basic3d/internal/engine/model"
	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/internal/engine/shader"
	"github.com/Faultbox/basic3d/internal/game/missile"
	"github.com/Faultbox/basic3d/internal/logger"
	"github.com/Faultbox/basic3d/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background Color
	LightDir   [3]float32 // direction the light travels
}

// Model meshes are not decoded; models draw as a box through this local
// transform.
var proxyMatrix = math.NewScale(40, 120, 40).Mul(math.NewTranslate(0, 60, 0))

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	scene *shader.Program
	meshes map[*primitive.Primitive]*gpuMesh
	proxy  *gpuMesh

	textures map[uint32]uint32 // asset handle to GL texture
	white    uint32

	view       [16]float32
	projection [16]float32

	overlay *overlay
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		meshes:   make(map[*primitive.Primitive]*gpuMesh),
		textures: make(map[uint32]uint32),
	}

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
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	bg := cfg.Background
	gl.ClearColor(bg.R, bg.G, bg.B, bg.A)

	var err error
	r.scene, err = shader.New(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}

	proxy := primitive.NewCube(1)
	if err := proxy.Create(); err != nil {
		return nil, fmt.Errorf("model proxy: %w", err)
	}
	r.proxy = uploadMesh(&proxy.Mesh)
	r.white = uploadRGBA(1, 1, []uint8{255, 255, 255, 255})

	r.overlay, err = newOverlay(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range r.meshes {
		m.delete()
	}
	if r.proxy != nil {
		r.proxy.delete()
	}
	for _, tex := range r.textures {
		if tex != r.white {
			gl.DeleteTextures(1, &tex)
		}
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	if r.overlay != nil {
		r.overlay.close()
	}
	if r.scene != nil {
		r.scene.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.overlay.resize(width, height)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.overlay.begin()
}

// End draws the queued 2D overlay on top of the frame.
func (r *Renderer) End() {
	r.overlay.end()
}

// SetCamera takes the view and projection for the following draws.
func (r *Renderer) SetCamera(c *camera.Camera) {
	r.view = c.ViewMatrix().Float32()
	r.projection = c.ProjectionMatrix().Float32()
}

// DrawPrimitive draws p with its world matrix. The mesh is uploaded on
// first use.
func (r *Renderer) DrawPrimitive(p *primitive.Primitive) {
	mesh, ok := r.meshes[p]
	if !ok {
		if !p.Created() {
			return
		}
		mesh = uploadMesh(&p.Mesh)
		r.meshes[p] = mesh
	}

	if p.Transparent {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
		defer func() {
			gl.DepthMask(true)
			gl.Disable(gl.BLEND)
		}()
	}
	r.draw(mesh, p.Matrix, r.texture(p.Texture), p.Lighting, [4]float32{1, 1, 1, 1})
}

// DrawModel draws a box proxy through the model's world matrix.
func (r *Renderer) DrawModel(m *model.Model) {
	tint := [4]float32{0.8, 0.8, 0.9, 1}
	if !m.Loaded() {
		tint = [4]float32{1, 0, 1, 1}
	}
	r.draw(r.proxy, proxyMatrix.Mul(m.Matrix), r.white, true, tint)
}

// DrawLabel queues screen text.
func (r *Renderer) DrawLabel(l missile.Label) {
	r.overlay.text(float32(l.X), float32(l.Y), l.Text, labelColor)
}

// DrawFade queues a full-screen black quad.
func (r *Renderer) DrawFade(alpha float64) {
	r.overlay.rect(0, 0, float32(r.config.Width), float32(r.config.Height), ColorBlack.WithAlpha(float32(alpha)))
}

func (r *Renderer) texture(handle uint32) uint32 {
	if tex, ok := r.textures[handle]; ok {
		return tex
	}
	return r.white
}

func (r *Renderer) draw(mesh *gpuMesh, world math.Matrix44, texture uint32, lighting bool, tint [4]float32) {
	r.scene.Use()
	r.scene.SetMatrix("uModel", world.Float32())
	r.scene.SetMatrix("uView", r.view)
	r.scene.SetMatrix("uProjection", r.projection)
	r.scene.SetVec4("uTint", tint)
	r.scene.SetVec3("uLightDir", r.config.LightDir[0], r.config.LightDir[1], r.config.LightDir[2])
	if lighting {
		r.scene.SetInt("uLighting", 1)
	} else {
		r.scene.SetInt("uLighting", 0)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	r.scene.SetInt("uTexture", 0)

	mesh.draw()

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}
