package renderer

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/basic3d/internal/engine/shader"
)

// Pixel size multiplier for label glyphs.
const textScale = 2

// overlay batches screen-space quads and text drawn after the scene.
// Coordinates are pixels with the origin at the top left.
type overlay struct {
	width, height int

	solid      *shader.Program
	textShader *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32

	// Vertex format: x, y, z, r, g, b, a (7 floats)
	solidVertices []float32
	labels        []queuedText

	glyphs map[string]*textTexture
	used   map[string]bool
}

type queuedText struct {
	x, y  float32
	text  string
	color Color
}

type textTexture struct {
	id            uint32
	width, height int
}

func newOverlay(width, height int) (*overlay, error) {
	o := &overlay{
		width:         width,
		height:        height,
		solidVertices: make([]float32, 0, 256),
		glyphs:        make(map[string]*textTexture),
		used:          make(map[string]bool),
	}

	var err error
	if o.solid, err = shader.New(solidVertexShader, solidFragmentShader); err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	if o.textShader, err = shader.New(textVertexShader, textFragmentShader); err != nil {
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	o.solidVAO, o.solidVBO = newStreamBuffer(3, 4)
	o.textVAO, o.textVBO = newStreamBuffer(3, 2, 4)
	return o, nil
}

// newStreamBuffer creates a VAO/VBO pair with float attributes of the
// given sizes at consecutive locations.
func newStreamBuffer(sizes ...int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	var stride int32
	for _, s := range sizes {
		stride += s * 4
	}
	offset := 0
	for i, s := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), s, gl.FLOAT, false, stride, uintptr(offset))
		gl.EnableVertexAttribArray(uint32(i))
		offset += int(s) * 4
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

func (o *overlay) resize(width, height int) {
	o.width = width
	o.height = height
}

func (o *overlay) begin() {
	o.solidVertices = o.solidVertices[:0]
	o.labels = o.labels[:0]
}

func (o *overlay) rect(x, y, w, h float32, c Color) {
	o.solidVertices = appendQuad(o.solidVertices, x, y, w, h, c)
}

func (o *overlay) text(x, y float32, text string, c Color) {
	o.labels = append(o.labels, queuedText{x: x, y: y, text: text, color: c})
}

// end draws labels first so a fade covers them.
func (o *overlay) end() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	proj := orthoMatrix(0, float32(o.width), float32(o.height), 0, -1, 1)

	if len(o.labels) > 0 {
		o.textShader.Use()
		o.textShader.SetMatrix("uProjection", proj)
		o.textShader.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindVertexArray(o.textVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, o.textVBO)

		for _, l := range o.labels {
			tex := o.glyphTexture(l.text)
			w, h := float32(tex.width), float32(tex.height)
			// Centered on the anchor, like the countdown over the fire point.
			vertices := texturedQuad(l.x-w/2, l.y-h/2, w, h, l.color)
			gl.BindTexture(gl.TEXTURE_2D, tex.id)
			gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
			gl.DrawArrays(gl.TRIANGLES, 0, 6)
		}
	}

	if len(o.solidVertices) > 0 {
		o.solid.Use()
		o.solid.SetMatrix("uProjection", proj)
		gl.BindVertexArray(o.solidVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, o.solidVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(o.solidVertices)*4, unsafe.Pointer(&o.solidVertices[0]), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(o.solidVertices)/7))
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)

	o.evict()
}

// glyphTexture returns the texture holding text, rendering it on first use.
func (o *overlay) glyphTexture(text string) *textTexture {
	o.used[text] = true
	if tex, ok := o.glyphs[text]; ok {
		return tex
	}
	img := rasterize(text, textScale)
	b := img.Bounds()
	tex := &textTexture{
		id:     uploadRGBA(b.Dx(), b.Dy(), img.Pix),
		width:  b.Dx(),
		height: b.Dy(),
	}
	o.glyphs[text] = tex
	return tex
}

// evict drops textures not drawn this frame; the countdown text changes
// every frame.
func (o *overlay) evict() {
	for text, tex := range o.glyphs {
		if !o.used[text] {
			gl.DeleteTextures(1, &tex.id)
			delete(o.glyphs, text)
		}
	}
	clear(o.used)
}

func (o *overlay) close() {
	for _, tex := range o.glyphs {
		gl.DeleteTextures(1, &tex.id)
	}
	gl.DeleteVertexArrays(1, &o.solidVAO)
	gl.DeleteBuffers(1, &o.solidVBO)
	gl.DeleteVertexArrays(1, &o.textVAO)
	gl.DeleteBuffers(1, &o.textVBO)
	o.solid.Delete()
	o.textShader.Delete()
}

// rasterize draws text in white with the fixed 7x13 face and scales it up
// by whole pixels.
func rasterize(text string, scale int) *image.RGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()
	if width == 0 {
		width = 1
	}

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	if scale <= 1 {
		return small
	}
	big := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)
	return big
}

// appendQuad adds two triangles covering the rectangle.
func appendQuad(dst []float32, x, y, w, h float32, c Color) []float32 {
	return append(dst,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}

// texturedQuad returns a quad in the text format: pos3 + uv2 + color4.
func texturedQuad(x, y, w, h float32, c Color) []float32 {
	return []float32{
		x, y, 0, 0, 0, c.R, c.G, c.B, c.A,
		x + w, y, 0, 1, 0, c.R, c.G, c.B, c.A,
		x + w, y + h, 0, 1, 1, c.R, c.G, c.B, c.A,
		x, y, 0, 0, 0, c.R, c.G, c.B, c.A,
		x + w, y + h, 0, 1, 1, c.R, c.G, c.B, c.A,
		x, y + h, 0, 0, 1, c.R, c.G, c.B, c.A,
	}
}

func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
