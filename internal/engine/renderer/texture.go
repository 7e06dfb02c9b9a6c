package renderer

import (
	"path/filepath"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/assets"
	"github.com/Faultbox/basic3d/internal/engine/texture"
	"github.com/Faultbox/basic3d/internal/logger"
)

// Loader wraps an asset loader and uploads each texture it resolves so
// primitives can be drawn with their handle.
type Loader struct {
	assets.Loader

	root string
	r    *Renderer
}

// Loader returns a loader that reads texture files under root.
func (r *Renderer) Loader(inner assets.Loader, root string) *Loader {
	return &Loader{Loader: inner, root: root, r: r}
}

// LoadTexture implements assets.Loader. A file that cannot be decoded draws
// untextured; the handle is still valid for the scene.
func (l *Loader) LoadTexture(path string) (assets.Handle, error) {
	h, err := l.Loader.LoadTexture(path)
	if err != nil {
		return 0, err
	}
	if _, ok := l.r.textures[uint32(h)]; ok {
		return h, nil
	}

	img, err := texture.Load(filepath.Join(l.root, path))
	if err != nil {
		logger.Warn("texture not uploaded", zap.String("path", path), zap.Error(err))
		l.r.textures[uint32(h)] = l.r.white
		return h, nil
	}
	b := img.Bounds()
	l.r.textures[uint32(h)] = uploadRGBA(b.Dx(), b.Dy(), img.Pix)
	logger.Debug("texture uploaded",
		zap.String("path", path),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))
	return h, nil
}

// uploadRGBA creates a linear-filtered, repeating 2D texture.
func uploadRGBA(width, height int, pix []uint8) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
