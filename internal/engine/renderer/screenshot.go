package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/logger"
)

// Screenshot reads back the current framebuffer and writes it as a PNG
// under dir. It returns the file name.
func (r *Renderer) Screenshot(dir string) (string, error) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("screenshot of empty framebuffer %dx%d", w, h)
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))

	name, err := savePNG(flipRows(pixels, w, h), dir, time.Now())
	if err != nil {
		return "", err
	}
	logger.Info("screenshot saved", zap.String("file", name))
	return name, nil
}

// flipRows copies bottom-up GL pixels into a top-down image.
func flipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img
}

func savePNG(img image.Image, dir string, now time.Time) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := filepath.Join(dir, fmt.Sprintf("basic3d_%s.png", now.Format("2006-01-02_15-04-05.000")))
	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, nil
}
