// Package assets converts source artwork into the WebP files served under
// /assets.
package assets

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// Config controls a conversion run
type Config struct {
	InputDir  string
	OutputDir string
	MaxEdge   int // Longest edge in pixels after scaling, 0 keeps the size
}

// Result is the outcome for one source file
type Result struct {
	Source  string `json:"source"`
	Output  string `json:"output,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TGA has no magic number, so decoders are picked by extension
var decoders = map[string]func(io.Reader) (image.Image, error){
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".png":  png.Decode,
	".tga":  tga.Decode,
}

// Optimize converts every image under cfg.InputDir, keeping the directory
// layout. A file that fails is reported in its Result and does not stop the
// run.
func Optimize(cfg Config, log *zap.Logger) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxEdge < 0 {
		return nil, fmt.Errorf("assets: negative max edge %d", cfg.MaxEdge)
	}

	var results []Result
	err := filepath.WalkDir(cfg.InputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || decoders[strings.ToLower(filepath.Ext(path))] == nil {
			return nil
		}

		rel, err := filepath.Rel(cfg.InputDir, path)
		if err != nil {
			return err
		}
		out := filepath.Join(cfg.OutputDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".webp")

		res := convert(path, out, cfg.MaxEdge)
		if res.Success {
			log.Debug("asset converted", zap.String("source", rel), zap.Int("width", res.Width), zap.Int("height", res.Height))
		} else {
			log.Warn("asset failed", zap.String("source", rel), zap.String("error", res.Error))
		}
		results = append(results, res)
		return nil
	})
	if err != nil {
		return results, fmt.Errorf("assets: walk %s: %w", cfg.InputDir, err)
	}
	return results, nil
}

func convert(src, dst string, maxEdge int) Result {
	res := Result{Source: src}

	img, err := decode(src)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	img = Fit(img, maxEdge)
	b := img.Bounds()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		res.Error = err.Error()
		return res
	}
	f, err := os.Create(dst)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Output = dst
	res.Width = b.Dx()
	res.Height = b.Dy()
	res.Success = true
	return res
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decoders[strings.ToLower(filepath.Ext(path))](f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Fit scales img down so its longest edge is at most maxEdge, keeping the
// aspect ratio. Smaller images and maxEdge <= 0 return img as is.
func Fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return img
	}

	nw, nh := maxEdge, maxEdge
	if w >= h {
		nh = max(1, h*maxEdge/w)
	} else {
		nw = max(1, w*maxEdge/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
