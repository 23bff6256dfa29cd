package scaler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"runtime"

	// The following are all image formats supported for converting
	// to other image sizes.
	_ "image/gif"
	_ "image/png"

	// Additional image formats from the x repository. Wikimedia serves
	// some thumbnails as webp.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ErrCancelled is returned when one is trying to interact with an stopped
// scaler.
var ErrCancelled = errors.New("scale operation on cancelled Scaler")

// ErrTooLarge is returned for images with more pixels than MaxPixels. They
// are refused before being decoded.
var ErrTooLarge = errors.New("image is too large for scaling")

// MaxPixels is the largest width*height which will be decoded.
const MaxPixels = 40_000_000

const jpegQuality = 85

// description is a scaling instruction.
type description struct {

	// ToWidth tells instructs the scaling to produce an image
	// with this width.
	ToWidth int

	// ImgData is the encoded image which will be scaled.
	ImgData []byte

	// Result is the channel on which the result image is
	// returned. It must have room for one result.
	Result chan Result
}

// Result is a type which encapsulates a result from an image
// conversion.
type Result struct {
	ImgData []byte
	Err     error
}

// Scaler is a utility type which could be used for scaling
// cover images. A fixed number of workers do the scaling so that
// concurrent requests cannot use more than the available CPUs.
type Scaler struct {
	ctx           context.Context
	cancelContext context.CancelFunc
	group         *errgroup.Group

	work chan description
}

// New returns a new scaler, ready for use. It stops when ctx is done or
// Cancel is called.
func New(ctx context.Context) *Scaler {
	return NewWithWorkers(ctx, runtime.NumCPU())
}

// NewWithWorkers returns a scaler which uses at most `workers` goroutines.
func NewWithWorkers(ctx context.Context, workers int) *Scaler {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	gctx, cancel := context.WithCancel(gctx)

	s := &Scaler{
		ctx:           gctx,
		cancelContext: cancel,
		group:         g,
		work:          make(chan description),
	}

	for i := 0; i < workers; i++ {
		g.Go(s.worker)
	}

	return s
}

// Scale converts the image (img) to have width toWidth in pixels while
// preserving its aspect ratio. The result is always a JPEG. Images which are
// already narrower than toWidth are not enlarged, only re-encoded.
func (s *Scaler) Scale(
	ctx context.Context,
	img io.Reader,
	toWidth int,
) ([]byte, error) {
	if s.ctx.Err() != nil {
		return nil, ErrCancelled
	}

	if toWidth < 1 {
		return nil, fmt.Errorf("invalid target width %d", toWidth)
	}

	imgData, err := io.ReadAll(img)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	desc := description{
		ImgData: imgData,
		ToWidth: toWidth,
		Result:  make(chan Result, 1),
	}

	select {
	case s.work <- desc:
	case <-s.ctx.Done():
		return nil, ErrCancelled
	case <-ctx.Done():
		return nil, fmt.Errorf("ctx done while waiting to send scale op: %w", ctx.Err())
	}

	select {
	case res := <-desc.Result:
		return res.ImgData, res.Err
	case <-ctx.Done():
		return nil, fmt.Errorf("ctx done while waiting for scale op: %w", ctx.Err())
	}
}

func (s *Scaler) worker() error {
	for {
		select {
		case <-s.ctx.Done():
			return nil
		case desc := <-s.work:
			imgData, err := scaleImage(desc.ImgData, desc.ToWidth)
			desc.Result <- Result{
				ImgData: imgData,
				Err:     err,
			}
		}
	}
}

func scaleImage(imgData []byte, toWidth int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("error decoding image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, ErrTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	imgRect := img.Bounds()
	imgw := imgRect.Dx()
	imgh := imgRect.Dy()

	if toWidth > imgw {
		toWidth = imgw
	}

	toHeight := toWidth
	if imgw != imgh {
		toHeight = int((float32(imgh) / float32(imgw)) * float32(toWidth))
	}
	if toHeight < 1 {
		toHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, toWidth, toHeight))

	draw.CatmullRom.Scale(
		dst,
		dst.Bounds(),
		img,
		imgRect,
		draw.Over,
		nil,
	)

	var dstJPEG bytes.Buffer
	if err := jpeg.Encode(&dstJPEG, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	return dstJPEG.Bytes(), nil
}

// Cancel stops the scaler and of its operations. Users may not use
// any further methods on cancelled scalers.
func (s *Scaler) Cancel() {
	s.cancelContext()
}

// Wait blocks until all workers of a cancelled scaler have stopped.
func (s *Scaler) Wait() error {
	return s.group.Wait()
}
