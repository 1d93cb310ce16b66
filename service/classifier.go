package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"gesturecontrol/models"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrMalformedDataURL      = errors.New("malformed data URL")
	ErrUndecodableImage      = errors.New("payload is not a decodable image")
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// Classifier runs one image through a pretrained model and returns its label distribution
// in the order the model produced it. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, img image.Image) ([]models.Label, error)
}

// ClassificationService decodes data-URL images and classifies them, caching results
// by payload digest so repeated frames skip the model.
type ClassificationService struct {
	classifier Classifier
	cache      *lru.Cache[[sha256.Size]byte, []models.Label]
}

// NewClassificationService wraps c. cacheSize 0 disables the result cache.
func NewClassificationService(c Classifier, cacheSize int) (*ClassificationService, error) {
	s := &ClassificationService{classifier: c}
	if cacheSize > 0 {
		cache, err := lru.New[[sha256.Size]byte, []models.Label](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create classification cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// ClassifyDataURL decodes a "data:<mime>;base64,<payload>" string and classifies the image
func (s *ClassificationService) ClassifyDataURL(ctx context.Context, dataURL string) ([]models.Label, error) {
	raw, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	key := sha256.Sum256(raw)
	if s.cache != nil {
		if labels, ok := s.cache.Get(key); ok {
			return append([]models.Label(nil), labels...), nil
		}
	}

	img, err := DecodeImage(raw)
	if err != nil {
		return nil, err
	}

	labels, err := s.classifier.Classify(ctx, img)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Add(key, append([]models.Label(nil), labels...))
	}
	return labels, nil
}

// DecodeDataURL splits on the first comma and base64-decodes what follows.
// The header before the comma is not inspected.
func DecodeDataURL(dataURL string) ([]byte, error) {
	_, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, fmt.Errorf("%w: missing comma separator", ErrMalformedDataURL)
	}
	payload = strings.TrimSpace(payload)

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// tolerate clients that strip the padding
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64 payload: %v", ErrMalformedDataURL, err)
		}
	}
	return raw, nil
}

// DecodeImage parses PNG, JPEG, GIF, WebP or BMP bytes
func DecodeImage(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	return img, nil
}

// scaleToFit shrinks img so that neither side exceeds size, keeping the aspect ratio.
// Images already small enough, and size <= 0, are returned unchanged.
func scaleToFit(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}

	nw, nh := size, size
	if w > h {
		nh = max(1, h*size/w)
	} else {
		nw = max(1, w*size/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
