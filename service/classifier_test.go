package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"

	"gesturecontrol/models"
)

type stubClassifier struct {
	labels []models.Label
	err    error
	calls  atomic.Int32
	seen   image.Image
}

func (s *stubClassifier) Classify(ctx context.Context, img image.Image) ([]models.Label, error) {
	s.calls.Add(1)
	s.seen = img
	return s.labels, s.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func pngDataURL(t *testing.T, w, h int) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, w, h))
}

var gestureLabels = []models.Label{
	{Label: "thumbs_up", Score: 0.91},
	{Label: "open_palm", Score: 0.06},
	{Label: "fist", Score: 0.03},
}

func TestClassifyDataURL_OnePixelPNG(t *testing.T) {
	stub := &stubClassifier{labels: gestureLabels}
	s, err := NewClassificationService(stub, 0)
	if err != nil {
		t.Fatal(err)
	}

	labels, err := s.ClassifyDataURL(context.Background(), pngDataURL(t, 1, 1))
	if err != nil {
		t.Fatalf("ClassifyDataURL failed: %v", err)
	}
	if len(labels) != len(gestureLabels) {
		t.Fatalf("Expected %d labels, got %d", len(gestureLabels), len(labels))
	}
	for i := range labels {
		if labels[i] != gestureLabels[i] {
			t.Errorf("Label %d: expected %+v, got %+v", i, gestureLabels[i], labels[i])
		}
	}
	if b := stub.seen.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("Expected 1x1 image, got %v", b)
	}
}

func TestClassifyDataURL_HeaderIgnored(t *testing.T) {
	stub := &stubClassifier{labels: gestureLabels}
	s, _ := NewClassificationService(stub, 0)

	// the header is not inspected, only the payload after the first comma
	url := "whatever," + base64.StdEncoding.EncodeToString(pngBytes(t, 2, 2))
	if _, err := s.ClassifyDataURL(context.Background(), url); err != nil {
		t.Fatalf("Expected header to be ignored, got %v", err)
	}
}

func TestClassifyDataURL_Malformed(t *testing.T) {
	stub := &stubClassifier{labels: gestureLabels}
	s, _ := NewClassificationService(stub, 0)

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"no comma", base64.StdEncoding.EncodeToString(pngBytes(t, 1, 1)), ErrMalformedDataURL},
		{"bad base64", "data:image/png;base64,!!!not-base64!!!", ErrMalformedDataURL},
		{"not an image", "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello world")), ErrUndecodableImage},
		{"empty payload", "data:image/png;base64,", ErrUndecodableImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, err := s.ClassifyDataURL(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			if labels != nil {
				t.Errorf("Expected no labels, got %v", labels)
			}
		})
	}

	if n := stub.calls.Load(); n != 0 {
		t.Errorf("Expected classifier not to run, ran %d times", n)
	}
}

func TestClassifyDataURL_UnpaddedBase64(t *testing.T) {
	stub := &stubClassifier{labels: gestureLabels}
	s, _ := NewClassificationService(stub, 0)

	url := "data:image/png;base64," + base64.RawStdEncoding.EncodeToString(pngBytes(t, 3, 1))
	if _, err := s.ClassifyDataURL(context.Background(), url); err != nil {
		t.Fatalf("Expected unpadded payload to decode, got %v", err)
	}
}

func TestClassifyDataURL_ClassifierError(t *testing.T) {
	stub := &stubClassifier{err: ErrClassifierUnavailable}
	s, _ := NewClassificationService(stub, 4)

	_, err := s.ClassifyDataURL(context.Background(), pngDataURL(t, 1, 1))
	if !errors.Is(err, ErrClassifierUnavailable) {
		t.Fatalf("Expected ErrClassifierUnavailable, got %v", err)
	}

	// failures are not cached
	s.ClassifyDataURL(context.Background(), pngDataURL(t, 1, 1))
	if n := stub.calls.Load(); n != 2 {
		t.Errorf("Expected 2 classifier calls, got %d", n)
	}
}

func TestClassifyDataURL_Cache(t *testing.T) {
	stub := &stubClassifier{labels: append([]models.Label(nil), gestureLabels...)}
	s, _ := NewClassificationService(stub, 4)
	url := pngDataURL(t, 1, 1)

	first, err := s.ClassifyDataURL(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	first[0].Label = "mutated"

	second, err := s.ClassifyDataURL(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	if n := stub.calls.Load(); n != 1 {
		t.Errorf("Expected cached result, classifier ran %d times", n)
	}
	if second[0].Label != "thumbs_up" {
		t.Errorf("Expected cache to be isolated from callers, got %q", second[0].Label)
	}

	s.ClassifyDataURL(context.Background(), pngDataURL(t, 2, 2))
	if n := stub.calls.Load(); n != 2 {
		t.Errorf("Expected a different image to miss the cache, got %d calls", n)
	}
}

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		w, h, size int
		wantW      int
		wantH      int
	}{
		{1, 1, 224, 1, 1},
		{640, 480, 224, 224, 168},
		{480, 640, 224, 168, 224},
		{1000, 1, 100, 100, 1},
		{300, 300, 0, 300, 300},
	}

	for _, tt := range tests {
		img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
		b := scaleToFit(img, tt.size).Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("%dx%d into %d: expected %dx%d, got %dx%d", tt.w, tt.h, tt.size, tt.wantW, tt.wantH, b.Dx(), b.Dy())
		}
	}
}
