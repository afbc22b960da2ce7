package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"net/http"
	"regexp"
	"time"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrFetchStatus is returned for non-2xx asset responses.
var ErrFetchStatus = errors.New("unexpected HTTP status")

// DefaultAssetURL is the Roblox asset delivery endpoint; %d is the asset id.
const DefaultAssetURL = "https://assetdelivery.roblox.com/v1/asset/?id=%d"

// maxAssetSize bounds a single download.
const maxAssetSize = 32 << 20

// contentURL finds the image URL inside a decal asset document.
var contentURL = regexp.MustCompile(`<url>\s*([^<\s]+)\s*</url>`)

// HTTPFetcher downloads assets over HTTP.
type HTTPFetcher struct {
	Client *http.Client
	// URLTemplate is formatted with the asset id.
	URLTemplate string
}

// NewHTTPFetcher returns a fetcher with the given per-request timeout.
func NewHTTPFetcher(urlTemplate string, timeout time.Duration) *HTTPFetcher {
	if urlTemplate == "" {
		urlTemplate = DefaultAssetURL
	}
	return &HTTPFetcher{
		Client:      &http.Client{Timeout: timeout},
		URLTemplate: urlTemplate,
	}
}

// Fetch downloads asset id and resizes it to width x height. Decal assets
// that resolve to an XML document are followed to their image once.
func (f *HTTPFetcher) Fetch(ctx context.Context, id, width, height uint64) (image.Image, error) {
	data, err := f.get(ctx, fmt.Sprintf(f.URLTemplate, id))
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		m := contentURL.FindSubmatch(data)
		if m == nil {
			return nil, fmt.Errorf("decoding asset %d: %w", id, err)
		}
		if data, err = f.get(ctx, string(m[1])); err != nil {
			return nil, err
		}
		if img, _, err = image.Decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("decoding asset %d: %w", id, err)
		}
	}

	return resize(img, int(width), int(height)), nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s from %s", ErrFetchStatus, resp.Status, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
}

// resize scales img to exactly width x height. Non-positive dimensions
// keep the source size.
func resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if width <= 0 || height <= 0 || (b.Dx() == width && b.Dy() == height) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
