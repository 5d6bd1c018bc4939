package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"
)

// LoadError is the soft failure of a single asset. The capture never
// aborts on it; the renderer substitutes its gradient fallback instead.
type LoadError struct {
	Ref string
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("asset %s: %v", e.Ref, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Library fetches and caches the images a plan references: segment
// backgrounds over HTTP, local files, and generated QR codes for
// "qr:"-prefixed refs.
type Library struct {
	client  *http.Client
	timeout time.Duration

	mu     sync.RWMutex
	images map[string]image.Image
}

// NewLibrary creates a library with a per-asset load timeout.
func NewLibrary(timeout time.Duration) *Library {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Library{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		images:  make(map[string]image.Image),
	}
}

// Prefetch resolves all refs in parallel before the frame loop starts,
// so the render path never blocks on the network. Failures come back as
// LoadErrors; the affected refs simply stay unresolved.
func (l *Library) Prefetch(ctx context.Context, refs []string) []error {
	seen := make(map[string]bool)
	var unique []string
	for _, ref := range refs {
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		unique = append(unique, ref)
	}

	var mu sync.Mutex
	var soft []error
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, ref := range unique {
		g.Go(func() error {
			img, err := l.fetch(ctx, ref)
			if err != nil {
				mu.Lock()
				soft = append(soft, &LoadError{Ref: ref, Err: err})
				mu.Unlock()
				return nil
			}
			l.mu.Lock()
			l.images[ref] = img
			l.mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return soft
}

// Image returns the resolved image for ref, or nil when the asset
// failed to load or was never prefetched.
func (l *Library) Image(ref string) image.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.images[ref]
}

func (l *Library) fetch(ctx context.Context, ref string) (image.Image, error) {
	switch {
	case strings.HasPrefix(ref, "qr:"):
		return qrImage(strings.TrimPrefix(ref, "qr:"))
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return l.fetchHTTP(ctx, ref)
	default:
		return fetchFile(ref)
	}
}

func (l *Library) fetchHTTP(ctx context.Context, url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func fetchFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// qrImage renders a QR code of the payload, used for the
// scan-to-watch element in the conclusion segment.
func qrImage(payload string) (image.Image, error) {
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return qr.Image(512), nil
}
