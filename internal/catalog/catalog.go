// Package catalog supplies the sample images offered in the carousel.
package catalog

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"CollageBoard/internal/state"
)

// Catalog looks up the selectable sample images.
type Catalog interface {
	SampleImages(ctx context.Context) ([]state.ImageRef, error)
}

// Static serves a fixed list of refs.
type Static []state.ImageRef

// DefaultSamples mirrors the bundled sample set.
var DefaultSamples = Static{"sample_1", "sample_2", "sample_3", "sample_4", "sample_5"}

func (s Static) SampleImages(ctx context.Context) ([]state.ImageRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]state.ImageRef(nil), s...), nil
}

// FromStrings builds a Static catalog from configured names.
func FromStrings(names []string) Static {
	out := make(Static, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, state.ImageRef(n))
		}
	}
	return out
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".bmp": true,
}

// Dir lists image files in a directory. Refs are file paths, sorted by name.
type Dir struct {
	Path string
}

func (d Dir) SampleImages(ctx context.Context) ([]state.ImageRef, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}
	var refs []state.ImageRef
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		refs = append(refs, state.ImageRef(filepath.Join(d.Path, e.Name())))
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs, nil
}

// Load runs the lookup and hands the outcome to the editor as an event.
func Load(ctx context.Context, c Catalog, d state.Dispatcher) {
	refs, err := c.SampleImages(ctx)
	if err != nil {
		log.Printf("[CATALOG] Failed to load sample images: %v", err)
		d.Dispatch(state.ErrorRaised{Message: fmt.Sprintf("Could not load sample images: %v", err)})
		return
	}
	log.Printf("[CATALOG] Loaded %d sample images", len(refs))
	d.Dispatch(state.SampleImagesLoaded{Images: refs})
}

// LoadAsync runs Load on its own goroutine. The returned channel closes when
// the result has been dispatched.
func LoadAsync(ctx context.Context, c Catalog, d state.Dispatcher) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Load(ctx, c, d)
	}()
	return done
}
