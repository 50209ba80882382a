package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cwbudde/algo-spectra/dsp/signal"
)

// Decoder decodes a complete stream into a mono signal.
type Decoder interface {
	Decode(r io.ReadSeeker) (signal.Signal, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.ReadSeeker) (signal.Signal, error)

// Decode calls f.
func (f DecoderFunc) Decode(r io.ReadSeeker) (signal.Signal, error) {
	return f(r)
}

// Registry maps format names ("wav", "mp3", "flac") to decoders.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// NewDefaultRegistry returns a registry with the WAV, MP3 and FLAC decoders.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", DecoderFunc(DecodeWAV))
	r.Register("wave", DecoderFunc(DecodeWAV))
	r.Register("mp3", DecoderFunc(DecodeMP3))
	r.Register("flac", DecoderFunc(DecodeFLAC))
	return r
}

// Register adds or replaces the decoder for format.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders[normalizeFormat(format)] = d
}

// Get returns the decoder for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.decoders[normalizeFormat(format)]
	return d, ok
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.decoders))
	for f := range r.decoders {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Decode decodes rs with the decoder registered for format.
func (r *Registry) Decode(rs io.ReadSeeker, format string) (signal.Signal, error) {
	d, ok := r.Get(format)
	if !ok {
		return signal.Signal{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	sig, err := d.Decode(rs)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("source: decode %s: %w", normalizeFormat(format), err)
	}

	return sig, nil
}

// Load opens path and decodes it with the decoder matching its extension.
func (r *Registry) Load(path string) (signal.Signal, error) {
	format := FormatFromPath(path)
	if _, ok := r.Get(format); !ok {
		return signal.Signal{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	sig, err := r.Decode(f, format)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w (%s)", err, path)
	}

	return sig, nil
}

// FormatFromPath returns the lower-case extension of path without the dot.
func FormatFromPath(path string) string {
	return normalizeFormat(filepath.Ext(path))
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

var defaultRegistry = NewDefaultRegistry()

// Load decodes the file at path with the default registry.
func Load(path string) (signal.Signal, error) {
	return defaultRegistry.Load(path)
}

// Decode decodes rs as format with the default registry.
func Decode(rs io.ReadSeeker, format string) (signal.Signal, error) {
	return defaultRegistry.Decode(rs, format)
}

// Formats lists the formats of the default registry.
func Formats() []string {
	return defaultRegistry.Formats()
}
