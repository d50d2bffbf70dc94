// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/blit/pixel"
	"github.com/gogpu/blit/present"
)

// Common errors returned by Presenter operations.
var (
	// ErrPresenterClosed is returned when operations are attempted on a closed presenter.
	ErrPresenterClosed = errors.New("texture: presenter is closed")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("texture: nil DeviceProvider")

	// ErrNilRing is returned when a nil ring is passed.
	ErrNilRing = errors.New("texture: nil ring")

	// ErrTextureCreationFailed is returned when texture creation fails.
	ErrTextureCreationFailed = errors.New("texture: texture creation failed")
)

// textureDestroyer matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// slotTexture is the GPU side of one ring slot.
type slotTexture struct {
	tex     gpucontext.Texture
	width   int
	height  int
	retired []gpucontext.Texture // replaced textures, destroyed on the slot's next release
}

// Presenter uploads presenting ring slots into GPU textures and draws them.
type Presenter struct {
	mu       sync.Mutex
	provider gpucontext.DeviceProvider
	ring     *present.Ring
	format   pixel.Format
	slots    []slotTexture
	staging  []byte
	stats    Stats
	closed   bool
	log      *slog.Logger
}

// Stats counts texture traffic since New.
type Stats struct {
	Created   uint64
	Updated   uint64
	Destroyed uint64
	Drawn     uint64
}

// Option configures a Presenter.
type Option func(*options)

type options struct {
	format    pixel.Format
	formatSet bool
	log       *slog.Logger
}

// WithLogger sets the logger for texture lifecycle messages.
// A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithFormat overrides the byte layout derived from the provider's
// surface format.
func WithFormat(f pixel.Format) Option {
	return func(o *options) {
		if f.IsValid() {
			o.format, o.formatSet = f, true
		}
	}
}

// New creates a Presenter for ring and registers its release hook.
// The provider should come from gogpu.App.GPUContextProvider().
//
// The pixel byte order follows provider.SurfaceFormat(). Surfaces other
// than BGRA8Unorm and RGBA8Unorm fall back to RGBA8 with a warning.
func New(provider gpucontext.DeviceProvider, ring *present.Ring, opts ...Option) (*Presenter, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if ring == nil {
		return nil, ErrNilRing
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log
	if log == nil {
		log = slog.New(nopHandler{})
	}

	format := o.format
	if !o.formatSet {
		f, ok := pixel.FormatForTexture(provider.SurfaceFormat())
		if !ok {
			log.Warn("texture: unsupported surface format, using RGBA8",
				"surface", provider.SurfaceFormat())
		}
		format = f
	}

	p := &Presenter{
		provider: provider,
		ring:     ring,
		format:   format,
		slots:    make([]slotTexture, ring.Len()),
		log:      log,
	}
	ring.OnRelease(p.release)
	return p, nil
}

// Format returns the byte layout textures are uploaded in.
func (p *Presenter) Format() pixel.Format {
	return p.format
}

// Provider returns the DeviceProvider associated with this presenter.
// Returns nil if the presenter is closed.
func (p *Presenter) Provider() gpucontext.DeviceProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	return p.provider
}

// Stats returns a snapshot of the texture counters.
func (p *Presenter) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Texture returns the live texture of ring slot i, or nil.
func (p *Presenter) Texture(i int) gpucontext.Texture {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.slots) {
		return nil
	}
	return p.slots[i].tex
}

// upload writes the slot behind h into its texture, creating or replacing
// the texture as needed. Caller must hold p.mu.
func (p *Presenter) upload(creator gpucontext.TextureCreator, h present.Handle) (gpucontext.Texture, error) {
	view, err := p.ring.View(h)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	st := &p.slots[h.Index]
	p.staging = view.AppendBytes(p.staging[:0], p.format)

	if st.tex != nil && (st.width != view.Width || st.height != view.Height) {
		p.log.Debug("texture: slot resized, retiring texture",
			"slot", h.Index, "width", view.Width, "height", view.Height)
		st.retired = append(st.retired, st.tex)
		st.tex = nil
	}

	if st.tex != nil {
		if u, ok := st.tex.(gpucontext.TextureUpdater); ok {
			if err := u.UpdateData(p.staging); err != nil {
				return nil, fmt.Errorf("texture: update failed: %w", err)
			}
			p.stats.Updated++
			return st.tex, nil
		}
		// Not updatable: replace it like a resize.
		st.retired = append(st.retired, st.tex)
		st.tex = nil
	}

	if creator == nil {
		return nil, ErrInvalidRenderer
	}
	tex, err := creator.NewTextureFromRGBA(view.Width, view.Height, p.staging)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
	}
	if tex == nil {
		return nil, ErrTextureCreationFailed
	}
	st.tex, st.width, st.height = tex, view.Width, view.Height
	p.stats.Created++
	return tex, nil
}

// release is the ring's release hook. It destroys the textures retired
// from the released slot, and the live texture too once the ring is
// closing.
func (p *Presenter) release(h present.Handle) {
	p.mu.Lock()
	if p.closed || h.Index < 0 || h.Index >= len(p.slots) {
		p.mu.Unlock()
		return
	}
	st := &p.slots[h.Index]
	doomed := st.retired
	st.retired = nil
	if p.ring.Closing() && st.tex != nil {
		doomed = append(doomed, st.tex)
		st.tex = nil
	}
	p.mu.Unlock()

	p.destroy(doomed)
}

func (p *Presenter) destroy(textures []gpucontext.Texture) {
	n := 0
	for _, tex := range textures {
		d, ok := tex.(textureDestroyer)
		if !ok {
			p.log.Warn("texture: texture has no Destroy method", "type", fmt.Sprintf("%T", tex))
			continue
		}
		d.Destroy()
		n++
	}
	if n > 0 {
		p.mu.Lock()
		p.stats.Destroyed += uint64(n)
		p.mu.Unlock()
	}
}

// Close destroys every texture the presenter still owns, including
// retired ones. Close is idempotent.
func (p *Presenter) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	var doomed []gpucontext.Texture
	for i := range p.slots {
		doomed = append(doomed, p.slots[i].retired...)
		if p.slots[i].tex != nil {
			doomed = append(doomed, p.slots[i].tex)
		}
		p.slots[i] = slotTexture{}
	}
	p.staging = nil
	p.closed = true
	p.provider = nil
	p.mu.Unlock()

	p.destroy(doomed)
	return nil
}
