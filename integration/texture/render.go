// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/blit/present"
)

// Rendering errors.
var (
	// ErrInvalidRenderer is returned when the drawer has no
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("texture: drawer must provide a gpucontext.TextureCreator")
)

// Present uploads the presenting slot behind h and draws it at (0, 0).
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
// The caller still owns the frame and must call MarkConsumed on the ring
// (or session) once the GPU frame has been submitted.
func (p *Presenter) Present(dc gpucontext.TextureDrawer, h present.Handle) error {
	return p.PresentAt(dc, h, 0, 0)
}

// PresentAt is like Present but draws the texture at (x, y).
func (p *Presenter) PresentAt(dc gpucontext.TextureDrawer, h present.Handle, x, y float32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPresenterClosed
	}
	if h.Index < 0 || h.Index >= len(p.slots) {
		_, err := p.ring.View(h)
		return err
	}

	tex, err := p.upload(dc.TextureCreator(), h)
	if err != nil {
		return err
	}
	if err := dc.DrawTexture(tex, x, y); err != nil {
		return err
	}
	p.stats.Drawn++
	return nil
}
