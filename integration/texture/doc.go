// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture presents frames from a present.Ring through GPU textures.
//
// The data flow is:
//
//	blit.Session (submit) -> present.Ring slot -> GPU texture -> window
//
// A Presenter keeps one texture per ring slot. Each Present call converts
// the slot's 0x00RRGGBB pixels into the byte order of the provider's
// surface format (BGRA8 or RGBA8), uploads them and draws the texture.
//
// # Usage
//
//	p, err := texture.New(app.GPUContextProvider(), session.Ring())
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    if err := p.Present(dc.AsTextureDrawer(), h); err != nil {
//	        log.Println(err)
//	    }
//	    session.MarkConsumed(h)
//	})
//
// # Texture Lifetime
//
// When a slot is reused at a new size its old texture may still be
// referenced by command buffers the GPU has not finished. The old texture
// is retired and destroyed only from the ring's release hook, after the
// slot's pending-release countdown. Textures still live at ring teardown
// are destroyed from the same hook.
//
// # Thread Safety
//
// Presenter is safe for concurrent use; release hooks may arrive from the
// goroutine that calls FrameComplete while another goroutine presents.
package texture
