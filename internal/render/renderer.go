// Package render turns an invoice and its branding options into a visual
// surface. The export pipeline depends only on the Renderer capability,
// not on how the surface is produced.
package render

import (
	"image"

	"github.com/rezonia/invoice-studio/internal/model"
)

// Renderer converts an invoice document and branding pair into an opaque
// visual surface. Rendering never mutates its inputs.
type Renderer interface {
	Render(inv *model.InvoiceData, branding *model.BrandingOptions) (Surface, error)
}

// Surface is a rendered invoice that can be rasterized on demand.
type Surface interface {
	// Rasterize renders the surface to a raster image. The oversample
	// factor scales the nominal 72 DPI resolution; exports use 2x for
	// quality.
	Rasterize(oversample float64) (image.Image, error)

	// Bytes returns the underlying vector representation of the surface.
	Bytes() []byte
}
