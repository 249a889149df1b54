package render

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// rgb is a parsed display color.
type rgb struct {
	r, g, b int
}

// parseHexColor parses #rgb and #rrggbb colors. Unparseable values fall
// back to black so a bad branding color degrades instead of failing the
// render.
func parseHexColor(s string) rgb {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	var c rgb
	switch len(s) {
	case 3:
		_, err := fmt.Sscanf(s, "%1x%1x%1x", &c.r, &c.g, &c.b)
		if err != nil {
			return rgb{}
		}
		c.r *= 17
		c.g *= 17
		c.b *= 17
	case 6:
		_, err := fmt.Sscanf(s, "%02x%02x%02x", &c.r, &c.g, &c.b)
		if err != nil {
			return rgb{}
		}
	default:
		return rgb{}
	}
	return c
}

// coreFontFor maps a CSS-style font family to one of the built-in PDF
// core fonts.
func coreFontFor(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono") || strings.Contains(f, "courier"):
		return "Courier"
	case strings.Contains(f, "times") || strings.Contains(f, "georgia") || strings.Contains(f, "serif") && !strings.Contains(f, "sans-serif"):
		return "Times"
	default:
		return "Helvetica"
	}
}

// decodeLogo splits an embedded data URL payload into raw image bytes
// and the image type name the PDF writer expects.
func decodeLogo(dataURL string) ([]byte, string, error) {
	const marker = ";base64,"
	idx := strings.Index(dataURL, marker)
	if !strings.HasPrefix(dataURL, "data:image/") || idx < 0 {
		return nil, "", fmt.Errorf("logo is not an embedded image payload")
	}

	mime := dataURL[len("data:"):idx]
	var imgType string
	switch mime {
	case "image/png":
		imgType = "PNG"
	case "image/jpeg", "image/jpg":
		imgType = "JPG"
	case "image/gif":
		imgType = "GIF"
	default:
		return nil, "", fmt.Errorf("unsupported logo type %s", mime)
	}

	data, err := base64.StdEncoding.DecodeString(dataURL[idx+len(marker):])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode logo payload: %w", err)
	}
	return data, imgType, nil
}
