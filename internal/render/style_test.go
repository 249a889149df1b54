package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected rgb
	}{
		{"six digit", "#4ade80", rgb{0x4a, 0xde, 0x80}},
		{"six digit dark", "#16a34a", rgb{0x16, 0xa3, 0x4a}},
		{"three digit", "#fff", rgb{255, 255, 255}},
		{"no hash", "336699", rgb{0x33, 0x66, 0x99}},
		{"whitespace", "  #000000 ", rgb{0, 0, 0}},
		{"empty falls back to black", "", rgb{}},
		{"garbage falls back to black", "#zzzzzz", rgb{}},
		{"wrong length falls back to black", "#12345", rgb{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseHexColor(tt.input))
		})
	}
}

func TestCoreFontFor(t *testing.T) {
	assert.Equal(t, "Helvetica", coreFontFor("Inter, sans-serif"))
	assert.Equal(t, "Helvetica", coreFontFor("Arial"))
	assert.Equal(t, "Helvetica", coreFontFor(""))
	assert.Equal(t, "Courier", coreFontFor("JetBrains Mono, monospace"))
	assert.Equal(t, "Times", coreFontFor("Times New Roman"))
	assert.Equal(t, "Times", coreFontFor("Georgia, serif"))
}

func logoDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeLogo(t *testing.T) {
	data, imgType, err := decodeLogo(logoDataURL(t))
	require.NoError(t, err)
	assert.Equal(t, "PNG", imgType)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestDecodeLogo_JPEGType(t *testing.T) {
	_, imgType, err := decodeLogo("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "JPG", imgType)
}

func TestDecodeLogo_Rejections(t *testing.T) {
	cases := map[string]string{
		"not a data url":  "https://example.com/logo.png",
		"no base64":       "data:image/png,raw",
		"wrong mime":      "data:image/svg+xml;base64,AAAA",
		"broken payload":  "data:image/png;base64,$$$not-base64$$$",
		"not image class": "data:text/plain;base64,AAAA",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := decodeLogo(input)
			require.Error(t, err)
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"one"}, splitLines("one"))
	assert.Equal(t, []string{"a", "b", "c"}, splitLines("a\nb\nc"))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n"))
}
