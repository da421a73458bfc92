package outfit

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

var errNoPage = errors.New("outfit: material has no page")

// ImageFormat selects the encoding of exported atlas pages.
type ImageFormat uint8

const (
	FormatWebP ImageFormat = iota // lossless WebP
	FormatPNG
)

// ParseImageFormat parses "webp" or "png", ignoring case.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "webp", "":
		return FormatWebP, nil
	case "png":
		return FormatPNG, nil
	}
	return FormatWebP, fmt.Errorf("outfit: unknown image format %q", s)
}

// Ext returns the file extension including the dot.
func (f ImageFormat) Ext() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".webp"
}

// Encode writes the material's page to w in format f.
func (m *Material) Encode(w io.Writer, f ImageFormat) error {
	if f == FormatPNG {
		return m.WritePNG(w)
	}
	return m.WriteWebP(w)
}

// WritePNG encodes the material's page as PNG.
func (m *Material) WritePNG(w io.Writer) error {
	page := m.Page()
	if page == nil {
		return errNoPage
	}
	return png.Encode(w, page)
}

// WriteWebP encodes the material's page as lossless WebP.
func (m *Material) WriteWebP(w io.Writer) error {
	page := m.Page()
	if page == nil {
		return errNoPage
	}
	return nativewebp.Encode(w, page, nil)
}

// ExportAtlas writes the character's generated page to dir as
// <label>.webp (or .png) and its region table as <label>.json
// (TexturePacker hash format). The label is sanitized for use as a file
// name. It returns the page path.
func ExportAtlas(c *Character, dir, label string, format ImageFormat) (string, error) {
	mat := c.Material()
	skin := c.Optimizer().Skin()
	if mat == nil || skin == nil {
		return "", errors.New("outfit: export atlas: nothing packed")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("outfit: export atlas: mkdir %s: %w", dir, err)
	}
	safe := sanitizeLabel(label)
	pageName := safe + format.Ext()
	pagePath := filepath.Join(dir, pageName)
	if err := writeFile(pagePath, func(w io.Writer) error { return mat.Encode(w, format) }); err != nil {
		return "", err
	}

	regions := make(map[string]TextureRegion)
	for _, e := range skin.Entries() {
		if e.Attachment != nil && e.Attachment.Material == mat {
			regions[e.Attachment.Name] = e.Attachment.Region
		}
	}
	data, err := MarshalAtlas(regions, pageName, mat.Width(), mat.Height())
	if err != nil {
		return "", fmt.Errorf("outfit: export atlas: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, safe+".json"), data, 0o644); err != nil {
		return "", fmt.Errorf("outfit: export atlas: %w", err)
	}
	return pagePath, nil
}

// writeFile creates path and fills it with encode.
func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("outfit: create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("outfit: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
