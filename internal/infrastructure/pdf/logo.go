package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cyclonet/factonet-api/internal/domain/document"
)

// LoadLogo lee el logo (PNG o JPG) y sus dimensiones. El llamador decide qué hacer con
// el error; los documentos se generan igual sin logo.
func LoadLogo(path string) (*document.Logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("logo: leer %s: %w", path, err)
	}
	return DecodeLogo(data)
}

// DecodeLogo valida la imagen y extrae sus dimensiones sin decodificar los píxeles.
func DecodeLogo(data []byte) (*document.Logo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("logo: formato no reconocido: %w", err)
	}
	ext := ""
	switch format {
	case "png":
		ext = "png"
	case "jpeg":
		ext = "jpg"
	default:
		return nil, fmt.Errorf("logo: formato %s no soportado", format)
	}
	logo := &document.Logo{Data: data, Extension: ext, Width: cfg.Width, Height: cfg.Height}
	if !logo.Usable() {
		return nil, fmt.Errorf("logo: dimensiones inválidas %dx%d", cfg.Width, cfg.Height)
	}
	return logo, nil
}
