package spritebatch

import (
	"bytes"
	"image"
	_ "image/png" // TexturePacker's default page format
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodePage decodes an atlas page image (PNG, WebP, BMP or TGA) into an ebiten
// image suitable for Mesh.
func DecodePage(data []byte) (*ebiten.Image, error) {
	img, err := decodePage(data)
	if err != nil {
		return nil, &BackingStoreLoadError{Err: err}
	}
	return img, nil
}

func decodePage(data []byte) (*ebiten.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadPageFile reads and decodes an atlas page image from disk.
func LoadPageFile(path string) (*ebiten.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &BackingStoreLoadError{Path: path, Err: err}
	}
	img, err := decodePage(data)
	if err != nil {
		return nil, &BackingStoreLoadError{Path: path, Err: err}
	}
	return img, nil
}
