package ppm

import (
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("ppm", "P3", decodeImage, decodeConfig)
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decodeConfig(r io.Reader) (image.Config, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}
