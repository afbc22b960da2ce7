// Package tga decodes true-color Truevision TGA images, the format stock
// Source engine textures are usually authored in.
package tga

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Errors returned by Decode.
var (
	ErrTruncated   = errors.New("tga: data truncated")
	ErrUnsupported = errors.New("tga: unsupported format")
)

const headerSize = 18

// Image types.
const (
	typeTrueColor    = 2
	typeTrueColorRLE = 10
)

// Header is the fixed TGA file header.
type Header struct {
	IDLength     uint8
	ColorMapType uint8
	ImageType    uint8
	Width        int
	Height       int
	BitsPerPixel int
	// TopToBottom is set when rows are stored from the top down.
	TopToBottom bool
}

func parseHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, ErrTruncated
	}
	h := Header{
		IDLength:     data[0],
		ColorMapType: data[1],
		ImageType:    data[2],
		Width:        int(data[12]) | int(data[13])<<8,
		Height:       int(data[14]) | int(data[15])<<8,
		BitsPerPixel: int(data[16]),
		TopToBottom:  data[17]&0x20 != 0,
	}

	switch {
	case h.ColorMapType != 0:
		return h, fmt.Errorf("%w: color-mapped image", ErrUnsupported)
	case h.ImageType != typeTrueColor && h.ImageType != typeTrueColorRLE:
		return h, fmt.Errorf("%w: image type %d", ErrUnsupported, h.ImageType)
	case h.BitsPerPixel != 24 && h.BitsPerPixel != 32:
		return h, fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, h.BitsPerPixel)
	}
	return h, nil
}

// DecodeConfig returns the image dimensions without decoding pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return image.Config{}, ErrTruncated
	}
	h, err := parseHeader(buf[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.Width, Height: h.Height}, nil
}

// Decode reads an uncompressed or RLE compressed 24/32-bit TGA image.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	offset := headerSize + int(h.IDLength)
	if offset > len(data) {
		return nil, ErrTruncated
	}
	d := &decoder{
		h:   h,
		src: data[offset:],
		bpp: h.BitsPerPixel / 8,
		img: image.NewNRGBA(image.Rect(0, 0, h.Width, h.Height)),
	}

	if h.ImageType == typeTrueColor {
		err = d.readRaw()
	} else {
		err = d.readRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type decoder struct {
	h   Header
	src []byte
	pos int
	bpp int
	img *image.NRGBA
	n   int // pixels written
}

// pixel reads one BGR(A) pixel.
func (d *decoder) pixel() (color.NRGBA, error) {
	if d.pos+d.bpp > len(d.src) {
		return color.NRGBA{}, ErrTruncated
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp

	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores the next pixel in file order.
func (d *decoder) put(c color.NRGBA) {
	x := d.n % d.h.Width
	y := d.n / d.h.Width
	if !d.h.TopToBottom {
		y = d.h.Height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
	d.n++
}

func (d *decoder) total() int { return d.h.Width * d.h.Height }

func (d *decoder) readRaw() error {
	for d.n < d.total() {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *decoder) readRLE() error {
	for d.n < d.total() {
		if d.pos >= len(d.src) {
			return ErrTruncated
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.n < d.total(); i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.n < d.total(); i++ {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
