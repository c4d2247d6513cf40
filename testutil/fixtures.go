package testutil

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/kasuganosora/memorybox/model"
	"github.com/stretchr/testify/require"
)

// TinyImage is a 1x1 PNG data URI, usable wherever an item needs
// an image but its content does not matter.
const TinyImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAIAAACQd1PeAAAADElEQVR4nGP4z8AAAAMBAQDJ/pLvAAAAAElFTkSuQmCC"

// NewItem returns a fully populated item with the given id and name.
func NewItem(id, name string, cat model.Category) model.InventoryItem {
	return model.InventoryItem{
		ID:        id,
		Name:      name,
		Location:  "Kitchen",
		Category:  cat,
		Notes:     "",
		Image:     TinyImage,
		CreatedAt: 1000,
		Tags:      model.TagsFor(cat),
	}
}

// PNG encodes a w×h opaque image.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// PNGDataURI is PNG wrapped in a data URI.
func PNGDataURI(t *testing.T, w, h int) string {
	t.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(PNG(t, w, h))
}

// PNGHeader returns only the signature and IHDR chunk of a w×h grayscale
// PNG. image.DecodeConfig accepts it; a full decode fails.
func PNGHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := make([]byte, 0, 17)
	chunk = append(chunk, "IHDR"...)
	chunk = binary.BigEndian.AppendUint32(chunk, w)
	chunk = binary.BigEndian.AppendUint32(chunk, h)
	chunk = append(chunk, 8, 0, 0, 0, 0) // 8-bit gray, no interlace
	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}
