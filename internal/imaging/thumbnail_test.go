package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader monta só a assinatura e o IHDR de um PNG RGBA de w x h.
func pngHeader(w, h uint32) []byte {
	chunk := make([]byte, 4+13)
	copy(chunk, "IHDR")
	binary.BigEndian.PutUint32(chunk[4:], w)
	binary.BigEndian.PutUint32(chunk[8:], h)
	chunk[12] = 8 // bits por canal
	chunk[13] = 6 // RGBA

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	buf.Write(binary.BigEndian.AppendUint32(nil, 13))
	buf.Write(chunk)
	buf.Write(binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE(chunk)))
	return buf.Bytes()
}

func TestThumbnail_Downscales(t *testing.T) {
	out, err := Thumbnail(pngBytes(t, 800, 400), 200)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 200, cfg.Width)
	require.Equal(t, 100, cfg.Height)
}

func TestThumbnail_NotImage(t *testing.T) {
	_, err := Thumbnail([]byte("plain text"), 0)
	require.ErrorIs(t, err, ErrNotImage)
}

func TestThumbnail_TooLarge(t *testing.T) {
	data := pngHeader(30000, 30000)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 30000, cfg.Width)

	_, err = Thumbnail(data, 0)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestFit(t *testing.T) {
	w, h := fit(100, 50, 320)
	require.Equal(t, []int{100, 50}, []int{w, h})

	w, h = fit(300, 1200, 320)
	require.Equal(t, []int{80, 320}, []int{w, h})
}
