package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebPResizes(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 400, 200)), 100)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), 100)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	fake := &fakeS3{}
	s := newStorage(fake, Config{Bucket: "salon", Region: "ap-southeast-1"})

	url, err := s.Upload(context.Background(), "/services/7/", bytes.NewReader(pngOf(t, 20, 20)))
	require.NoError(t, err)

	assert.Equal(t, "salon", *fake.in.Bucket)
	assert.True(t, strings.HasPrefix(*fake.in.Key, "services/7/"))
	assert.True(t, strings.HasSuffix(*fake.in.Key, ".webp"))
	assert.Equal(t, "image/webp", *fake.in.ContentType)
	assert.NotEmpty(t, fake.body)
	assert.Equal(t, "https://salon.s3.ap-southeast-1.amazonaws.com/"+*fake.in.Key, url)
}

func TestPublicURLVariants(t *testing.T) {
	s := newStorage(&fakeS3{}, Config{Bucket: "b", Endpoint: "http://minio:9000/"})
	assert.Equal(t, "http://minio:9000/b", s.publicURL)

	s = newStorage(&fakeS3{}, Config{Bucket: "b", PublicURL: "https://cdn.salon.vn/"})
	assert.Equal(t, "https://cdn.salon.vn", s.publicURL)
}
