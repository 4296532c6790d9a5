package media

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibiartisan/internal/config"
)

func TestCloudinaryResolver(t *testing.T) {
	r := NewCloudinaryResolver("bibi")
	ctx := context.Background()

	url, err := r.Resolve(ctx, "gallery/bridal", KindImage)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/bibi/image/upload/gallery/bridal", url)

	url, err = r.Resolve(ctx, "testimonials/ada.mp4", KindVideo)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/bibi/video/upload/testimonials/ada.mp4", url)

	url, err = r.Resolve(ctx, "", KindImage)
	require.NoError(t, err)
	assert.Empty(t, url)

	url, err = r.Resolve(ctx, "https://cdn.example.com/x.jpg", KindImage)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.jpg", url)
}

func TestCloudinaryResolverWithoutCloudName(t *testing.T) {
	_, err := NewCloudinaryResolver("").Resolve(context.Background(), "gallery/bridal", KindImage)
	assert.Error(t, err)
}

func TestS3Resolver(t *testing.T) {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	})
	r := NewS3Resolver(client, "bibi-media", 15*time.Minute)

	url, err := r.Resolve(context.Background(), "about/a.jpg", KindImage)
	require.NoError(t, err)
	assert.Contains(t, url, "bibi-media")
	assert.Contains(t, url, "about/a.jpg")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=900")

	url, err = r.Resolve(context.Background(), "", KindImage)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestNewSelectsProvider(t *testing.T) {
	r, err := New(context.Background(), &config.MediaConfig{Provider: "cloudinary", CloudName: "bibi"})
	require.NoError(t, err)
	assert.IsType(t, &CloudinaryResolver{}, r)

	_, err = New(context.Background(), &config.MediaConfig{Provider: "ftp"})
	assert.Error(t, err)
}
