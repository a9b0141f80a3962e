package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(publicBaseURL string) *S3Service {
	client := s3.New(s3.Options{Region: "sa-east-1", Credentials: aws.AnonymousCredentials{}})
	return NewS3Service(client, "murim-media", "sa-east-1", publicBaseURL)
}

func TestObjectURLs(t *testing.T) {
	svc := newTestService("")
	assert.Equal(t, "https://murim-media.s3.sa-east-1.amazonaws.com/images/a.png", svc.url("images/a.png"))

	key, ok := svc.KeyFromURL("https://murim-media.s3.sa-east-1.amazonaws.com/images/a.png")
	require.True(t, ok)
	assert.Equal(t, "images/a.png", key)

	_, ok = svc.KeyFromURL("https://example.com/kimono.jpg")
	assert.False(t, ok)

	cdn := newTestService("https://cdn.murim.example/")
	assert.Equal(t, "https://cdn.murim.example/images/a.png", cdn.url("images/a.png"))
	key, ok = cdn.KeyFromURL("https://cdn.murim.example/images/a.png")
	require.True(t, ok)
	assert.Equal(t, "images/a.png", key)
}

func TestUploadValidatesInput(t *testing.T) {
	svc := newTestService("")

	_, err := svc.Upload(context.Background(), UploadInput{Key: "", Body: strings.NewReader("x")})
	require.Error(t, err)

	empty := NewS3Service(s3.New(s3.Options{Region: "sa-east-1"}), "", "sa-east-1", "")
	_, err = empty.Upload(context.Background(), UploadInput{Key: "a.png", Body: strings.NewReader("x")})
	require.Error(t, err)

	require.Error(t, svc.Delete(context.Background(), " "))
}

func TestImageKey(t *testing.T) {
	key := ImageKey("/images/", "produtos", 3, ".PNG")
	assert.True(t, strings.HasPrefix(key, "images/produtos/3/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	other := ImageKey("images", "produtos", 3, "png")
	assert.NotEqual(t, key, other)

	bare := ImageKey("", "trainers", 1, "")
	assert.True(t, strings.HasPrefix(bare, "trainers/1/"), bare)
	assert.NotContains(t, bare, ".")
}
