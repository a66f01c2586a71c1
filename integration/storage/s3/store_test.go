package s3_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/respkit/integration/storage/s3"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := s3.New(context.Background(), s3.Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)

	_, err = s3.New(context.Background(), s3.Config{Bucket: "b"})
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)
}

func TestNew_StaticCredentials(t *testing.T) {
	t.Parallel()

	store, err := s3.New(context.Background(), s3.Config{
		Bucket:         "uploads",
		Region:         "us-east-1",
		AccessKeyID:    "AKIAEXAMPLE",
		SecretKey:      "secret",
		Endpoint:       "http://localhost:9000",
		ForcePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/uploads/a.txt", store.URL("a.txt"))
}

func TestStore_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  s3.Config
		want string
	}{
		{
			name: "aws_virtual_hosted",
			cfg:  s3.Config{Bucket: "b", Region: "eu-west-1"},
			want: "https://b.s3.eu-west-1.amazonaws.com/dir/file.txt",
		},
		{
			name: "aws_path_style",
			cfg:  s3.Config{Bucket: "b", Region: "eu-west-1", ForcePathStyle: true},
			want: "https://s3.eu-west-1.amazonaws.com/b/dir/file.txt",
		},
		{
			name: "endpoint_virtual_hosted",
			cfg:  s3.Config{Bucket: "b", Region: "nyc3", Endpoint: "https://nyc3.digitaloceanspaces.com/"},
			want: "https://b.nyc3.digitaloceanspaces.com/dir/file.txt",
		},
		{
			name: "base_url",
			cfg:  s3.Config{Bucket: "b", Region: "nyc3", BaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/dir/file.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, err := s3.New(context.Background(), tt.cfg, s3.WithClient(&fakeClient{}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.URL("/dir/file.txt"))
		})
	}
}

func TestStore_ObjectAndRedirect(t *testing.T) {
	t.Parallel()

	client := &fakeClient{out: objectOutput("data")}
	store, err := s3.New(context.Background(), s3.Config{Bucket: "media", Region: "us-east-1", BaseURL: "https://cdn.example.com"},
		s3.WithClient(client))
	require.NoError(t, err)

	rec, err := send(t, httptest.NewRequest(http.MethodGet, "/", nil), store.Object("img/1.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", rec.Body.String())
	assert.Equal(t, "media", *client.input.Bucket)

	rec, err = send(t, httptest.NewRequest(http.MethodGet, "/", nil), store.Redirect("img/1.png"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://cdn.example.com/img/1.png", rec.Header().Get("Location"))
}
