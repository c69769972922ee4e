package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

const gcsPublicHost = "https://storage.googleapis.com"

// CloudStorageClient stores objects in a Google Cloud Storage bucket
type CloudStorageClient struct {
	BucketName string
	Client     *storage.Client
	baseURL    string
}

// NewCloudStorageClient uses application default credentials.
func NewCloudStorageClient(ctx context.Context, bucketName, publicBaseURL string) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	if publicBaseURL == "" {
		publicBaseURL = gcsPublicHost + "/" + bucketName
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Client:     client,
		baseURL:    publicBaseURL,
	}, nil
}

func (c *CloudStorageClient) Upload(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	wc := c.Client.Bucket(c.BucketName).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close object writer: %v", err)
	}
	return publicURL(c.baseURL, key), nil
}

func (c *CloudStorageClient) Remove(ctx context.Context, key string) error {
	err := c.Client.Bucket(c.BucketName).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

// Close releases the underlying client
func (c *CloudStorageClient) Close() error {
	return c.Client.Close()
}
