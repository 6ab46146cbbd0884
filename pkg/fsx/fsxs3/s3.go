package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Abraxas-365/sift/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3FileSystem implements fsx.FileSystem on an S3 bucket with a key prefix
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates an S3-backed file system
func NewS3FileSystem(client *s3.Client, bucket, prefix string) fsx.FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (f *S3FileSystem) key(filePath string) string {
	return fsx.Join(f.prefix, filePath)
}

// ReadFile returns the full contents of a stored object
func (f *S3FileSystem) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(filePath)),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", filePath, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", filePath, err)
	}
	return data, nil
}

// WriteFileStream stores an object from a reader
func (f *S3FileSystem) WriteFileStream(ctx context.Context, filePath string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("buffer upload %s: %w", filePath, err)
	}

	_, err = f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(filePath)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", filePath, err)
	}
	return nil
}

// DeleteFile removes a stored object
func (f *S3FileSystem) DeleteFile(ctx context.Context, filePath string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(filePath)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", filePath, err)
	}
	return nil
}

// Exists checks whether an object is stored
func (f *S3FileSystem) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(filePath)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", filePath, err)
	}
	return true, nil
}

// Join builds a storage path from segments
func (f *S3FileSystem) Join(segments ...string) string {
	return fsx.Join(segments...)
}
