package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures the S3 client.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
	// JSONPrefix is where the JSON document database lives; objects under
	// it are excluded from List.
	JSONPrefix string
}

// S3Store implements Store against any S3-compatible endpoint.
type S3Store struct {
	client     *minio.Client
	bucket     string
	jsonPrefix string
}

func NewS3Store(opts Options) (*S3Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object store: %w", err)
	}
	return &S3Store{
		client:     client,
		bucket:     opts.Bucket,
		jsonPrefix: opts.JSONPrefix,
	}, nil
}

func (s *S3Store) ReadJSON(ctx context.Context, name string, v interface{}) error {
	obj, err := s.client.GetObject(ctx, s.bucket, s.jsonPrefix+name, minio.GetObjectOptions{})
	if err != nil {
		return classify(err)
	}
	defer obj.Close()

	// GetObject defers the request; decode surfaces the real error.
	if err := json.NewDecoder(obj).Decode(v); err != nil {
		return classify(err)
	}
	return nil
}

func (s *S3Store) WriteJSON(ctx context.Context, name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.jsonPrefix+name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (s *S3Store) Upload(ctx context.Context, name string, content []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, name,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context) ([]ObjectInfo, error) {
	var infos []ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, classify(obj.Err)
		}
		if strings.HasPrefix(obj.Key, s.jsonPrefix) {
			continue
		}
		infos = append(infos, ObjectInfo{
			Name:         path.Base(obj.Key),
			LastModified: obj.LastModified.Format("2006-01-02"),
		})
	}
	return infos, nil
}

func (s *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		err = classify(err)
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// classify maps minio error responses onto the package failure kinds.
func classify(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return ErrNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return ErrUnauthorized
	}
	return fmt.Errorf("blobstore: %w", err)
}
