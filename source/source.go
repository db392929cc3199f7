// Package source opens lexicon files from local disk or S3-compatible
// object storage, decompressing them on the fly.
//
// Locations of the form s3://bucket/key are fetched with the MinIO
// client. The endpoint is taken from LEXICON_S3_ENDPOINT (default
// s3.amazonaws.com), credentials from the usual AWS environment
// variables. Set LEXICON_S3_INSECURE=true to use plain HTTP.
//
// Files ending in .gz, .zst or .lz4 are decompressed.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const s3Scheme = "s3://"

// ErrInvalidLocation is returned for locations that cannot be parsed.
var ErrInvalidLocation = errors.New("invalid location")

// Location identifies a lexicon file.
type Location struct {
	// Bucket is empty for local files.
	Bucket string
	// Path is the object key for S3, or the file path otherwise.
	Path string
}

// Remote reports whether the location refers to object storage.
func (l Location) Remote() bool {
	return l.Bucket != ""
}

func (l Location) String() string {
	if l.Remote() {
		return s3Scheme + l.Bucket + "/" + l.Path
	}
	return l.Path
}

// ParseLocation parses a local path or an s3://bucket/key URL.
func ParseLocation(location string) (Location, error) {
	if location == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}

	if !strings.HasPrefix(location, s3Scheme) {
		return Location{Path: location}, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(location, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return Location{}, fmt.Errorf("%w: %s: expected s3://bucket/key", ErrInvalidLocation, location)
	}

	return Location{Bucket: bucket, Path: key}, nil
}

// Option configures Open.
type Option func(*options)

type options struct {
	client *minio.Client
	getenv func(string) string
}

// WithClient sets the client used for S3 locations, instead of one
// configured from the environment.
func WithClient(client *minio.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithGetenv replaces os.Getenv for reading the S3 configuration.
func WithGetenv(getenv func(string) string) Option {
	return func(o *options) {
		o.getenv = getenv
	}
}

// Open opens the lexicon file at location. The returned reader yields
// decompressed data; closing it releases the underlying file or object.
func Open(ctx context.Context, location string, opts ...Option) (io.ReadCloser, error) {
	o := options{getenv: os.Getenv}
	for _, opt := range opts {
		opt(&o)
	}

	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	var rc io.ReadCloser
	if loc.Remote() {
		rc, err = openObject(ctx, loc, o)
	} else {
		rc, err = os.Open(loc.Path)
	}
	if err != nil {
		return nil, err
	}

	return decompress(rc, CompressionOf(loc.Path))
}

// Stat checks that a local location exists and is a regular file.
// Remote locations are not checked.
func Stat(location string) error {
	loc, err := ParseLocation(location)
	if err != nil {
		return err
	}
	if loc.Remote() {
		return nil
	}

	fi, err := os.Stat(loc.Path)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrInvalidLocation, loc.Path)
	}

	return nil
}

// Size returns the size of a local file, or -1 for remote locations.
func Size(location string) (int64, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return 0, err
	}
	if loc.Remote() {
		return -1, nil
	}

	fi, err := os.Stat(loc.Path)
	if err != nil {
		return 0, err
	}

	return fi.Size(), nil
}

func openObject(ctx context.Context, loc Location, o options) (io.ReadCloser, error) {
	client := o.client
	if client == nil {
		var err error
		if client, err = NewClient(o.getenv); err != nil {
			return nil, err
		}
	}

	obj, err := client.GetObject(ctx, loc.Bucket, loc.Path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("cannot get %s: %w", loc, err)
	}

	// GetObject is lazy, so surface a missing object here.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("cannot get %s: %w", loc, err)
	}

	return obj, nil
}

// NewClient creates a MinIO client from the environment.
func NewClient(getenv func(string) string) (*minio.Client, error) {
	endpoint := getenv("LEXICON_S3_ENDPOINT")
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}

	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewEnvAWS(),
		Secure: getenv("LEXICON_S3_INSECURE") != "true",
		Region: getenv("AWS_REGION"),
	})
}
