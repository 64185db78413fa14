package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/haytastan/rasterlift/raster"
)

// Error sentinel values for common conditions.
var (
	// ErrNotFound indicates the addressed bucket does not exist.
	ErrNotFound = errNotFound{}

	// ErrNotS3URI indicates a URI that does not target S3.
	ErrNotS3URI = errNotS3URI{}
)

type errNotFound struct{}

func (errNotFound) Error() string { return "not found" }

type errNotS3URI struct{}

func (errNotS3URI) Error() string { return "not an s3 uri" }

// API defines the subset of the S3 client interface used by listings.
// This enables testing with mock implementations.
type API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// ParseURI splits an s3/s3a/s3n URI into bucket and key prefix.
func ParseURI(uri string) (bucket, key string, err error) {
	if !raster.IsS3URI(uri) {
		return "", "", fmt.Errorf("s3: %w: %q", ErrNotS3URI, uri)
	}

	rest := uri[strings.IndexByte(uri, ':')+1:]
	rest = strings.TrimPrefix(rest, "//")
	if rest == "" {
		return "", "", fmt.Errorf("s3: %w: %q", ErrNotS3URI, uri)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, nil
}

// List returns the object keys under an s3:// URI, with full pagination.
//
// delimiter, when non-empty, groups keys the way the engine's path
// listings do; grouped prefixes are not returned, only keys. A missing
// bucket maps to ErrNotFound.
func List(ctx context.Context, client API, uri, delimiter string) ([]string, error) {
	if client == nil {
		return nil, errors.New("s3: client is required")
	}

	bucket, prefix, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	var keys []string
	var continuationToken *string

	for {
		in := &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		}
		if delimiter != "" {
			in.Delimiter = aws.String(delimiter)
		}

		out, err := client.ListObjectsV2(ctx, in)
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket" {
				return nil, fmt.Errorf("s3: bucket %q: %w", bucket, ErrNotFound)
			}
			return nil, fmt.Errorf("s3: list objects: %w", err)
		}

		for _, obj := range out.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}

		if !aws.ToBool(out.IsTruncated) {
			break
		}
		continuationToken = out.NextContinuationToken
	}

	return keys, nil
}
