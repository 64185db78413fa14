package raster

import (
	"errors"
	"reflect"
	"testing"
)

func TestURIScheme(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"s3", "s3://bucket/a.tif", "s3"},
		{"s3a", "s3a://bucket/a.tif", "s3a"},
		{"hdfs", "hdfs://cluster/data/a.tif", "hdfs"},
		{"file", "file:///data/a.tif", "file"},
		{"local path no colon", "/data/a.tif", ""},
		{"relative path", "a.tif", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uriScheme(tt.uri); got != tt.want {
				t.Errorf("uriScheme(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestIsS3URI(t *testing.T) {
	tests := []struct {
		uri  string
		want bool
	}{
		{"s3://bucket/a.tif", true},
		{"s3a://bucket/a.tif", true},
		{"s3n://bucket/a.tif", true},
		{"hdfs://cluster/a.tif", false},
		{"file:///a.tif", false},
		{"/local/a.tif", false},
		{"s3x://bucket/a.tif", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := IsS3URI(tt.uri); got != tt.want {
				t.Errorf("IsS3URI(%q) = %v, want %v", tt.uri, got, tt.want)
			}
		})
	}
}

func TestNormalizeURIs(t *testing.T) {
	uris, scheme, err := normalizeURIs([]string{"s3://bucket/a.tif", "hdfs://cluster/b.tif"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(uris, []string{"s3://bucket/a.tif", "hdfs://cluster/b.tif"}) {
		t.Errorf("uris = %v, want input order preserved", uris)
	}
	// Only the first element's scheme classifies the backend.
	if scheme != "s3" {
		t.Errorf("scheme = %q, want %q", scheme, "s3")
	}
}

func TestNormalizeURIs_Empty(t *testing.T) {
	if _, _, err := normalizeURIs(nil); !errors.Is(err, ErrNoURIs) {
		t.Errorf("normalizeURIs(nil) = %v, want ErrNoURIs", err)
	}
}

func TestNormalizeURIs_CopiesInput(t *testing.T) {
	in := []string{"a.tif", "b.tif"}
	uris, _, err := normalizeURIs(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = "mutated.tif"
	if uris[0] != "a.tif" {
		t.Error("normalized list aliases caller's slice")
	}
}
