package s3

import (
	"testing"

	"github.com/haytastan/rasterlift/raster"
)

func TestNewClient_RequiresRegion(t *testing.T) {
	if _, err := NewClient(t.Context(), ClientConfig{}); err == nil {
		t.Fatal("expected error for missing region")
	}
}

func TestNewClient_WithCredentials(t *testing.T) {
	client, err := NewClient(t.Context(), ClientConfig{
		Region: "us-east-1",
		Credentials: &raster.Credentials{
			AccessKey: "ak",
			SecretKey: "sk",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if client == nil {
		t.Fatal("expected client")
	}
}

func TestNewClient_PathStyleEndpoint(t *testing.T) {
	client, err := NewClient(t.Context(), ClientConfig{
		Region:       "us-east-1",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
		Credentials:  &raster.Credentials{AccessKey: "minioadmin", SecretKey: "minioadmin"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if client == nil {
		t.Fatal("expected client")
	}
}
