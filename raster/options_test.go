package raster

import (
	"reflect"
	"testing"
)

func runGetCapturingOptions(t *testing.T, opts ...GetOption) *spyEngine {
	t.Helper()
	engine := &spyEngine{}
	sess := newTestSession(t, engine)
	if _, err := GetURI(t.Context(), sess, LayerTypeSpatial, "s3://bucket/a.tif", opts...); err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestGet_OmittedOptionsAbsentFromMapping(t *testing.T) {
	engine := runGetCapturingOptions(t)

	if len(engine.lastOptions) != 0 {
		t.Errorf("option mapping = %v, want empty when nothing supplied", engine.lastOptions)
	}
}

func TestGet_SuppliedOptionsPresentInMapping(t *testing.T) {
	engine := runGetCapturingOptions(t,
		WithCRS("EPSG:3857"),
		WithMaxTileSize(512),
		WithNumPartitions(8),
		WithChunkSize(DefaultChunkSize),
		WithTimeTag(DefaultGeoTIFFTimeTag),
		WithTimeFormat(DefaultGeoTIFFTimeFormat),
		WithDelimiter("/"),
		WithS3Client("mock"),
	)

	want := map[string]any{
		"crs":            "EPSG:3857",
		"max_tile_size":  512,
		"num_partitions": 8,
		"chunk_size":     DefaultChunkSize,
		"time_tag":       DefaultGeoTIFFTimeTag,
		"time_format":    DefaultGeoTIFFTimeFormat,
		"delimiter":      "/",
		"s3_client":      "mock",
	}
	if !reflect.DeepEqual(engine.lastOptions, want) {
		t.Errorf("option mapping = %v, want %v", engine.lastOptions, want)
	}
}

func TestGet_ExplicitZeroValuesPresentInMapping(t *testing.T) {
	// An explicitly supplied zero is a real override, not "unset".
	engine := runGetCapturingOptions(t,
		WithMaxTileSize(0),
		WithCRS(""),
	)

	if v, ok := engine.lastOptions["max_tile_size"]; !ok || v != 0 {
		t.Errorf("max_tile_size = %v (present=%v), want explicit 0", v, ok)
	}
	if v, ok := engine.lastOptions["crs"]; !ok || v != "" {
		t.Errorf("crs = %v (present=%v), want explicit empty string", v, ok)
	}
}

func TestGet_PositionalParametersNeverInMapping(t *testing.T) {
	engine := runGetCapturingOptions(t,
		WithPartitionBytes(2048),
		WithS3Credentials(Credentials{AccessKey: "ak", SecretKey: "sk"}),
		WithMaxTileSize(256),
	)

	for _, key := range []string{"layer_type", "uri", "uris", "partition_bytes", "s3_credentials"} {
		if _, ok := engine.lastOptions[key]; ok {
			t.Errorf("positional parameter %q leaked into option mapping", key)
		}
	}
	if engine.lastPartitionBytes != "2048" {
		t.Errorf("partition bytes = %q, want %q", engine.lastPartitionBytes, "2048")
	}
}

func TestGet_MappingBuiltFreshPerCall(t *testing.T) {
	engine := &spyEngine{}
	sess := newTestSession(t, engine)

	if _, err := GetURI(t.Context(), sess, LayerTypeSpatial, "/a.tif", WithCRS("EPSG:4326")); err != nil {
		t.Fatal(err)
	}
	first := engine.lastOptions

	if _, err := GetURI(t.Context(), sess, LayerTypeSpatial, "/a.tif"); err != nil {
		t.Fatal(err)
	}

	if len(engine.lastOptions) != 0 {
		t.Errorf("second call mapping = %v, want empty", engine.lastOptions)
	}
	if len(first) != 1 {
		t.Errorf("first call mapping mutated across calls: %v", first)
	}
}
