// Package raster binds GeoTIFF read requests to an external distributed
// raster-tiling engine.
//
// Raster focuses on parameter marshalling: it resolves the layer type,
// normalizes input URIs, validates the credential-scoping contract, and
// forwards a sparse option mapping to the engine. All file discovery,
// tiling, reprojection, and partitioning happen inside the engine; this
// package never interprets the returned collection's internals.
package raster

import (
	"context"
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Core types
// -----------------------------------------------------------------------------

// LayerType identifies the key scheme of a layer's tiles.
type LayerType string

// Layer type variants.
const (
	// LayerTypeSpatial tags layers keyed purely by location.
	LayerTypeSpatial LayerType = "spatial"

	// LayerTypeSpaceTime tags layers keyed by location and time.
	LayerTypeSpaceTime LayerType = "spacetime"
)

// ParseLayerType resolves a layer type tag from its string form.
// Unknown tags fail with ErrInvalidLayerType.
func ParseLayerType(s string) (LayerType, error) {
	switch LayerType(strings.ToLower(s)) {
	case LayerTypeSpatial:
		return LayerTypeSpatial, nil
	case LayerTypeSpaceTime:
		return LayerTypeSpaceTime, nil
	}
	return "", fmt.Errorf("raster: %w: %q", ErrInvalidLayerType, s)
}

// keyName resolves the canonical backend key for this layer type.
// spatialKeys selects tiled keys over projected-extent keys; the geotiff
// read path always resolves projected-extent keys.
func (lt LayerType) keyName(spatialKeys bool) (string, error) {
	switch lt {
	case LayerTypeSpatial:
		if spatialKeys {
			return "SpatialKey", nil
		}
		return "ProjectedExtent", nil
	case LayerTypeSpaceTime:
		if spatialKeys {
			return "SpaceTimeKey", nil
		}
		return "TemporalProjectedExtent", nil
	}
	return "", fmt.Errorf("raster: %w: %q", ErrInvalidLayerType, string(lt))
}

// Credentials is an alternate access/secret pair for the object-store
// backend. Credentials are transient: installed for the duration of a
// single read, then reverted.
type Credentials struct {
	// AccessKey is the object-store access key identifier.
	AccessKey string

	// SecretKey is the object-store secret key.
	SecretKey string
}

// TileExtent describes the footprint of one tile as reported by the engine.
type TileExtent struct {
	// TileID identifies the tile within the collection.
	TileID string

	// Col and Row locate the tile in the collection's grid.
	Col int
	Row int

	// XMin, YMin, XMax, YMax bound the tile in the layer's CRS.
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// -----------------------------------------------------------------------------
// Engine interface
// -----------------------------------------------------------------------------

// Collection is an opaque handle over the engine's distributed collection
// of raster tiles.
type Collection interface {
	// ID returns the engine-assigned collection identifier.
	ID() string

	// TileCount returns the number of tiles in the collection.
	TileCount() int64

	// Extents returns the tile footprints the engine reported.
	Extents() []TileExtent
}

// Engine is the external raster-tiling engine collaborator.
//
// Implementations receive the resolved backend key, the normalized URI
// list, the sparse option mapping, and the partition byte hint. The hint
// crosses the boundary as a string because the engine interface expects
// one. Failures propagate to the caller unchanged: this layer adds no
// retry, backoff, or translation.
type Engine interface {
	ReadGeoTIFF(
		ctx context.Context,
		sc *SessionContext,
		key string,
		uris []string,
		options map[string]any,
		partitionBytes string,
	) (Collection, error)
}

// -----------------------------------------------------------------------------
// Defaults
// -----------------------------------------------------------------------------

// Defaults the engine applies when the corresponding option is omitted.
// Exported so callers can pass them explicitly.
const (
	// DefaultMaxTileSize is the engine's tile edge length in pixels.
	DefaultMaxTileSize = 256

	// DefaultPartitionBytes is the engine's target bytes per partition.
	DefaultPartitionBytes int64 = 128 << 20

	// DefaultChunkSize is the engine's read buffer size in bytes.
	DefaultChunkSize = 65536

	// DefaultGeoTIFFTimeTag is the tiff tag holding a tile's timestamp.
	DefaultGeoTIFFTimeTag = "TIFFTAG_DATETIME"

	// DefaultGeoTIFFTimeFormat is the pattern the timestamp is parsed with.
	DefaultGeoTIFFTimeFormat = "yyyy:MM:dd HH:mm:ss"

	// DefaultS3Client is the engine's default object-store client variant.
	DefaultS3Client = "default"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

// Error sentinel values for common conditions.
var (
	// ErrInvalidLayerType indicates an unrecognized layer type tag.
	ErrInvalidLayerType = errInvalidLayerType{}

	// ErrNoURIs indicates an empty URI input.
	ErrNoURIs = errNoURIs{}

	// ErrCredentialsWithoutS3 indicates alternate S3 credentials were
	// supplied for a URI that does not target S3.
	ErrCredentialsWithoutS3 = errCredentialsWithoutS3{}

	// ErrSessionClosed indicates a read was attempted on a closed session.
	ErrSessionClosed = errSessionClosed{}

	// ErrCredentialScopeCorrupted indicates the session credential slot was
	// modified outside the active scope. The revert does not guess; it fails.
	ErrCredentialScopeCorrupted = errCredentialScopeCorrupted{}
)

type errInvalidLayerType struct{}

func (errInvalidLayerType) Error() string { return "invalid layer type" }

type errNoURIs struct{}

func (errNoURIs) Error() string { return "no uris provided" }

type errCredentialsWithoutS3 struct{}

func (errCredentialsWithoutS3) Error() string {
	return "s3 credentials provided without an s3 uri"
}

type errSessionClosed struct{}

func (errSessionClosed) Error() string { return "session closed" }

type errCredentialScopeCorrupted struct{}

func (errCredentialScopeCorrupted) Error() string {
	return "credential scope corrupted: slot modified outside scope"
}
