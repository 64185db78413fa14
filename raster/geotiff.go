package raster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// -----------------------------------------------------------------------------
// GeoTIFF read entry point
// -----------------------------------------------------------------------------

// Get reads GeoTIFFs located on the local file system, HDFS, or S3 into a
// RasterLayer.
//
// All of the GeoTIFFs must have the same spatial type, given by layerType.
// uris lists the paths or directories to read; entries keep their order
// and the first entry's scheme classifies the storage backend. Only explicitly
// supplied options reach the engine; everything else falls back to the
// engine's own defaults.
//
// When WithS3Credentials is supplied, the first URI must target S3, and
// the credentials are installed in the session scope for the duration of
// the read and reverted afterward on every exit path.
//
// Engine failures propagate unchanged. A read either yields one complete
// RasterLayer or fails entirely.
func Get(
	ctx context.Context,
	sess *Session,
	layerType LayerType,
	uris []string,
	opts ...GetOption,
) (layer *RasterLayer, err error) {
	if sess == nil {
		return nil, errors.New("raster: session is required")
	}

	key, err := layerType.keyName(false)
	if err != nil {
		return nil, err
	}

	list, scheme, err := normalizeURIs(uris)
	if err != nil {
		return nil, err
	}

	cfg := newReadOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.credentials != nil && !IsS3URI(list[0]) {
		return nil, fmt.Errorf("raster: %w (uri: %s)", ErrCredentialsWithoutS3, list[0])
	}

	partitionBytes := DefaultPartitionBytes
	if cfg.partitionBytes != nil {
		partitionBytes = *cfg.partitionBytes
	}

	if cfg.credentials != nil {
		restore, perr := sess.pushCredentials(cfg.credentials, scheme)
		if perr != nil {
			return nil, perr
		}
		// Revert on every exit path. A failed revert is fatal even when the
		// read itself succeeded: a corrupted slot would poison unrelated
		// subsequent reads.
		defer func() {
			if rerr := restore(); rerr != nil {
				layer, err = nil, errors.Join(err, rerr)
			}
		}()
	}

	engine, sc, err := sess.acquire()
	if err != nil {
		return nil, err
	}

	collection, err := engine.ReadGeoTIFF(
		ctx,
		sc,
		key,
		list,
		cfg.values,
		strconv.FormatInt(partitionBytes, 10),
	)
	if err != nil {
		return nil, err
	}

	return &RasterLayer{LayerType: layerType, collection: collection}, nil
}

// GetURI reads GeoTIFFs from a single path or directory. It is equivalent
// to Get with a one-element URI list.
func GetURI(
	ctx context.Context,
	sess *Session,
	layerType LayerType,
	uri string,
	opts ...GetOption,
) (*RasterLayer, error) {
	return Get(ctx, sess, layerType, []string{uri}, opts...)
}
