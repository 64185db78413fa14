package raster

// -----------------------------------------------------------------------------
// Read options
// -----------------------------------------------------------------------------

// readOptions holds the resolved configuration for one read.
//
// values is the sparse option mapping forwarded to the engine: a key is
// present only when the caller supplied the corresponding option, so the
// engine applies its own defaults for everything else. An explicitly
// supplied zero or empty value still produces a key. Layer type, URIs,
// credentials, and partition bytes are consumed positionally and never
// appear in the mapping.
type readOptions struct {
	values         map[string]any
	partitionBytes *int64
	credentials    *Credentials
}

func newReadOptions() *readOptions {
	return &readOptions{values: make(map[string]any)}
}

// GetOption configures a single GeoTIFF read.
type GetOption func(*readOptions)

// WithCRS sets the CRS the output tiles should be in. When omitted, tiles
// keep the CRS they were read in.
func WithCRS(crs string) GetOption {
	return func(o *readOptions) {
		o.values["crs"] = crs
	}
}

// WithMaxTileSize sets the max edge length of each tile in pixels. Tiles
// larger than this are split by the engine. Default: DefaultMaxTileSize.
func WithMaxTileSize(pixels int) GetOption {
	return func(o *readOptions) {
		o.values["max_tile_size"] = pixels
	}
}

// WithNumPartitions sets the partition count for the resulting collection.
// When omitted, the data is not repartitioned. Ignored by the engine when
// a max tile size is also in effect.
func WithNumPartitions(n int) GetOption {
	return func(o *readOptions) {
		o.values["num_partitions"] = n
	}
}

// WithChunkSize sets how many bytes of each file are read at a time.
// Default: DefaultChunkSize.
func WithChunkSize(bytes int) GetOption {
	return func(o *readOptions) {
		o.values["chunk_size"] = bytes
	}
}

// WithPartitionBytes sets the target number of bytes per partition.
// Default: DefaultPartitionBytes. Forwarded positionally, not as a
// mapping key.
func WithPartitionBytes(n int64) GetOption {
	return func(o *readOptions) {
		o.partitionBytes = &n
	}
}

// WithTimeTag sets the tiff tag holding each tile's timestamp.
// Default: DefaultGeoTIFFTimeTag.
func WithTimeTag(tag string) GetOption {
	return func(o *readOptions) {
		o.values["time_tag"] = tag
	}
}

// WithTimeFormat sets the pattern the timestamp is parsed with.
// Default: DefaultGeoTIFFTimeFormat.
func WithTimeFormat(pattern string) GetOption {
	return func(o *readOptions) {
		o.values["time_format"] = pattern
	}
}

// WithDelimiter sets the delimiter for object-store path listings.
// Only used when reading from S3.
func WithDelimiter(delimiter string) GetOption {
	return func(o *readOptions) {
		o.values["delimiter"] = delimiter
	}
}

// WithS3Client selects the engine's object-store client variant,
// "default" or "mock". The mock variant exists for unit tests and
// debugging. Default: DefaultS3Client.
func WithS3Client(variant string) GetOption {
	return func(o *readOptions) {
		o.values["s3_client"] = variant
	}
}

// WithS3Credentials supplies alternate S3 credentials for the read.
// The first URI must target S3 or the read fails with
// ErrCredentialsWithoutS3 before the engine is invoked. Forwarded through
// the session credential scope, not as a mapping key.
func WithS3Credentials(creds Credentials) GetOption {
	return func(o *readOptions) {
		o.credentials = &creds
	}
}
