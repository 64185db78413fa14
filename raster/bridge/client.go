// Package bridge implements the HTTP client for the raster-tiling engine
// gateway.
//
// The gateway exposes the engine's GeoTIFF read as a single endpoint.
// Requests are JSON, gzip-compressed on the wire; engine failures come
// back as structured error payloads and are surfaced verbatim as
// *EngineError. The client adds no retry or backoff.
package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"

	"github.com/haytastan/rasterlift/raster"
)

// json is a drop-in replacement for encoding/json with better performance.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const readGeoTIFFPath = "/v1/geotiff/read"

// defaultTimeout bounds a single gateway round trip. The engine owns its
// own read timeouts; this only guards against a dead gateway.
const defaultTimeout = 10 * time.Minute

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

// Client talks to the engine gateway. It implements raster.Engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures client construction.
type Option func(*Client)

// WithHTTPClient sets the http.Client used for gateway calls.
// Default: a client with a 10 minute timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("bridge: base url is required")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		return nil, errors.New("bridge: http client must not be nil")
	}
	return c, nil
}

// -----------------------------------------------------------------------------
// Wire types
// -----------------------------------------------------------------------------

type readRequest struct {
	RequestID      string              `json:"request_id"`
	AppName        string              `json:"app_name,omitempty"`
	Key            string              `json:"key"`
	URIs           []string            `json:"uris"`
	Options        map[string]any      `json:"options"`
	PartitionBytes string              `json:"partition_bytes"`
	Credentials    *credentialsPayload `json:"credentials,omitempty"`
}

type credentialsPayload struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Scheme    string `json:"scheme,omitempty"`
}

type readResponse struct {
	CollectionID string        `json:"collection_id"`
	TileCount    int64         `json:"tile_count"`
	Tiles        []tilePayload `json:"tiles"`
}

type tilePayload struct {
	TileID string     `json:"tile_id"`
	Col    int        `json:"col"`
	Row    int        `json:"row"`
	Extent [4]float64 `json:"extent"` // xmin, ymin, xmax, ymax
}

// EngineError is a failure reported by the engine, carried through with
// its code and message unchanged.
type EngineError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *EngineError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("engine: %s", e.Message)
	}
	return fmt.Sprintf("engine: %s: %s", e.Code, e.Message)
}

// -----------------------------------------------------------------------------
// Engine implementation
// -----------------------------------------------------------------------------

// ReadGeoTIFF posts one read request to the gateway and wraps the returned
// collection handle.
func (c *Client) ReadGeoTIFF(
	ctx context.Context,
	sc *raster.SessionContext,
	key string,
	uris []string,
	options map[string]any,
	partitionBytes string,
) (raster.Collection, error) {
	req := readRequest{
		RequestID:      uuid.NewString(),
		Key:            key,
		URIs:           uris,
		Options:        options,
		PartitionBytes: partitionBytes,
	}
	if sc != nil {
		req.AppName = sc.AppName
		if sc.Credentials != nil {
			req.Credentials = &credentialsPayload{
				AccessKey: sc.Credentials.AccessKey,
				SecretKey: sc.Credentials.SecretKey,
				Scheme:    sc.CredentialScheme,
			}
		}
	}

	var body bytes.Buffer
	zw := gzip.NewWriter(&body)
	if err := json.NewEncoder(zw).Encode(&req); err != nil {
		return nil, fmt.Errorf("bridge: encoding request: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("bridge: compressing request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+readGeoTIFFPath, &body)
	if err != nil {
		return nil, fmt.Errorf("bridge: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Content-Encoding", "gzip")
	httpReq.Header.Set("X-Request-Id", req.RequestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("bridge: gateway call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeEngineError(resp)
	}

	var out readResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("bridge: decoding response: %w", err)
	}

	extents := make([]raster.TileExtent, len(out.Tiles))
	for i, t := range out.Tiles {
		extents[i] = raster.TileExtent{
			TileID: t.TileID,
			Col:    t.Col,
			Row:    t.Row,
			XMin:   t.Extent[0],
			YMin:   t.Extent[1],
			XMax:   t.Extent[2],
			YMax:   t.Extent[3],
		}
	}

	return &collection{
		id:        out.CollectionID,
		tileCount: out.TileCount,
		extents:   extents,
	}, nil
}

// decodeEngineError extracts the structured error payload from a non-200
// response, falling back to the raw body when the payload is not JSON.
func decodeEngineError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("bridge: gateway returned status %d", resp.StatusCode)
	}

	var engErr EngineError
	if jerr := json.Unmarshal(raw, &engErr); jerr == nil && engErr.Message != "" {
		return &engErr
	}
	return &EngineError{
		Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
		Message: strings.TrimSpace(string(raw)),
	}
}

// -----------------------------------------------------------------------------
// Collection handle
// -----------------------------------------------------------------------------

// collection implements raster.Collection over a gateway response.
type collection struct {
	id        string
	tileCount int64
	extents   []raster.TileExtent
}

func (c *collection) ID() string {
	return c.id
}

func (c *collection) TileCount() int64 {
	return c.tileCount
}

func (c *collection) Extents() []raster.TileExtent {
	out := make([]raster.TileExtent, len(c.extents))
	copy(out, c.extents)
	return out
}

// Ensure Client implements raster.Engine
var _ raster.Engine = (*Client)(nil)
