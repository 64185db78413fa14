package raster

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// -----------------------------------------------------------------------------
// RasterLayer
// -----------------------------------------------------------------------------

// RasterLayer is the typed handle over a distributed collection of raster
// tiles, tagged with its LayerType. The collection itself is opaque and
// owned by the engine; callers own the handle.
type RasterLayer struct {
	// LayerType is the key scheme the layer was read with.
	LayerType LayerType

	collection Collection
}

// Collection returns the underlying distributed collection handle.
func (l *RasterLayer) Collection() Collection {
	return l.collection
}

// TileCount returns the number of tiles in the layer.
func (l *RasterLayer) TileCount() int64 {
	return l.collection.TileCount()
}

// -----------------------------------------------------------------------------
// Footprint export
// -----------------------------------------------------------------------------

// footprintRow is the parquet record for one tile footprint. Geometry is
// the WKB encoding of the tile extent polygon.
type footprintRow struct {
	TileID   string  `parquet:"tile_id"`
	Col      int32   `parquet:"col"`
	Row      int32   `parquet:"row"`
	XMin     float64 `parquet:"xmin"`
	YMin     float64 `parquet:"ymin"`
	XMax     float64 `parquet:"xmax"`
	YMax     float64 `parquet:"ymax"`
	Geometry []byte  `parquet:"geometry"`
}

// WriteFootprints writes one parquet row per tile footprint reported by
// the engine: tile id, grid position, extent bounds, and the extent
// polygon as WKB.
func (l *RasterLayer) WriteFootprints(w io.Writer) error {
	extents := l.collection.Extents()

	rows := make([]footprintRow, 0, len(extents))
	for _, e := range extents {
		poly := geom.NewPolygonFlat(geom.XY, []float64{
			e.XMin, e.YMin,
			e.XMax, e.YMin,
			e.XMax, e.YMax,
			e.XMin, e.YMax,
			e.XMin, e.YMin,
		}, []int{10})

		encoded, err := wkb.Marshal(poly, wkb.NDR)
		if err != nil {
			return fmt.Errorf("raster: encoding footprint %s: %w", e.TileID, err)
		}

		rows = append(rows, footprintRow{
			TileID:   e.TileID,
			Col:      int32(e.Col),
			Row:      int32(e.Row),
			XMin:     e.XMin,
			YMin:     e.YMin,
			XMax:     e.XMax,
			YMax:     e.YMax,
			Geometry: encoded,
		})
	}

	pw := parquet.NewGenericWriter[footprintRow](w)
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return fmt.Errorf("raster: writing footprints: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("raster: closing footprint writer: %w", err)
	}
	return nil
}
