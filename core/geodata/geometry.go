package geodata

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"
	"github.com/twpayne/go-geom/xy/location"
)

// decodeShape parses a GeoJSON geometry.
func decodeShape(data string) (geom.T, error) {
	if data == "" {
		return nil, nil
	}
	var g geom.T
	if err := geojson.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return g, nil
}

// encodeShape renders a geometry as GeoJSON.
func encodeShape(g geom.T) (string, error) {
	if g == nil {
		return "", nil
	}
	data, err := geojson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// geometryFamily maps a geometry to the layer geometry type it belongs to.
// Point layers hold single points only; intersections cannot split a MultiPoint.
func geometryFamily(g geom.T) (string, error) {
	switch g.(type) {
	case *geom.Point:
		return GeometryPoint, nil
	case *geom.Polygon, *geom.MultiPolygon:
		return GeometryPolygon, nil
	default:
		return "", fmt.Errorf("unsupported geometry type %T", g)
	}
}

// intersectShapes returns the intersection of a and b when it is not empty.
// Only combinations involving points are supported; the result is then the point.
func intersectShapes(a, b geom.T) (geom.T, bool, error) {
	if a == nil || b == nil {
		return nil, false, nil
	}

	if pa, ok := a.(*geom.Point); ok {
		if pb, ok := b.(*geom.Point); ok {
			return pa, samePosition(pa, pb), nil
		}
		inside, err := containsPoint(b, pa)
		return pa, inside, err
	}

	if pb, ok := b.(*geom.Point); ok {
		inside, err := containsPoint(a, pb)
		return pb, inside, err
	}

	return nil, false, fmt.Errorf("unsupported intersection of %T and %T", a, b)
}

// containsPoint reports whether p lies inside or on the boundary of the polygonal g.
func containsPoint(g geom.T, p *geom.Point) (bool, error) {
	switch shape := g.(type) {
	case *geom.Polygon:
		return polygonContains(shape, p.Coords()), nil
	case *geom.MultiPolygon:
		for i := 0; i < shape.NumPolygons(); i++ {
			if polygonContains(shape.Polygon(i), p.Coords()) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("cannot test containment in %T", g)
	}
}

// polygonContains is boundary inclusive. A point strictly inside a hole is outside.
func polygonContains(poly *geom.Polygon, c geom.Coord) bool {
	if poly.NumLinearRings() == 0 {
		return false
	}
	layout := poly.Layout()

	shell := poly.LinearRing(0).FlatCoords()
	if xy.LocatePointInRing(layout, c, shell) == location.Exterior {
		return false
	}

	for i := 1; i < poly.NumLinearRings(); i++ {
		hole := poly.LinearRing(i).FlatCoords()
		if xy.LocatePointInRing(layout, c, hole) == location.Interior {
			return false
		}
	}
	return true
}

func samePosition(a, b *geom.Point) bool {
	return a.X() == b.X() && a.Y() == b.Y()
}
