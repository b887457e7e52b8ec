package checks

import (
	"context"
	"fmt"

	"relation-checker/core/geodata"
	"relation-checker/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScratchBaseName prefixes every intersection a check writes. Each check appends a
// fresh UUID so that checks running at the same time never share a scratch layer.
const ScratchBaseName = geodata.ScratchPrefix + "intersected_"

// Checker compares stored GUID references against geometric containment.
type Checker struct {
	accessor  geodata.Accessor
	layers    Layers
	workspace string
	logger    *zap.Logger
}

// NewChecker binds accessor to workspace. The workspace is set immediately.
func NewChecker(ctx context.Context, workspace string, layers Layers, accessor geodata.Accessor, logger *zap.Logger) (*Checker, error) {
	if err := accessor.SetWorkspace(ctx, workspace); err != nil {
		return nil, err
	}
	logger.Info("Checker initialized", zap.String("workspace", workspace))
	return &Checker{
		accessor:  accessor,
		layers:    layers,
		workspace: workspace,
		logger:    logger,
	}, nil
}

// Layers returns the layer names the checker was built with.
func (c *Checker) Layers() Layers {
	return c.layers
}

// LayerCount returns the number of features in layer.
func (c *Checker) LayerCount(ctx context.Context, layer string) (int, error) {
	n, err := c.accessor.Count(ctx, layer)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("Layer count", zap.String("layer", layer), zap.Int("count", n))
	return n, nil
}

// ResolveGUID returns the GLOBALID of the single feature of layer matching where.
// Any other match count is an AmbiguousFeatureError.
func (c *Checker) ResolveGUID(ctx context.Context, layer string, where geodata.Where) (string, error) {
	c.logger.Debug("Resolving GUID", zap.String("layer", layer), zap.String("where", string(where)))

	selection, err := c.accessor.SelectByAttribute(ctx, layer, where)
	if err != nil {
		return "", err
	}
	n, err := c.LayerCount(ctx, selection)
	if err != nil {
		return "", err
	}
	if n != 1 {
		return "", &AmbiguousFeatureError{Layer: layer, Where: where, Count: n}
	}

	cur, err := c.accessor.SearchCursor(ctx, layer, []string{geodata.FieldGlobalID}, where)
	if err != nil {
		return "", err
	}
	defer cur.Close()

	if !cur.Next() {
		if err := cur.Err(); err != nil {
			return "", err
		}
		// The feature disappeared between the count and the read.
		return "", &AmbiguousFeatureError{Layer: layer, Where: where, Count: 0}
	}
	row := cur.Row()
	if len(row) == 0 {
		return "", fmt.Errorf("empty row for where=%s in %s", where, layer)
	}

	guid := utils.ToString(row[0])
	c.logger.Debug("Resolved GUID", zap.String("layer", layer), zap.String("guid", guid))
	return guid, nil
}

// CheckPointToPolygonRelationship intersects pointLayer with polygonLayer and reports every
// intersection row whose stored point GUID differs from the GUID of the contained point.
// fields names the point FID, the polygon FID and the stored GUID in the intersection.
func (c *Checker) CheckPointToPolygonRelationship(ctx context.Context, pointLayer, polygonLayer string, fields [3]string) ([]Mismatch, error) {
	c.logger.Debug("Checking point-to-polygon relationship",
		zap.String("point", pointLayer),
		zap.String("polygon", polygonLayer))

	mismatches := []Mismatch{}
	err := c.eachIntersection(ctx, []string{pointLayer, polygonLayer}, fields, func(row geodata.Row) error {
		fidPoint, fidPolygon, logged := utils.ToInt64(row[0]), utils.ToInt64(row[1]), utils.ToString(row[2])

		geometric, err := c.ResolveGUID(ctx, pointLayer, geodata.ObjectIDEquals(fidPoint))
		if err != nil {
			return err
		}
		if logged == geometric {
			return nil
		}

		polygon, err := c.ResolveGUID(ctx, polygonLayer, geodata.ObjectIDEquals(fidPolygon))
		if err != nil {
			return err
		}
		m := Mismatch{ContainerGUID: polygon, LoggedGUID: logged, GeometricGUID: geometric}
		mismatches = append(mismatches, m)
		c.logger.Warn("Invalid relationship found",
			zap.String("polygon_guid", m.ContainerGUID),
			zap.String("logical_point_guid", m.LoggedGUID),
			zap.String("geometrical_point_guid", m.GeometricGUID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mismatches, nil
}

// CheckRoomToRoomDetailRelationships checks the room GUID stored on each room detail.
func (c *Checker) CheckRoomToRoomDetailRelationships(ctx context.Context) ([]Mismatch, error) {
	return c.CheckPointToPolygonRelationship(ctx, c.layers.Room, c.layers.RoomDetail, c.layers.RoomDetailFields())
}

// CheckStationToStationDetailRelationships checks the station GUID stored on each station detail.
func (c *Checker) CheckStationToStationDetailRelationships(ctx context.Context) ([]Mismatch, error) {
	return c.CheckPointToPolygonRelationship(ctx, c.layers.Station, c.layers.StationDetail, c.layers.StationDetailFields())
}

// CheckRoomToStationRelationships reports every room whose stored station GUID differs from
// the station of the station detail polygon that contains it.
func (c *Checker) CheckRoomToStationRelationships(ctx context.Context) ([]Mismatch, error) {
	c.logger.Debug("Checking room-to-station relationships",
		zap.String("room", c.layers.Room),
		zap.String("station_detail", c.layers.StationDetail))

	mismatches := []Mismatch{}
	inputs := []string{c.layers.Room, c.layers.StationDetail}
	err := c.eachIntersection(ctx, inputs, c.layers.RoomStationFields(), func(row geodata.Row) error {
		logged, geometric, fidRoom := utils.ToString(row[0]), utils.ToString(row[1]), utils.ToInt64(row[2])
		if logged == geometric {
			return nil
		}

		room, err := c.ResolveGUID(ctx, c.layers.Room, geodata.ObjectIDEquals(fidRoom))
		if err != nil {
			return err
		}
		m := Mismatch{ContainerGUID: room, LoggedGUID: logged, GeometricGUID: geometric}
		mismatches = append(mismatches, m)
		c.logger.Warn("Invalid room-station relationship",
			zap.String("room_guid", m.ContainerGUID),
			zap.String("logical_station", m.LoggedGUID),
			zap.String("geometrical_station", m.GeometricGUID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mismatches, nil
}

// eachIntersection intersects inputs into a fresh scratch layer and calls visit for every
// row of fields. The scratch layer is deleted exactly once before returning. A delete
// failure is returned only when nothing else failed.
func (c *Checker) eachIntersection(ctx context.Context, inputs []string, fields [3]string, visit func(geodata.Row) error) (err error) {
	intersected, err := c.accessor.Intersect(ctx, inputs, ScratchBaseName+uuid.NewString())
	if err != nil {
		return err
	}
	c.logger.Debug("Intersect created", zap.String("layer", intersected), zap.Strings("inputs", inputs))

	defer func() {
		// Release even when ctx was cancelled mid-check.
		delErr := c.accessor.Delete(context.WithoutCancel(ctx), intersected)
		switch {
		case delErr == nil:
			c.logger.Debug("Deleted temporary intersect", zap.String("layer", intersected))
		case err == nil:
			err = delErr
		default:
			c.logger.Error("Failed to delete temporary intersect", zap.String("layer", intersected), zap.Error(delErr))
		}
	}()

	cur, err := c.accessor.SearchCursor(ctx, intersected, fields[:], geodata.NoFilter)
	if err != nil {
		return err
	}
	defer cur.Close()

	for cur.Next() {
		row := cur.Row()
		if len(row) < len(fields) {
			return fmt.Errorf("intersection row has %d values, expected %d", len(row), len(fields))
		}
		if err := visit(row); err != nil {
			return err
		}
	}
	return cur.Err()
}
