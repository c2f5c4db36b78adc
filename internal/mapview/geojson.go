package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON encodes v as a FeatureCollection: a Point per marker carrying
// stepId and popup, a LineString for the route, and a bbox when bounds are
// set. A reset view carries its center and zoom as foreign members.
func GeoJSON(v View) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, m := range v.Markers {
		f := geojson.NewFeature(orb.Point{m.Position.Lng, m.Position.Lat})
		f.Properties["stepId"] = m.StepID
		f.Properties["popup"] = m.Popup
		fc.Append(f)
	}

	if len(v.Route) >= 2 {
		ls := make(orb.LineString, len(v.Route))
		for i, p := range v.Route {
			ls[i] = orb.Point{p.Lng, p.Lat}
		}
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = "route"
		fc.Append(f)
	}

	if v.Bounds != nil {
		fc.BBox = geojson.NewBBox(orb.Bound{
			Min: orb.Point{v.Bounds.SouthWest.Lng, v.Bounds.SouthWest.Lat},
			Max: orb.Point{v.Bounds.NorthEast.Lng, v.Bounds.NorthEast.Lat},
		})
	}
	if v.Reset {
		fc.ExtraMembers = geojson.Properties{
			"center": []float64{v.Center.Lng, v.Center.Lat},
			"zoom":   v.Zoom,
		}
	}
	return fc
}
