// Package mapview turns a trip into what a map widget should show: one marker
// per located step, a route line through them and the viewport to fit.
// Render is pure; Presenter drives any Canvas implementation with the result.
package mapview

import (
	"strings"

	"github.com/paulmach/orb"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// LatLng is a map position in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a lat/lng rectangle.
type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}

// Viewport defaults used when there is nothing to show (Brisbane).
var DefaultCenter = LatLng{Lat: -27.4705, Lng: 153.0260}

const (
	DefaultZoom = 6
	// BoundsPadding extends the fitted bounds by this fraction of their size on each side.
	BoundsPadding = 0.2
)

// Marker is one located step.
type Marker struct {
	StepID   string `json:"stepId"`
	Position LatLng `json:"position"`
	// Popup is HTML: the escaped step title in bold, a line break, the escaped label.
	Popup string `json:"popup"`
}

// View is the rendered map state for one trip.
type View struct {
	Markers []Marker `json:"markers"`
	// Route is nil unless there are at least two located steps.
	Route []LatLng `json:"route,omitempty"`
	// Bounds is nil when the view is reset.
	Bounds *Bounds `json:"bounds,omitempty"`
	Reset  bool    `json:"reset"`
	Center LatLng  `json:"center"`
	Zoom   int     `json:"zoom"`
}

// Render computes the view for trip. A nil trip, a trip without steps and a
// trip whose steps have no coordinates all reset to the default viewport.
func Render(trip *domain.Trip) View {
	v := View{Markers: []Marker{}}
	if trip != nil {
		for _, st := range trip.Steps {
			if !st.Place.HasCoordinates() {
				continue
			}
			v.Markers = append(v.Markers, Marker{
				StepID:   st.ID,
				Position: LatLng{Lat: *st.Place.Lat, Lng: *st.Place.Lng},
				Popup:    "<b>" + escapeHTML(st.DisplayTitle()) + "</b><br/>" + escapeHTML(st.Place.Label),
			})
		}
	}

	if len(v.Markers) == 0 {
		v.Reset = true
		v.Center = DefaultCenter
		v.Zoom = DefaultZoom
		return v
	}

	mp := make(orb.MultiPoint, 0, len(v.Markers))
	for _, m := range v.Markers {
		mp = append(mp, orb.Point{m.Position.Lng, m.Position.Lat})
	}
	if len(v.Markers) >= 2 {
		v.Route = make([]LatLng, len(v.Markers))
		for i, m := range v.Markers {
			v.Route[i] = m.Position
		}
	}

	b := pad(mp.Bound(), BoundsPadding)
	v.Bounds = &Bounds{
		SouthWest: LatLng{Lat: b.Min.Lat(), Lng: b.Min.Lon()},
		NorthEast: LatLng{Lat: b.Max.Lat(), Lng: b.Max.Lon()},
	}
	c := b.Center()
	v.Center = LatLng{Lat: c.Lat(), Lng: c.Lon()}
	return v
}

// pad grows b by ratio of its height and width on every side.
func pad(b orb.Bound, ratio float64) orb.Bound {
	dLat := (b.Max.Lat() - b.Min.Lat()) * ratio
	dLng := (b.Max.Lon() - b.Min.Lon()) * ratio
	return orb.Bound{
		Min: orb.Point{b.Min.Lon() - dLng, b.Min.Lat() - dLat},
		Max: orb.Point{b.Max.Lon() + dLng, b.Max.Lat() + dLat},
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
