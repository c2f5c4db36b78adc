package mapview

import "github.com/pkordes/travel-journal/backend/internal/domain"

// Canvas is the drawing surface a Presenter controls, typically a map widget
// bridge. Implementations need not be safe for concurrent use.
type Canvas interface {
	Clear()
	AddMarker(m Marker, onClick func())
	DrawRoute(points []LatLng)
	FitBounds(b Bounds)
	SetView(center LatLng, zoom int)
}

// Presenter binds one Canvas to the journal's selection callback.
type Presenter struct {
	canvas   Canvas
	onSelect func(stepID string)
}

// NewPresenter returns a Presenter. onSelect receives the step id of a
// clicked marker and may be nil.
func NewPresenter(c Canvas, onSelect func(stepID string)) *Presenter {
	return &Presenter{canvas: c, onSelect: onSelect}
}

// Show clears the canvas and draws trip.
func (p *Presenter) Show(trip *domain.Trip) View {
	v := Render(trip)
	p.canvas.Clear()

	if v.Reset {
		p.canvas.SetView(v.Center, v.Zoom)
		return v
	}

	for _, m := range v.Markers {
		id := m.StepID
		p.canvas.AddMarker(m, func() {
			if p.onSelect != nil {
				p.onSelect(id)
			}
		})
	}
	if v.Route != nil {
		p.canvas.DrawRoute(v.Route)
	}
	p.canvas.FitBounds(*v.Bounds)
	return v
}
