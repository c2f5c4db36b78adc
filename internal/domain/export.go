package domain

// ExportRow is a single row in a trip export.
// It is a flat, denormalized view: one row per step, with trip fields repeated
// for every step on that trip. A trip with no steps yields one row with zero
// values for all step fields.
type ExportRow struct {
	// Trip fields, repeated for every step on the trip.
	TripID        string
	TripTitle     string
	TripStartDate string
	TripEndDate   string

	// Step fields; zero values when the trip has no steps.
	StepTitle     string
	PlaceLabel    string
	Lat           *float64
	Lng           *float64
	ArrivalDate   string
	DepartureDate string
	Notes         string
	PhotoCount    int
}

// ExportRows flattens a trip into export rows in itinerary order.
func ExportRows(t Trip) []ExportRow {
	base := ExportRow{
		TripID:        t.ID,
		TripTitle:     t.Title,
		TripStartDate: t.StartDate,
		TripEndDate:   t.EndDate,
	}
	if len(t.Steps) == 0 {
		return []ExportRow{base}
	}

	rows := make([]ExportRow, 0, len(t.Steps))
	for _, st := range t.Steps {
		r := base
		r.StepTitle = st.Title
		r.PlaceLabel = st.Place.Label
		r.Lat = st.Place.Lat
		r.Lng = st.Place.Lng
		r.ArrivalDate = st.ArrivalDate
		r.DepartureDate = st.DepartureDate
		r.Notes = st.Notes
		r.PhotoCount = len(st.Photos)
		rows = append(rows, r)
	}
	return rows
}
