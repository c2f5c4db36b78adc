package flights

import "strconv"

// Offer is the compact form of a provider flight offer.
type Offer struct {
	ID                     string      `json:"id"`
	Price                  *float64    `json:"price"`
	Currency               string      `json:"currency"`
	OneWay                 *bool       `json:"oneWay"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
	Itineraries            []Itinerary `json:"itineraries"`
}

// Itinerary is one direction of travel.
type Itinerary struct {
	Duration   string    `json:"duration,omitempty"`
	Segments   []Segment `json:"segments"`
	StopsTotal int       `json:"stopsTotal"`
}

// Segment is a single flight leg.
type Segment struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	DepartAt string `json:"departAt,omitempty"`
	ArriveAt string `json:"arriveAt,omitempty"`
	Carrier  string `json:"carrier,omitempty"`
	Number   string `json:"number,omitempty"`
	Duration string `json:"duration,omitempty"`
	Stops    int    `json:"stops"`
}

// DefaultCurrency is reported when an offer carries no currency.
const DefaultCurrency = "USD"

func simplify(o rawOffer) Offer {
	out := Offer{
		ID:                     o.ID,
		Currency:               o.Price.Currency,
		OneWay:                 o.OneWay,
		ValidatingAirlineCodes: o.ValidatingAirlineCodes,
		Itineraries:            make([]Itinerary, 0, len(o.Itineraries)),
	}
	if out.Currency == "" {
		out.Currency = DefaultCurrency
	}
	if out.ValidatingAirlineCodes == nil {
		out.ValidatingAirlineCodes = []string{}
	}
	if o.Price.Total != "" {
		if f, err := strconv.ParseFloat(o.Price.Total, 64); err == nil {
			out.Price = &f
		}
	}

	for _, it := range o.Itineraries {
		segs := make([]Segment, 0, len(it.Segments))
		for _, s := range it.Segments {
			seg := Segment{
				From:     s.Departure.IATACode,
				To:       s.Arrival.IATACode,
				DepartAt: s.Departure.At,
				ArriveAt: s.Arrival.At,
				Carrier:  s.CarrierCode,
				Number:   s.Number,
				Duration: s.Duration,
			}
			if s.NumberOfStops != nil {
				seg.Stops = *s.NumberOfStops
			}
			segs = append(segs, seg)
		}
		out.Itineraries = append(out.Itineraries, Itinerary{
			Duration:   it.Duration,
			Segments:   segs,
			StopsTotal: max(0, len(segs)-1),
		})
	}
	return out
}
