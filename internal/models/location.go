package models

// Coordinates is an optional geographic point attached to hotlines and
// incident locations
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Location is the normalized address shape stored on incident reports
type Location struct {
	Address     string       `bson:"address" json:"address"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// LocationInput accepts both intake shapes the portal's clients send:
// the nested coordinates object and the flat latitude/longitude pair.
type LocationInput struct {
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
}

// Normalize resolves the two intake shapes into the stored Location.
// The nested object wins when both are present.
func (in LocationInput) Normalize() Location {
	loc := Location{Address: in.Address}
	if in.Coordinates != nil {
		c := *in.Coordinates
		loc.Coordinates = &c
		return loc
	}
	if in.Latitude != nil && in.Longitude != nil {
		loc.Coordinates = &Coordinates{
			Latitude:  *in.Latitude,
			Longitude: *in.Longitude,
		}
	}
	return loc
}
