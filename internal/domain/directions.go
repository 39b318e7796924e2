package domain

import "fmt"

// Location - адрес или координата; провайдер принимает оба варианта
type Location struct {
	Address    string      `json:"address,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

func (l Location) IsZero() bool {
	return l.Address == "" && l.Coordinate == nil
}

// String - формат параметра origin/destination провайдера
func (l Location) String() string {
	if l.Coordinate != nil {
		return fmt.Sprintf("%.6f,%.6f", l.Coordinate.Lat, l.Coordinate.Lng)
	}
	return l.Address
}

// DirectionsQuery - запрос маршрутов у провайдера
type DirectionsQuery struct {
	Origin       Location
	Destination  Location
	Waypoint     *Coordinate
	Alternatives bool
}
