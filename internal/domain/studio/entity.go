package studio

import (
	"context"

	"github.com/mwork/studiofinder/internal/pkg/geo"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}

func (c Coordinates) Position() geo.Position {
	return geo.Position{Latitude: c.Latitude, Longitude: c.Longitude}
}

// Location is where a studio is.
type Location struct {
	Area        string      `json:"Area"`
	Coordinates Coordinates `json:"Coordinates"`
}

// Availability is the daily opening window as "HH:MM" strings.
type Availability struct {
	Open  string `json:"Open"`
	Close string `json:"Close"`
}

// Studio is one rental studio as published by the catalog. Field names
// follow the catalog document.
type Studio struct {
	ID           int          `json:"Id"`
	Name         string       `json:"Name"`
	Type         string       `json:"Type"`
	Location     Location     `json:"Location"`
	Availability Availability `json:"Availability"`
}

// Source supplies the full studio catalog.
type Source interface {
	Studios(ctx context.Context) ([]Studio, error)
}
