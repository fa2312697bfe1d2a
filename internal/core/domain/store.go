package domain

type Coordinate struct {
	Lat float64
	Lng float64
}

// Store is a nearby shop returned by the places provider.
type Store struct {
	DisplayName string
	Address     string
	Rating      *float64
}
