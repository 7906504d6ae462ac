package notify

// Logger is the minimal logging interface required by publishers.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Assignment is the payload pushed to the winning provider after a request
// has been committed to them.
type Assignment struct {
	RequestID  int64   `json:"request_id"`
	Price      float64 `json:"price"`
	Address    string  `json:"address"`
	DistanceKm float64 `json:"distance_km"`
}
