// Package export renders plain result rows into downloadable formats. The
// core pipeline only supplies code, name, quantity and unit; all formatting
// lives here.
package export

// Row is the shape every exporter consumes.
type Row struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}
