package models

// ChartArtifact is a finished chart document.
type ChartArtifact struct {
	// Filename is the suggested download name, e.g. "Berachot-chazara-chart.xlsx".
	Filename string `json:"filename"`
	// MIMEType is the content type of Data.
	MIMEType string `json:"mime_type"`
	// Data holds the document bytes.
	Data []byte `json:"-"`
}
