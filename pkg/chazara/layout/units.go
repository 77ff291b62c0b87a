package layout

// PointsPerInch is the PDF user space resolution.
// 1 inch = 72 points, 1 inch = 25.4 mm
// Therefore: 72 / 25.4 points per millimetre
const PointsPerInch = 72

// MMToPoints converts millimetres to PDF points.
// Paper sizes are defined in millimetres; the page planner works in points.
func MMToPoints(mm float64) float64 {
	return mm * PointsPerInch / 25.4
}

// A4 paper size in millimetres (portrait).
const (
	A4WidthMM  = 210
	A4HeightMM = 297
)
