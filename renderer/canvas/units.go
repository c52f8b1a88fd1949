package canvasrenderer

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * PtToMm }
