package convert

import "github.com/Faultbox/rbxvmf/pkg/vmf"

// sphereFace is the displacement patch approximating one face of a sphere.
// Offsets are in thousandths of the part size and scaled per component.
type sphereFace struct {
	offsets       [5][15]float64
	offsetNormals [5][15]float64
}

var sphereFaces = [...]sphereFace{
	vmf.XPos: {
		offsets: [5][15]float64{
			{-237.861, 237.861, 237.861, -201.755, 92.3116, 201.755, -183.246, 0.0, 183.246, -201.755, -92.3116, 201.755, -237.861, -237.861, 237.861},
			{-201.755, 201.755, 92.3116, -125.21, 84.672, 84.6719, -100.481, 0.0, 77.4723, -125.21, -84.6719, 84.6719, -201.755, -201.755, 92.3116},
			{-183.246, 183.246, 0.0, -100.481, 77.4723, 0.0, -69.1808, 0.0, 0.0, -100.481, -77.4723, 0.0, -183.246, -183.246, 0.0},
			{-201.755, 201.755, -92.3116, -125.21, 84.672, -84.672, -100.481, 0.0, -77.4723, -125.21, -84.672, -84.672, -201.755, -201.755, -92.3116},
			{-237.861, 237.861, -237.861, -201.755, 92.3116, -201.755, -183.246, 0.0, -183.246, -201.755, -92.3116, -201.755, -237.861, -237.861, -237.861},
		},
		offsetNormals: [5][15]float64{
			{0.563819, -0.563819, -0.563819, 0.653738, -0.305397, -0.658052, 0.690534, 0.0, -0.690534, 0.655635, 0.303805, -0.656901, 0.563819, 0.563819, -0.563819},
			{0.656901, -0.655635, -0.303805, 0.890386, -0.296795, -0.269814, 0.917459, -0.00062678, -0.334578, 0.883334, 0.294445, -0.294445, 0.649801, 0.662669, -0.303812},
			{0.690534, -0.690534, 0.0, 0.918221, -0.332479, -0.00122529, 0.976562, 0.0, 0.0, 0.917459, 0.334578, 0.00062678, 0.690534, 0.690534, 0.0},
			{0.658053, -0.653738, 0.305397, 0.901673, -0.265198, 0.265198, 0.918221, 0.00122529, 0.332479, 0.890386, 0.269814, 0.296795, 0.65954, 0.652252, 0.305366},
			{0.563819, -0.563819, 0.563819, 0.662669, -0.303812, 0.649801, 0.690534, 0.0, 0.690534, 0.652252, 0.305367, 0.65954, 0.563819, 0.563819, 0.563819},
		},
	},
	vmf.XNeg: {
		offsets: [5][15]float64{
			{237.861, 237.861, 237.861, 201.755, 201.755, 92.3116, 183.246, 183.246, 0.0, 201.755, 201.755, -92.3116, 237.861, 237.861, -237.861},
			{201.755, 92.3116, 201.755, 125.211, 84.672, 84.6719, 100.481, 77.4723, 0.0, 125.211, 84.672, -84.672, 201.755, 92.3116, -201.755},
			{183.246, 0.0, 183.246, 100.481, 0.0, 77.4723, 69.181, 0.0, 0.0, 100.481, 0.0, -77.4723, 183.246, 0.0, -183.246},
			{201.755, -92.3116, 201.755, 125.211, -84.672, 84.6719, 100.481, -77.4723, 0.0, 125.211, -84.672, -84.672, 201.755, -92.3116, -201.755},
			{237.861, -237.861, 237.861, 201.755, -201.755, 92.3116, 183.246, -183.246, 0.0, 201.755, -201.755, -92.3116, 237.861, -237.861, -237.861},
		},
		offsetNormals: [5][15]float64{
			{-0.563819, -0.563819, -0.563819, -0.65954, -0.652252, -0.305366, -0.690534, -0.690534, 0.0, -0.649801, -0.662669, 0.303812, -0.563819, -0.563819, 0.563819},
			{-0.652252, -0.305367, -0.65954, -0.890386, -0.269814, -0.296795, -0.917459, -0.334578, -0.00062678, -0.883334, -0.294445, 0.294445, -0.655635, -0.303805, 0.656901},
			{-0.690534, 0.0, -0.690534, -0.918221, -0.0012253, -0.332479, -0.976562, 0.0, 0.0, -0.917459, 0.000626779, 0.334578, -0.690534, 0.0, 0.690534},
			{-0.662669, 0.303812, -0.649801, -0.901673, 0.265198, -0.265198, -0.918221, 0.332479, 0.00122528, -0.890386, 0.296795, 0.269814, -0.653738, 0.305397, 0.658053},
			{-0.563819, 0.563819, -0.563819, -0.658053, 0.653738, -0.305397, -0.690534, 0.690534, 0.0, -0.656901, 0.655635, 0.303805, -0.563819, 0.563819, 0.563819},
		},
	},
	vmf.ZPos: {
		offsets: [5][15]float64{
			{237.861, 237.861, 237.861, 92.3116, 201.755, 201.755, 0.0, 183.246, 183.246, -92.3116, 201.755, 201.755, -237.861, 237.861, 237.861},
			{201.755, 201.755, 92.3116, 84.6719, 125.21, 84.6719, 0.0, 100.481, 77.4723, -84.672, 125.21, 84.6719, -201.755, 201.755, 92.3116},
			{183.246, 183.246, 0.0, 77.4723, 100.481, 0.0, 0.0, 69.1808, 0.0, -77.4723, 100.481, 0.0, -183.246, 183.246, 0.0},
			{201.755, 201.755, -92.3116, 84.672, 125.21, -84.672, 0.0, 100.481, -77.4723, -84.672, 125.21, -84.672, -201.755, 201.755, -92.3116},
			{237.861, 237.861, -237.861, 92.3116, 201.755, -201.755, 0.0, 183.246, -183.246, -92.3116, 201.755, -201.755, -237.861, 237.861, -237.861},
		},
		offsetNormals: [5][15]float64{
			{-0.563819, -0.563819, -0.563819, -0.305367, -0.65954, -0.652252, 0.0, -0.690534, -0.690534, 0.303813, -0.649801, -0.662669, 0.563819, -0.563819, -0.563819},
			{-0.65954, -0.652252, -0.305366, -0.296795, -0.890386, -0.269814, -0.00062678, -0.917459, -0.334578, 0.294445, -0.883334, -0.294445, 0.656901, -0.655635, -0.303805},
			{-0.690534, -0.690534, 0.0, -0.332479, -0.918221, -0.0012253, 0.0, -0.976562, 0.0, 0.334578, -0.917459, 0.00062678, 0.690534, -0.690534, 0.0},
			{-0.649801, -0.662669, 0.303812, -0.265198, -0.901673, 0.265198, 0.00122531, -0.918221, 0.332479, 0.269814, -0.890386, 0.296795, 0.658053, -0.653738, 0.305397},
			{-0.563819, -0.563819, 0.563819, -0.305397, -0.658052, 0.653738, 0.0, -0.690534, 0.690534, 0.303805, -0.656901, 0.655635, 0.563819, -0.563819, 0.563819},
		},
	},
	vmf.ZNeg: {
		offsets: [5][15]float64{
			{237.861, -237.861, 237.861, 201.755, -201.755, 92.3116, 183.246, -183.246, 0.0, 201.755, -201.755, -92.3116, 237.861, -237.861, -237.861},
			{92.3116, -201.755, 201.755, 84.672, -125.211, 84.6719, 77.4723, -100.481, 0.0, 84.6719, -125.211, -84.672, 92.3116, -201.755, -201.755},
			{0.0, -183.246, 183.246, 0.0, -100.481, 77.4723, 0.0, -69.181, 0.0, 0.0, -100.481, -77.4723, 0.0, -183.246, -183.246},
			{-92.3116, -201.755, 201.755, -84.672, -125.211, 84.6719, -77.4723, -100.481, 0.0, -84.672, -125.211, -84.672, -92.3116, -201.755, -201.755},
			{-237.861, -237.861, 237.861, -201.755, -201.755, 92.3116, -183.246, -183.246, 0.0, -201.755, -201.755, -92.3116, -237.861, -237.861, -237.861},
		},
		offsetNormals: [5][15]float64{
			{-0.563819, 0.563819, -0.563819, -0.658053, 0.653738, -0.305397, -0.690534, 0.690534, 0.0, -0.656901, 0.655635, 0.303805, -0.563819, 0.563819, 0.563819},
			{-0.303805, 0.656901, -0.655635, -0.269814, 0.890386, -0.296795, -0.334578, 0.917459, -0.00062678, -0.294445, 0.883334, 0.294445, -0.303812, 0.649801, 0.662669},
			{0.0, 0.690534, -0.690534, -0.00122528, 0.918221, -0.332479, 0.0, 0.976562, 0.0, 0.00062678, 0.917459, 0.334578, 0.0, 0.690534, 0.690534},
			{0.305397, 0.658053, -0.653738, 0.265198, 0.901673, -0.265198, 0.332479, 0.918221, 0.00122528, 0.296795, 0.890386, 0.269814, 0.305366, 0.65954, 0.652252},
			{0.563819, 0.563819, -0.563819, 0.649801, 0.662669, -0.303812, 0.690534, 0.690534, 0.0, 0.65954, 0.652252, 0.305366, 0.563819, 0.563819, 0.563819},
		},
	},
	vmf.YPos: {
		offsets: [5][15]float64{
			{237.861, 237.861, -237.861, 92.3116, 201.755, -201.755, 0.0, 183.246, -183.246, -92.3116, 201.755, -201.755, -237.861, 237.861, -237.861},
			{201.755, 92.3116, -201.755, 84.6719, 84.672, -125.211, 0.0, 77.4723, -100.481, -84.672, 84.672, -125.21, -201.755, 92.3116, -201.755},
			{183.246, 0.0, -183.246, 77.4723, 0.0, -100.481, 0.0, 0.0, -69.1809, -77.4723, 0.0, -100.481, -183.246, 0.0, -183.246},
			{201.755, -92.3116, -201.755, 84.672, -84.672, -125.211, 0.0, -77.4723, -100.481, -84.672, -84.672, -125.21, -201.755, -92.3116, -201.755},
			{237.861, -237.861, -237.861, 92.3116, -201.755, -201.755, 0.0, -183.246, -183.246, -92.3116, -201.755, -201.755, -237.861, -237.861, -237.861},
		},
		offsetNormals: [5][15]float64{
			{-0.563819, -0.563819, 0.563819, -0.305397, -0.658052, 0.653738, 0.0, -0.690534, 0.690534, 0.303805, -0.656901, 0.655635, 0.563819, -0.563819, 0.563819},
			{-0.655635, -0.303805, 0.656901, -0.296795, -0.269814, 0.890386, -0.00062678, -0.334578, 0.917459, 0.294445, -0.294445, 0.883334, 0.662669, -0.303812, 0.649801},
			{-0.690534, 0.0, 0.690534, -0.332479, -0.00122531, 0.918221, 0.0, 0.0, 0.976562, 0.334578, 0.00062678, 0.917459, 0.690534, 0.0, 0.690534},
			{-0.653738, 0.305397, 0.658053, -0.265198, 0.265198, 0.901673, 0.00122531, 0.332479, 0.918221, 0.269814, 0.296795, 0.890386, 0.652252, 0.305367, 0.65954},
			{-0.563819, 0.563819, 0.563819, -0.303812, 0.649801, 0.662669, 0.0, 0.690534, 0.690534, 0.305366, 0.65954, 0.652252, 0.563819, 0.563819, 0.563819},
		},
	},
	vmf.YNeg: {
		offsets: [5][15]float64{
			{237.861, 237.861, 237.861, 201.755, 92.3116, 201.755, 183.246, 0.0, 183.246, 201.755, -92.3116, 201.755, 237.861, -237.861, 237.861},
			{92.3116, 201.755, 201.755, 84.672, 84.672, 125.21, 77.4723, 0.0, 100.481, 84.6719, -84.6719, 125.21, 92.3116, -201.755, 201.755},
			{0.0, 183.246, 183.246, 0.0, 77.4723, 100.481, 0.0, 0.0, 69.1808, 0.0, -77.4723, 100.481, 0.0, -183.246, 183.246},
			{-92.3116, 201.755, 201.755, -84.672, 84.672, 125.21, -77.4723, 0.0, 100.481, -84.672, -84.672, 125.21, -92.3116, -201.755, 201.755},
			{-237.861, 237.861, 237.861, -201.755, 92.3116, 201.755, -183.246, 0.0, 183.246, -201.755, -92.3116, 201.755, -237.861, -237.861, 237.861},
		},
		offsetNormals: [5][15]float64{
			{-0.563819, -0.563819, -0.563819, -0.652252, -0.305367, -0.65954, -0.690534, 0.0, -0.690534, -0.662669, 0.303812, -0.649801, -0.563819, 0.563819, -0.563819},
			{-0.305367, -0.65954, -0.652252, -0.269814, -0.296795, -0.890386, -0.334578, -0.00062678, -0.917459, -0.294445, 0.294445, -0.883334, -0.303805, 0.656901, -0.655635},
			{0.0, -0.690534, -0.690534, -0.00122527, -0.332479, -0.918221, 0.0, 0.0, -0.976562, 0.00062678, 0.334578, -0.917459, 0.0, 0.690534, -0.690534},
			{0.303813, -0.649801, -0.662669, 0.265198, -0.265198, -0.901673, 0.332479, 0.00122528, -0.918221, 0.296795, 0.269814, -0.890386, 0.305397, 0.658053, -0.653738},
			{0.563819, -0.563819, -0.563819, 0.653738, -0.305397, -0.658052, 0.690534, 0.0, -0.690534, 0.655635, 0.303805, -0.656901, 0.563819, 0.563819, -0.563819},
		},
	},
}
