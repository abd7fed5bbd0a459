package fan

// Bands is the number of generation bands.
const Bands = 4

// bandLimits are the first depths of bands 1, 2 and 3.
var bandLimits = [Bands - 1]int{1, 4, 8}

// Band returns the band of a generation depth: 0 for the root, 1 for depths
// 1-3, 2 for depths 4-7 and 3 beyond.
func Band(depth int) int {
	i := 0
	for i < len(bandLimits) && depth >= bandLimits[i] {
		i++
	}
	return i
}
