package sequtil

// PhredOffset is the ASCII offset of Phred+33 encoded quality strings.
const PhredOffset = 33

// Phred decodes a single Phred+33 quality character.
func Phred(c byte) int {
	return int(c) - PhredOffset
}

// MeanQuality returns the average Phred score of a Phred+33 quality
// string. It returns 0 for an empty string.
func MeanQuality(qual string) float64 {
	if len(qual) == 0 {
		return 0
	}
	sum := 0
	for i := 0; i < len(qual); i++ {
		sum += Phred(qual[i])
	}
	return float64(sum) / float64(len(qual))
}

// ValidQuality reports whether every character of qual lies in the
// printable Phred+33 range ('!' to '~').
func ValidQuality(qual string) bool {
	for i := 0; i < len(qual); i++ {
		if qual[i] < '!' || qual[i] > '~' {
			return false
		}
	}
	return true
}
