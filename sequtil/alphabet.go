package sequtil

var isACGTN = [256]bool{
	'A': true, 'C': true, 'G': true, 'T': true, 'N': true,
	'a': true, 'c': true, 'g': true, 't': true, 'n': true,
}

// IsACGTN reports whether seq consists only of A, C, G, T and N, in either
// case.
func IsACGTN(seq string) bool {
	for i := 0; i < len(seq); i++ {
		if !isACGTN[seq[i]] {
			return false
		}
	}
	return true
}
