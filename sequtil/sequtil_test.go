package sequtil_test

import (
	"testing"

	"github.com/grailbio/demux/sequtil"
	"github.com/grailbio/testutil/expect"
)

func TestReverseComplement(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{"", ""},
		{"A", "T"},
		{"ACTGGT", "ACCAGT"},
		{"NNNTCGA", "TCGANNN"},
		{"acgtn", "NACGT"},
		{"TTTT", "AAAA"},
		{"AXG", "CNT"},
	} {
		expect.EQ(t, sequtil.ReverseComplement(test.in), test.want)
	}
}

func TestReverseComp8Inplace(t *testing.T) {
	b := []byte("GATTACA")
	sequtil.ReverseComp8Inplace(b)
	expect.EQ(t, string(b), "TGTAATC")
}

func TestPhred(t *testing.T) {
	for c, want := range map[byte]int{'I': 40, 'C': 34, '2': 17, '@': 31, '$': 3, '!': 0} {
		expect.EQ(t, sequtil.Phred(c), want)
	}
}

func TestMeanQuality(t *testing.T) {
	expect.EQ(t, sequtil.MeanQuality("IIII"), 40.0)
	expect.EQ(t, sequtil.MeanQuality("I#"), 21.0)
	expect.EQ(t, sequtil.MeanQuality(""), 0.0)
}

func TestValidQuality(t *testing.T) {
	expect.True(t, sequtil.ValidQuality("!I~"))
	expect.False(t, sequtil.ValidQuality("II I"))
}

func TestIsACGTN(t *testing.T) {
	expect.True(t, sequtil.IsACGTN("ACGTNacgtn"))
	expect.True(t, sequtil.IsACGTN(""))
	expect.False(t, sequtil.IsACGTN("ACGU"))
	expect.False(t, sequtil.IsACGTN("FGGG"))
}
