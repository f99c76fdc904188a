package demux

import (
	"strings"
	"testing"

	"github.com/grailbio/demux/encoding/fastq"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	c, err := ParseCatalog(strings.NewReader("B1\tAAAA\nB2\tGGGG\nB3\tCACA\n"))
	require.NoError(t, err)
	return c
}

func read(id, seq, qual string) fastq.Read {
	return fastq.Read{ID: id, Seq: seq, Unk: "+", Qual: qual}
}

func quartet(i1, i1q, i2, i2q string) Quartet {
	return Quartet{
		R1: read("@r 1:N:0", "ACGTACGT", "IIIIIIII"),
		I1: read("@r 2:N:0", i1, i1q),
		I2: read("@r 3:N:0", i2, i2q),
		R2: read("@r 4:N:0", "TTTTGGGG", "IIIIIIII"),
	}
}

func TestClassify(t *testing.T) {
	c := testCatalog(t)
	for _, test := range []struct {
		name       string
		q          Quartet
		threshold  int
		want       Result
		wantSuffix string
	}{
		{"matched", quartet("AAAA", "IIII", "TTTT", "IIII"), 30,
			Result{Category: Matched, Code: "B1"}, ":AAAA-AAAA"},
		{"index2 unknown", quartet("AAAA", "IIII", "GGGG", "IIII"), 30,
			Result{Category: Unknown}, ":AAAA-CCCC"},
		{"index2 unknown low quality", quartet("AAAA", "IIII", "GGGG", "####"), 30,
			Result{Category: Unknown}, ":AAAA-CCCC"},
		{"index1 unknown", quartet("TTTT", "IIII", "TTTT", "IIII"), 30,
			Result{Category: Unknown}, ":TTTT-AAAA"},
		{"mismatched", quartet("AAAA", "IIII", "CCCC", "IIII"), 30,
			Result{Category: Mismatched, Pair: Pair{"AAAA", "GGGG"}}, ":AAAA-GGGG"},
		{"mismatched reversed", quartet("GGGG", "IIII", "TTTT", "IIII"), 30,
			Result{Category: Mismatched, Pair: Pair{"AAAA", "GGGG"}}, ":GGGG-AAAA"},
		// '?' is phred 30.
		{"threshold inclusive", quartet("CACA", "????", "TGTG", "????"), 30,
			Result{Category: Matched, Code: "B3"}, ":CACA-CACA"},
		{"index1 below threshold", quartet("CACA", "???>", "TGTG", "????"), 30,
			Result{Category: Unknown}, ":CACA-CACA"},
		{"index2 below threshold", quartet("CACA", "????", "TGTG", ">>>>"), 30,
			Result{Category: Unknown}, ":CACA-CACA"},
		{"zero threshold", quartet("GGGG", "!!!!", "CCCC", "!!!!"), 0,
			Result{Category: Matched, Code: "B2"}, ":GGGG-GGGG"},
	} {
		t.Run(test.name, func(t *testing.T) {
			q := test.q
			rawI2 := q.I2.Seq
			expect.EQ(t, Classify(&q, c, test.threshold), test.want)
			expect.EQ(t, q.R1.ID, "@r 1:N:0"+test.wantSuffix)
			expect.EQ(t, q.R2.ID, "@r 4:N:0"+test.wantSuffix)
			expect.EQ(t, q.I1.ID, "@r 2:N:0")
			expect.EQ(t, q.I2.ID, "@r 3:N:0")
			expect.EQ(t, q.I2.Seq, reverseComplementForTest(rawI2))
			expect.EQ(t, q.I1.Seq, test.q.I1.Seq)
		})
	}
}

func reverseComplementForTest(s string) string {
	comp := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'N': 'N'}
	b := make([]byte, len(s))
	for i := range s {
		b[len(s)-1-i] = comp[s[i]]
	}
	return string(b)
}

func TestNewPair(t *testing.T) {
	expect.EQ(t, NewPair("GGGG", "AAAA"), Pair{"AAAA", "GGGG"})
	expect.EQ(t, NewPair("AAAA", "GGGG"), NewPair("GGGG", "AAAA"))
	expect.EQ(t, NewPair("AAAA", "GGGG").String(), "AAAA-GGGG")
}

func TestCategoryString(t *testing.T) {
	expect.EQ(t, Matched.String(), "matched")
	expect.EQ(t, Mismatched.String(), "mismatched")
	expect.EQ(t, Unknown.String(), "unknown")
}
