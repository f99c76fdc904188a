package demux

import (
	"github.com/grailbio/demux/encoding/fastq"
	"github.com/grailbio/demux/sequtil"
)

// Category is the outcome of classifying a quartet.
type Category int

const (
	// Unknown means an index read is not in the catalog or has low
	// quality.
	Unknown Category = iota
	// Mismatched means both index reads are known but name different
	// barcodes.
	Mismatched
	// Matched means both index reads name the same known barcode.
	Matched
)

func (c Category) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case Mismatched:
		return "mismatched"
	case Matched:
		return "matched"
	}
	return "invalid"
}

// Quartet holds the records at the same position of the four input
// streams.
type Quartet struct {
	R1, I1, I2, R2 fastq.Read
}

// Pair is an unordered pair of barcode sequences. A <= B always holds, so
// {x,y} and {y,x} produce the same Pair.
type Pair struct {
	A, B string
}

// NewPair creates the canonical Pair of x and y.
func NewPair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{x, y}
}

func (p Pair) String() string { return p.A + "-" + p.B }

// Result is the classification of one quartet. Code is set only for
// Matched, and Pair only for Mismatched.
type Result struct {
	Category Category
	Code     string
	Pair     Pair
}

// Classify decides the category of q.
//
// Classify modifies q in place: the index2 sequence is replaced by its
// reverse complement, which is the value compared against the catalog and
// index1, and the read1 and read2 headers get the suffix
// ":<index1>-<index2>". Index1 is used as sequenced. A quartet is Unknown if
// the mean quality of either index read is below threshold or either index
// sequence is not in the catalog; otherwise it is Mismatched if the two
// sequences differ and Matched if they agree.
//
// Mismatched pairs are keyed by the index1 sequence and the
// reverse-complemented index2 sequence, i.e. the two values that were
// compared.
func Classify(q *Quartet, c *Catalog, threshold int) Result {
	q.I2.Seq = sequtil.ReverseComplement(q.I2.Seq)
	i1, i2 := q.I1.Seq, q.I2.Seq
	tag := ":" + i1 + "-" + i2
	q.R1.ID += tag
	q.R2.ID += tag

	t := float64(threshold)
	if sequtil.MeanQuality(q.I1.Qual) < t || sequtil.MeanQuality(q.I2.Qual) < t {
		return Result{Category: Unknown}
	}
	code, ok1 := c.Lookup(i1)
	_, ok2 := c.Lookup(i2)
	if !ok1 || !ok2 {
		return Result{Category: Unknown}
	}
	if i1 != i2 {
		return Result{Category: Mismatched, Pair: NewPair(i1, i2)}
	}
	return Result{Category: Matched, Code: code}
}
