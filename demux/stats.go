package demux

import (
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
)

// Stats counts classified quartets. Every catalog code starts at zero;
// mismatch pairs are added as they are seen.
type Stats struct {
	catalog    *Catalog
	matched    map[string]int64
	mismatched map[Pair]int64
	unknown    int64
}

// Totals summarizes a run.
type Totals struct {
	Matched, Mismatched, Unknown int64
}

// Total returns the number of quartets counted.
func (t Totals) Total() int64 { return t.Matched + t.Mismatched + t.Unknown }

func (t Totals) String() string {
	return fmt.Sprintf("%d quartets: %d matched, %d mismatched, %d unknown",
		t.Total(), t.Matched, t.Mismatched, t.Unknown)
}

// NewStats creates empty counters for the codes of c.
func NewStats(c *Catalog) *Stats {
	s := &Stats{
		catalog:    c,
		matched:    make(map[string]int64, c.Len()),
		mismatched: map[Pair]int64{},
	}
	for _, code := range c.Codes() {
		s.matched[code] = 0
	}
	return s
}

// Record adds one quartet with the given result. It panics if a Matched
// result names a code missing from the catalog.
func (s *Stats) Record(r Result) {
	switch r.Category {
	case Matched:
		if _, ok := s.matched[r.Code]; !ok {
			panic(fmt.Sprintf("record: unknown code %q", r.Code))
		}
		s.matched[r.Code]++
	case Mismatched:
		s.mismatched[r.Pair]++
	default:
		s.unknown++
	}
}

// Matched returns the number of quartets matched to code.
func (s *Stats) Matched(code string) int64 { return s.matched[code] }

// Mismatched returns the number of quartets whose index reads formed the
// pair p.
func (s *Stats) Mismatched(p Pair) int64 { return s.mismatched[p] }

// Unknown returns the number of unknown quartets.
func (s *Stats) Unknown() int64 { return s.unknown }

// Totals returns the per-category sums.
func (s *Stats) Totals() Totals {
	t := Totals{Unknown: s.unknown}
	for _, n := range s.matched {
		t.Matched += n
	}
	for _, n := range s.mismatched {
		t.Mismatched += n
	}
	return t
}

// EmptyCodes returns the codes with no matched quartets, in catalog order.
func (s *Stats) EmptyCodes() []string {
	var codes []string
	for _, code := range s.catalog.Codes() {
		if s.matched[code] == 0 {
			codes = append(codes, code)
		}
	}
	return codes
}

// WriteMatched writes the per-sample table: one row per catalog code with
// its count and its share of all matched quartets, in percent.
func (s *Stats) WriteMatched(w io.Writer) error {
	total := s.Totals().Matched
	tw := tsv.NewWriter(w)
	tw.WriteString("Index")
	tw.WriteString("Occurrences")
	tw.WriteString("Percent of Successfully Demultiplexed Reads")
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, code := range s.catalog.Codes() {
		n := s.matched[code]
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		tw.WriteString(code)
		tw.WriteString(strconv.FormatInt(n, 10))
		tw.WriteString(strconv.FormatFloat(pct, 'f', 2, 64))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// matrix folds the mismatch pairs into a code-by-code matrix indexed in
// catalog order. Both cells of a pair hold its count.
func (s *Stats) matrix() [][]int64 {
	index := make(map[string]int, s.catalog.Len())
	for i, code := range s.catalog.Codes() {
		index[code] = i
	}
	m := make([][]int64, s.catalog.Len())
	for i := range m {
		m[i] = make([]int64, s.catalog.Len())
	}
	for p, n := range s.mismatched {
		ca, okA := s.catalog.Lookup(p.A)
		cb, okB := s.catalog.Lookup(p.B)
		if !okA || !okB {
			panic(fmt.Sprintf("mismatch pair %v is not in the catalog", p))
		}
		i, j := index[ca], index[cb]
		m[i][j] += n
		if i != j {
			m[j][i] += n
		}
	}
	return m
}

// WriteMismatched writes the index-hopping matrix. The header row is "i,j"
// followed by the catalog codes; each following row starts with a code.
// Cell [i][j] counts mismatched quartets whose index reads were the
// barcodes of codes i and j, in either order.
func (s *Stats) WriteMismatched(w io.Writer) error {
	codes := s.catalog.Codes()
	tw := tsv.NewWriter(w)
	tw.WriteString("i,j")
	for _, code := range codes {
		tw.WriteString(code)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for i, row := range s.matrix() {
		tw.WriteString(codes[i])
		for _, n := range row {
			tw.WriteString(strconv.FormatInt(n, 10))
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
