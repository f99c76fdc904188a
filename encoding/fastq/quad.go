package fastq

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// StreamNames names the four streams of a dual-indexed run, in the order
// QuadScanner takes them.
var StreamNames = [4]string{"read1", "index1", "index2", "read2"}

// QuadScanner reads four FASTQ streams in lockstep: the n'th call to Scan
// fills the n'th record of every stream. It is the four-stream analog of a
// pair scanner for runs that carry both index reads as separate files.
//
// A QuadScanner ends in one of three states, observable through Scan and
// Err: Scan returned true (a full quartet was read), Scan returned false
// and Err is nil (all four streams ended together), or Scan returned false
// and Err is non-nil. When the streams end at different records, Err
// returns an error whose cause is ErrDiscordant.
type QuadScanner struct {
	s   [4]*Scanner
	err error
}

// NewQuadScanner creates a scanner over the read1, index1, index2 and read2
// streams. All fields are filled.
func NewQuadScanner(r1, i1, i2, r2 io.Reader) *QuadScanner {
	q := &QuadScanner{}
	for i, r := range []io.Reader{r1, i1, i2, r2} {
		q.s[i] = NewScanner(r, All)
	}
	return q
}

// Scan reads the next record of each stream into r1, i1, i2 and r2. Once
// Scan returns false, it never returns true again.
func (q *QuadScanner) Scan(r1, i1, i2, r2 *Read) bool {
	if q.err != nil {
		return false
	}
	var ok [4]bool
	for i, r := range []*Read{r1, i1, i2, r2} {
		ok[i] = q.s[i].Scan(r)
	}
	if ok[0] && ok[1] && ok[2] && ok[3] {
		return true
	}
	for i, s := range q.s {
		if err := s.Err(); err != nil {
			q.err = errors.Wrapf(err, "%s record %d", StreamNames[i], s.N()+1)
			return false
		}
	}
	if ok[0] || ok[1] || ok[2] || ok[3] {
		q.err = discordant(ok, q.N())
		return false
	}
	q.err = io.EOF
	return false
}

func discordant(ok [4]bool, n int) error {
	var ended, live []string
	for i, o := range ok {
		if o {
			live = append(live, StreamNames[i])
		} else {
			ended = append(ended, StreamNames[i])
		}
	}
	return errors.Wrapf(ErrDiscordant, "%s ended while %s continued (after %d records)",
		strings.Join(ended, ","), strings.Join(live, ","), n)
}

// N returns the number of complete quartets scanned so far.
func (q *QuadScanner) N() int {
	n := q.s[0].N()
	for _, s := range q.s[1:] {
		if s.N() < n {
			n = s.N()
		}
	}
	return n
}

// Err returns the scanning error, if any. It should be checked after Scan
// returns false.
func (q *QuadScanner) Err() error {
	if q.err == io.EOF {
		return nil
	}
	return q.err
}
