// Package qualdist computes the per-position mean quality of a FASTQ file,
// the usual first look at a run before choosing an index quality
// threshold.
package qualdist

import (
	"context"
	"io"
	"strconv"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/demux/encoding/fastq"
	"github.com/grailbio/demux/sequtil"
)

// Dist accumulates Phred scores by read position. Reads may have different
// lengths; each position is averaged over the reads that cover it.
type Dist struct {
	sums   []int64
	counts []int64
	reads  int64
}

// Add adds the Phred+33 quality string of one read.
func (d *Dist) Add(qual string) {
	for len(d.sums) < len(qual) {
		d.sums = append(d.sums, 0)
		d.counts = append(d.counts, 0)
	}
	for i := 0; i < len(qual); i++ {
		d.sums[i] += int64(sequtil.Phred(qual[i]))
		d.counts[i]++
	}
	d.reads++
}

// Reads returns the number of reads added.
func (d *Dist) Reads() int64 { return d.reads }

// Means returns the mean Phred score at each position.
func (d *Dist) Means() []float64 {
	means := make([]float64, len(d.sums))
	for i, s := range d.sums {
		means[i] = float64(s) / float64(d.counts[i])
	}
	return means
}

// WriteTSV writes one "position\tmean" row per read position, with
// 0-based positions and means rounded to 3 decimals.
func (d *Dist) WriteTSV(w io.Writer) error {
	tw := tsv.NewWriter(w)
	tw.WriteString("position")
	tw.WriteString("mean_quality")
	if err := tw.EndLine(); err != nil {
		return err
	}
	for i, m := range d.Means() {
		tw.WriteString(strconv.Itoa(i))
		tw.WriteString(strconv.FormatFloat(m, 'f', 3, 64))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Compute reads FASTQ records from r and returns their distribution.
// Quality characters outside '!' to '~' are an errors.Invalid error.
func Compute(r io.Reader) (*Dist, error) {
	d := &Dist{}
	sc := fastq.NewScanner(r, fastq.Qual)
	var read fastq.Read
	for sc.Scan(&read) {
		if !sequtil.ValidQuality(read.Qual) {
			return nil, errors.E(errors.Invalid, "record", strconv.Itoa(sc.N()), "quality string is not Phred+33")
		}
		d.Add(read.Qual)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.E(errors.Invalid, "record", strconv.Itoa(sc.N()+1), err)
	}
	return d, nil
}

// ComputeFile is Compute on the FASTQ file at path, which is decompressed
// if its name ends with a compression extension such as ".gz".
func ComputeFile(ctx context.Context, path string) (d *Dist, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		defer u.Close() // nolint: errcheck
		r = u
	}
	if d, err = Compute(r); err != nil {
		return nil, errors.E(path, err)
	}
	return d, nil
}
