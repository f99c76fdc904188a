package demux

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/demux/sequtil"
)

// Catalog maps known barcode sequences to sample codes. It is immutable
// once loaded.
type Catalog struct {
	codes  []string          // in load order
	byseq  map[string]string // barcode -> code
	seqs   map[string]string // code -> barcode
	seqLen int
}

// LoadCatalog reads a catalog from a tab-separated file with two columns:
// sample code and barcode sequence. Lines starting with '#' are ignored.
// All errors are of kind errors.Invalid.
func LoadCatalog(ctx context.Context, path string) (c *Catalog, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(errors.Invalid, "open catalog", path, err)
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if c, err = ParseCatalog(in.Reader(ctx)); err != nil {
		return nil, errors.E(errors.Invalid, path, err)
	}
	log.Printf("loaded %d barcodes from %s", c.Len(), path)
	return c, nil
}

// ParseCatalog parses a catalog from r; see LoadCatalog for the format.
// Barcodes are upper-cased. Duplicate barcodes, duplicate codes, barcodes
// with characters other than ACGTN and barcodes of differing lengths are
// rejected. Codes name output files, so they may not contain path
// separators or equal "mismatched" or "unknown".
func ParseCatalog(r io.Reader) (*Catalog, error) {
	tr := tsv.NewReader(r)
	tr.Comment = '#'
	c := &Catalog{
		byseq:  map[string]string{},
		seqs:   map[string]string{},
		seqLen: -1,
	}
	var row struct {
		Code    string
		Barcode string
	}
	for n := 1; ; n++ {
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(errors.Invalid, fmt.Sprintf("catalog entry %d:", n), err)
		}
		code := strings.TrimSpace(row.Code)
		seq := strings.ToUpper(strings.TrimSpace(row.Barcode))
		switch {
		case code == "" || seq == "":
			return nil, errors.E(errors.Invalid, fmt.Sprintf("catalog entry %d: empty code or barcode", n))
		case code == mismatchedDest || code == unknownDest:
			return nil, errors.E(errors.Invalid, fmt.Sprintf("catalog entry %d: code %s is a reserved output name", n, code))
		case strings.ContainsAny(code, `/\`):
			return nil, errors.E(errors.Invalid, fmt.Sprintf("catalog entry %d: code %q contains a path separator", n, code))
		case !sequtil.IsACGTN(seq):
			return nil, errors.E(errors.Invalid, fmt.Sprintf("catalog entry %d: barcode %q is not a nucleotide sequence", n, seq))
		case c.seqLen >= 0 && len(seq) != c.seqLen:
			return nil, errors.E(errors.Invalid, fmt.Sprintf("catalog entry %d: barcode %s has length %d, other barcodes have length %d", n, seq, len(seq), c.seqLen))
		}
		if prev, ok := c.byseq[seq]; ok {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("catalog entry %d: duplicate barcode %s (also used by %s)", n, seq, prev))
		}
		if _, ok := c.seqs[code]; ok {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("catalog entry %d: duplicate code %s", n, code))
		}
		c.seqLen = len(seq)
		c.byseq[seq] = code
		c.seqs[code] = seq
		c.codes = append(c.codes, code)
	}
	if len(c.codes) == 0 {
		return nil, errors.E(errors.Invalid, "catalog has no entries")
	}
	return c, nil
}

// Lookup returns the sample code of barcode seq.
func (c *Catalog) Lookup(seq string) (code string, ok bool) {
	code, ok = c.byseq[seq]
	return
}

// Barcode returns the barcode sequence of a sample code.
func (c *Catalog) Barcode(code string) (seq string, ok bool) {
	seq, ok = c.seqs[code]
	return
}

// Codes returns the sample codes in load order. The caller must not modify
// the result.
func (c *Catalog) Codes() []string { return c.codes }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.codes) }
