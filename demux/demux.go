package demux

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/demux/encoding/fastq"
)

// Summary describes a completed run.
type Summary struct {
	Totals
	// Removed lists the output files deleted because their sample received
	// no reads.
	Removed []string
}

// inputs holds the four open input streams.
type inputs struct {
	files [nRole]file.File
	dec   [nRole]io.ReadCloser
	sc    *fastq.QuadScanner
}

func openInputs(ctx context.Context, m Manifest) (in *inputs, err error) {
	in = &inputs{}
	var readers [nRole]io.Reader
	for role, path := range m.Paths {
		f, err := file.Open(ctx, path)
		if err != nil {
			in.close(ctx)
			return nil, errors.E("open", Role(role).String(), "input", err)
		}
		in.files[role] = f
		readers[role] = f.Reader(ctx)
		if u := compress.NewReaderPath(readers[role], f.Name()); u != nil {
			in.dec[role] = u
			readers[role] = u
		}
	}
	in.sc = fastq.NewQuadScanner(readers[Read1], readers[Index1], readers[Index2], readers[Read2])
	return in, nil
}

func (in *inputs) close(ctx context.Context) error {
	once := errors.Once{}
	for role := range in.files {
		if in.dec[role] != nil {
			once.Set(in.dec[role].Close())
			in.dec[role] = nil
		}
		if in.files[role] != nil {
			once.Set(in.files[role].Close(ctx))
			in.files[role] = nil
		}
	}
	return once.Err()
}

func (o Opts) manifest(ctx context.Context) (Manifest, error) {
	if o.InputDir != "" {
		return DiscoverManifest(ctx, o.InputDir)
	}
	return NewManifest(o.R1, o.I1, o.I2, o.R2)
}

// Run demultiplexes the inputs named by opts into opts.OutputDir.
//
// Configuration problems (bad options, catalog or manifest) are reported
// with kind errors.Invalid before any output is created. If the input
// streams hold different numbers of records, Run stops with an error whose
// cause (github.com/pkg/errors.Cause) is fastq.ErrDiscordant. All files are
// closed on every return path; outputs written before a failure are left in
// place.
func Run(ctx context.Context, opts Opts) (sum Summary, err error) {
	if err = opts.validate(); err != nil {
		return
	}
	catalog, err := LoadCatalog(ctx, opts.CatalogPath)
	if err != nil {
		return
	}
	m, err := opts.manifest(ctx)
	if err != nil {
		return
	}
	for role, path := range m.Paths {
		log.Printf("%v: %s", Role(role), path)
	}
	in, err := openInputs(ctx, m)
	if err != nil {
		return
	}
	defer func() {
		if e := in.close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if !strings.Contains(opts.OutputDir, "://") {
		if err = os.MkdirAll(opts.OutputDir, 0777); err != nil {
			return
		}
	}
	r, err := newRouter(ctx, opts.OutputDir, m, catalog.Codes(), opts.GzipOutput)
	if err != nil {
		return
	}
	defer func() {
		if e := r.close(ctx); e != nil && err == nil {
			err = e
		}
	}()

	stats := NewStats(catalog)
	if err = demultiplex(in.sc, catalog, opts.QualityThreshold, r, stats); err != nil {
		return
	}
	if err = r.close(ctx); err != nil {
		return
	}
	for _, code := range stats.EmptyCodes() {
		seq, _ := catalog.Barcode(code)
		log.Printf("sample %s (%s) received no reads", code, seq)
	}
	if sum.Removed, err = r.finalize(ctx, stats); err != nil {
		return
	}
	if err = writeTable(ctx, joinPath(opts.OutputDir, MatchedCountsName), stats.WriteMatched); err != nil {
		return
	}
	if err = writeTable(ctx, joinPath(opts.OutputDir, MismatchedCountsName), stats.WriteMismatched); err != nil {
		return
	}
	sum.Totals = stats.Totals()
	log.Printf("unknown: %d", sum.Unknown)
	log.Printf("mismatched: %d", sum.Mismatched)
	log.Printf("matched: %d", sum.Matched)
	log.Printf("removed %d output files of samples with no reads", len(sum.Removed))
	return
}

// demultiplex runs the read, classify, route, count loop until the inputs
// are exhausted.
func demultiplex(sc *fastq.QuadScanner, catalog *Catalog, threshold int, r *router, stats *Stats) error {
	var (
		q Quartet
		n int64
	)
	for sc.Scan(&q.R1, &q.I1, &q.I2, &q.R2) {
		res := Classify(&q, catalog, threshold)
		if err := r.route(res, &q); err != nil {
			return err
		}
		stats.Record(res)
		n++
		if n%(1024*1024) == 0 {
			log.Printf("%dMi quartets: %v", n/(1024*1024), stats.Totals())
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	log.Printf("processed %d quartets", n)
	return nil
}

func writeTable(ctx context.Context, path string, write func(io.Writer) error) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E("create", path, err)
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if err = write(out.Writer(ctx)); err != nil {
		return errors.E("write", path, err)
	}
	return nil
}
