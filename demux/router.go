package demux

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/demux/encoding/fastq"
	"github.com/klauspost/compress/gzip"
)

const (
	mismatchedDest = "mismatched"
	unknownDest    = "unknown"
)

// output is one output file.
type output struct {
	path string
	f    file.File
	gz   *gzip.Writer
	w    *fastq.Writer
}

func createOutput(ctx context.Context, path string, compress bool) (*output, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E("create", path, err)
	}
	o := &output{path: path, f: f}
	var w io.Writer = f.Writer(ctx)
	if compress {
		o.gz = gzip.NewWriter(w)
		w = o.gz
	}
	o.w = fastq.NewWriter(w)
	return o, nil
}

func (o *output) close(ctx context.Context) error {
	once := errors.Once{}
	once.Set(o.w.Flush())
	if o.gz != nil {
		once.Set(o.gz.Close())
	}
	once.Set(o.f.Close(ctx))
	log.Debug.Printf("%s: %d records", o.path, o.w.N())
	return once.Err()
}

// joinPath joins a directory, which may be a URL such as s3://bucket/dir,
// and a base name.
func joinPath(dir, name string) string {
	return strings.TrimRight(dir, "/") + "/" + name
}

// channel is the read1/read2 output pair of one destination.
type channel struct {
	r1, r2 *output
}

// router owns every output file of a run. All files are created up front
// so that every destination exists even if it receives no reads.
type router struct {
	dir      string
	channels map[string]*channel
	order    []string // destinations in creation order
	closed   bool
}

// newRouter creates the read1/read2 files of every code plus the mismatched
// and unknown destinations under dir. On error, files created so far are
// closed.
func newRouter(ctx context.Context, dir string, m Manifest, codes []string, compress bool) (*router, error) {
	r := &router{dir: dir, channels: make(map[string]*channel, len(codes)+2)}
	dests := append(append([]string{}, codes...), mismatchedDest, unknownDest)
	for _, dest := range dests {
		if _, ok := r.channels[dest]; ok {
			r.close(ctx)
			return nil, errors.E(errors.Invalid, "sample code", dest, "collides with a reserved output name")
		}
		ch := &channel{}
		var err error
		if ch.r1, err = createOutput(ctx, joinPath(dir, m.outputName(1, dest, compress)), compress); err == nil {
			if ch.r2, err = createOutput(ctx, joinPath(dir, m.outputName(2, dest, compress)), compress); err != nil {
				_ = ch.r1.close(ctx)
			}
		}
		if err != nil {
			r.close(ctx)
			return nil, err
		}
		r.channels[dest] = ch
		r.order = append(r.order, dest)
	}
	log.Debug.Printf("created %d output files in %s", 2*len(r.order), dir)
	return r, nil
}

// write appends r1 and r2 to the files of dest, which is a sample code,
// "mismatched" or "unknown".
func (r *router) write(dest string, r1, r2 *fastq.Read) error {
	ch, ok := r.channels[dest]
	if !ok {
		return errors.E(errors.Invalid, "no output for", dest)
	}
	if err := ch.r1.w.Write(r1); err != nil {
		return errors.E("write", ch.r1.path, err)
	}
	if err := ch.r2.w.Write(r2); err != nil {
		return errors.E("write", ch.r2.path, err)
	}
	return nil
}

// route writes the read pair of a classified quartet.
func (r *router) route(res Result, q *Quartet) error {
	switch res.Category {
	case Matched:
		return r.write(res.Code, &q.R1, &q.R2)
	case Mismatched:
		return r.write(mismatchedDest, &q.R1, &q.R2)
	default:
		return r.write(unknownDest, &q.R1, &q.R2)
	}
}

// close flushes and closes every file. It is safe to call more than once;
// only the first call has an effect.
func (r *router) close(ctx context.Context) error {
	if r.closed {
		return nil
	}
	r.closed = true
	once := errors.Once{}
	for _, dest := range r.order {
		ch := r.channels[dest]
		once.Set(ch.r1.close(ctx))
		once.Set(ch.r2.close(ctx))
	}
	return once.Err()
}

// deletions lists the files of sample codes that received no reads.
func (r *router) deletions(s *Stats) []string {
	var paths []string
	for _, code := range s.EmptyCodes() {
		if ch, ok := r.channels[code]; ok {
			paths = append(paths, ch.r1.path, ch.r2.path)
		}
	}
	return paths
}

// finalize removes the files of sample codes that received no reads. It
// must be called after close, and returns the removed paths.
func (r *router) finalize(ctx context.Context, s *Stats) ([]string, error) {
	if !r.closed {
		return nil, errors.E(errors.Invalid, "finalize called before close")
	}
	paths := r.deletions(s)
	for _, path := range paths {
		if err := file.Remove(ctx, path); err != nil {
			return nil, errors.E("remove", path, err)
		}
		log.Debug.Printf("removed empty output %s", path)
	}
	return paths, nil
}
