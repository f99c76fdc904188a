package demux

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Role identifies one of the four input streams of a run.
type Role int

const (
	// Read1 is the forward biological read.
	Read1 Role = iota
	// Index1 is the first (i7) index read.
	Index1
	// Index2 is the second (i5) index read, sequenced in the opposite
	// orientation of the catalog.
	Index2
	// Read2 is the reverse biological read.
	Read2
	nRole
)

var roleNames = [nRole]string{"read1", "index1", "index2", "read2"}

func (r Role) String() string {
	if r < 0 || r >= nRole {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// Manifest maps each role to its input path. Prefix and Suffix are the
// parts of the input file names around the "R<n>" read tag; they are reused
// to name output files.
type Manifest struct {
	Paths          [nRole]string
	Prefix, Suffix string
}

// Illumina bcl2fastq names the four reads R1..R4 with R2/R3 holding the
// index reads.
var inputNameRE = regexp.MustCompile(`^(.*)R([1-4])(.*)\.(fastq|fq)(\.gz)?$`)

// NewManifest builds a manifest from explicit paths. The output prefix and
// suffix are taken from the read1 name when it follows the R1..R4 naming
// convention.
func NewManifest(r1, i1, i2, r2 string) (Manifest, error) {
	m := Manifest{Paths: [nRole]string{r1, i1, i2, r2}}
	for role, path := range m.Paths {
		if path == "" {
			return m, errors.E(errors.Invalid, fmt.Sprintf("no input path for %v", Role(role)))
		}
	}
	if g := inputNameRE.FindStringSubmatch(filepath.Base(r1)); g != nil {
		m.Prefix, m.Suffix = g[1], g[3]
	}
	return m, nil
}

// DiscoverManifest lists dir and assigns its FASTQ files to roles by name:
// <prefix>R1<suffix>.fastq[.gz] is read1, R2 index1, R3 index2 and R4
// read2. Exactly one file per role must exist and all four must share the
// same prefix and suffix. Files not following the convention are ignored.
func DiscoverManifest(ctx context.Context, dir string) (Manifest, error) {
	var (
		m     Manifest
		paths []string
	)
	lister := file.List(ctx, dir, false)
	for lister.Scan() {
		if lister.IsDir() {
			continue
		}
		paths = append(paths, lister.Path())
	}
	if err := lister.Err(); err != nil {
		return m, errors.E(errors.Invalid, "list", dir, err)
	}
	sort.Strings(paths)
	var (
		found  [nRole]bool
		affix  [2]string
		nFound int
	)
	for _, path := range paths {
		g := inputNameRE.FindStringSubmatch(filepath.Base(path))
		if g == nil {
			log.Debug.Printf("%s: ignoring %s", dir, path)
			continue
		}
		role := Role(g[2][0] - '1')
		if nFound == 0 {
			affix = [2]string{g[1], g[3]}
		} else if affix != [2]string{g[1], g[3]} {
			return m, errors.E(errors.Invalid, fmt.Sprintf("%s: %s does not share the prefix %q and suffix %q of %s",
				dir, filepath.Base(path), affix[0], affix[1], filepath.Base(m.Paths[firstFound(found)])))
		}
		if found[role] {
			return m, errors.E(errors.Invalid, fmt.Sprintf("%s: more than one %v input (%s, %s)", dir, role, m.Paths[role], path))
		}
		found[role] = true
		m.Paths[role] = path
		nFound++
	}
	for role, ok := range found {
		if !ok {
			return m, errors.E(errors.Invalid, fmt.Sprintf("%s: no %v input (expected a file named %sR%d%s.fastq.gz)",
				dir, Role(role), affix[0], role+1, affix[1]))
		}
	}
	m.Prefix, m.Suffix = affix[0], affix[1]
	return m, nil
}

func firstFound(found [nRole]bool) Role {
	for role, ok := range found {
		if ok {
			return Role(role)
		}
	}
	return Read1
}

// outputName returns the base name of the output file holding read (1 or
// 2) for the given destination.
func (m Manifest) outputName(read int, dest string, gzip bool) string {
	name := fmt.Sprintf("%sR%d%s_%s.fastq", m.Prefix, read, m.Suffix, dest)
	if gzip {
		name += ".gz"
	}
	return name
}
