package demux

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Opts configures a demultiplexing run. It is fixed for the duration of the
// run.
type Opts struct {
	// InputDir is searched for the four input FASTQ files when R1, I1, I2
	// and R2 are empty. See DiscoverManifest.
	InputDir string
	// R1, I1, I2 and R2 are explicit paths of the read1, index1, index2
	// and read2 inputs. Either all or none must be set.
	R1, I1, I2, R2 string
	// OutputDir receives the demultiplexed FASTQ files and the two count
	// tables.
	OutputDir string
	// CatalogPath is a tab-separated (code, barcode) file.
	CatalogPath string
	// QualityThreshold is the minimum mean Phred score of each index read.
	// A read whose mean equals the threshold passes.
	QualityThreshold int
	// GzipOutput compresses the FASTQ outputs and appends ".gz" to their
	// names.
	GzipOutput bool
}

// DefaultOpts holds the default options.
var DefaultOpts = Opts{
	QualityThreshold: 26,
}

const (
	// MatchedCountsName is the file name of the per-sample table.
	MatchedCountsName = "matched_counts.tsv"
	// MismatchedCountsName is the file name of the index-hopping matrix.
	MismatchedCountsName = "mismatched_counts.tsv"
)

func (o Opts) validate() error {
	if o.OutputDir == "" {
		return errors.E(errors.Invalid, "output directory not set")
	}
	if o.CatalogPath == "" {
		return errors.E(errors.Invalid, "catalog path not set")
	}
	if o.QualityThreshold < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("negative quality threshold %d", o.QualityThreshold))
	}
	nExplicit := 0
	for _, p := range []string{o.R1, o.I1, o.I2, o.R2} {
		if p != "" {
			nExplicit++
		}
	}
	switch {
	case nExplicit == 0 && o.InputDir == "":
		return errors.E(errors.Invalid, "neither an input directory nor input paths are set")
	case nExplicit != 0 && o.InputDir != "":
		return errors.E(errors.Invalid, "an input directory and input paths are mutually exclusive")
	case nExplicit != 0 && nExplicit != 4:
		return errors.E(errors.Invalid, fmt.Sprintf("%d of 4 input paths set; read1, index1, index2 and read2 are all required", nExplicit))
	}
	return nil
}
