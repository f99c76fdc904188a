package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/demux/demux"
	"github.com/grailbio/demux/qualdist"
	"v.io/x/lib/cmdline"
)

func newCmdRun() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "run",
		Short: "Demultiplex a dual-indexed paired-end run",
		Long: `
Run reads the read1, index1, index2 and read2 FASTQ files of a run in
lockstep and writes each read pair to the files of the sample named by its
index reads, or to the "mismatched" or "unknown" files. Inputs are given
either with --input-dir, holding files named <prefix>R{1,2,3,4}<suffix>.fastq.gz,
or with all of --r1, --i1, --i2 and --r2.`,
	}
	opts := demux.DefaultOpts
	cmd.Flags.StringVar(&opts.InputDir, "input-dir", "", "Directory holding the four input FASTQ files")
	cmd.Flags.StringVar(&opts.R1, "r1", "", "Read1 FASTQ")
	cmd.Flags.StringVar(&opts.I1, "i1", "", "Index1 FASTQ")
	cmd.Flags.StringVar(&opts.I2, "i2", "", "Index2 FASTQ, reverse-complemented relative to the catalog")
	cmd.Flags.StringVar(&opts.R2, "r2", "", "Read2 FASTQ")
	cmd.Flags.StringVar(&opts.OutputDir, "output-dir", "", "Output directory")
	cmd.Flags.StringVar(&opts.CatalogPath, "catalog", "", "Tab-separated file of sample code and barcode sequence")
	cmd.Flags.IntVar(&opts.QualityThreshold, "quality-threshold", opts.QualityThreshold,
		"Minimum mean Phred score of each index read")
	cmd.Flags.BoolVar(&opts.GzipOutput, "gzip", false, "Gzip the output FASTQ files")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return env.UsageErrorf("run takes no arguments, but got %v", argv)
		}
		return runDemux(vcontext.Background(), env.Stdout, opts)
	})
	return cmd
}

func runDemux(ctx context.Context, out io.Writer, opts demux.Opts) error {
	sum, err := demux.Run(ctx, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "unknown\t%d\nmismatched\t%d\nmatched\t%d\n",
		sum.Unknown, sum.Mismatched, sum.Matched)
	return err
}

func newCmdQualdist() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "qualdist",
		Short:    "Compute the mean quality at each read position of a FASTQ file",
		ArgsName: "fastq",
	}
	output := cmd.Flags.String("output", "", "Output TSV path. By default, write to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("qualdist takes one FASTQ path, but got %v", argv)
		}
		return runQualdist(vcontext.Background(), env.Stdout, argv[0], *output)
	})
	return cmd
}

func runQualdist(ctx context.Context, stdout io.Writer, path, outPath string) (err error) {
	d, err := qualdist.ComputeFile(ctx, path)
	if err != nil {
		return err
	}
	log.Printf("%s: %d reads", path, d.Reads())
	if outPath == "" {
		return d.WriteTSV(stdout)
	}
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return errors.E("create", outPath, err)
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	return d.WriteTSV(out.Writer(ctx))
}

func main() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(&cmdline.Command{
		Name:     "bio-demux",
		Short:    "Demultiplex dual-indexed FASTQ runs",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdRun(),
			newCmdQualdist(),
		},
	})
}
