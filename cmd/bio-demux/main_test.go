package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/demux/demux"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, data string) {
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0600))
}

func TestRunDemux(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	in := filepath.Join(dir, "in")
	require.NoError(t, os.Mkdir(in, 0700))
	write(t, filepath.Join(in, "s_R1.fastq"), "@a\nACGT\n+\nIIII\n@b\nACGT\n+\nIIII\n")
	write(t, filepath.Join(in, "s_R2.fastq"), "@a\nAAAA\n+\nIIII\n@b\nCCCC\n+\nIIII\n")
	write(t, filepath.Join(in, "s_R3.fastq"), "@a\nTTTT\n+\nIIII\n@b\nGGGG\n+\nIIII\n")
	write(t, filepath.Join(in, "s_R4.fastq"), "@a\nTTTT\n+\nIIII\n@b\nTTTT\n+\nIIII\n")
	write(t, filepath.Join(dir, "catalog.tsv"), "B1\tAAAA\nB2\tCCCC\n")

	opts := demux.DefaultOpts
	opts.InputDir = in
	opts.OutputDir = filepath.Join(dir, "out")
	opts.CatalogPath = filepath.Join(dir, "catalog.tsv")
	var out bytes.Buffer
	require.NoError(t, runDemux(context.Background(), &out, opts))
	assert.Equal(t, "unknown\t0\nmismatched\t0\nmatched\t2\n", out.String())
	_, err := os.Stat(filepath.Join(opts.OutputDir, "s_R1_B2.fastq"))
	assert.NoError(t, err)
}

func TestRunQualdist(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "x.fastq")
	write(t, path, "@a\nAC\n+\nI5\n")
	var out bytes.Buffer
	require.NoError(t, runQualdist(context.Background(), &out, path, ""))
	assert.Equal(t, "position\tmean_quality\n0\t40.000\n1\t20.000\n", out.String())

	outPath := filepath.Join(dir, "q.tsv")
	require.NoError(t, runQualdist(context.Background(), &out, path, outPath))
	data, err := ioutil.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "position\tmean_quality\n0\t40.000\n1\t20.000\n", string(data))
}
