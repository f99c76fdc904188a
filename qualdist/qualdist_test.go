package qualdist_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/demux/qualdist"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const fq = "@a\nACGT\n+\nIIII\n@b\nACGT\n+\n+++I\n@c\nAC\n+\n55\n"

func TestCompute(t *testing.T) {
	d, err := qualdist.Compute(strings.NewReader(fq))
	assert.NoError(t, err)
	expect.EQ(t, d.Reads(), int64(3))
	// I=40, +=10, 5=20.
	expect.EQ(t, d.Means(), []float64{70.0 / 3, 70.0 / 3, 25, 40})

	var b bytes.Buffer
	assert.NoError(t, d.WriteTSV(&b))
	expect.EQ(t, b.String(), "position\tmean_quality\n0\t23.333\n1\t23.333\n2\t25.000\n3\t40.000\n")
}

func TestComputeInvalid(t *testing.T) {
	_, err := qualdist.Compute(strings.NewReader("@a\nACGT\n"))
	expect.True(t, err != nil)
}

func TestComputeBadQuality(t *testing.T) {
	_, err := qualdist.Compute(strings.NewReader("@a\nACGT\n+\nIIII\n@b\nACGT\n+\nII I\n"))
	expect.True(t, err != nil)
	expect.True(t, strings.Contains(err.Error(), "record 2"))
	expect.True(t, strings.Contains(err.Error(), "not Phred+33"))
}

func TestComputeFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "x.fastq")
	assert.NoError(t, ioutil.WriteFile(path, []byte(fq), 0600))
	d, err := qualdist.ComputeFile(context.Background(), path)
	assert.NoError(t, err)
	expect.EQ(t, d.Reads(), int64(3))
}
