// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package sequtil provides the small set of base- and quality-string
// operations the demultiplexer needs: reverse complement, Phred+33
// decoding, mean quality and alphabet checks. All functions work on ASCII
// strings as they appear in FASTQ files.
package sequtil
