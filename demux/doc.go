/*
Package demux splits a dual-indexed paired-end run into per-sample FASTQ
files.

A run is four FASTQ streams read in lockstep: read1, index1, index2 and
read2. Each quartet is classified against a catalog of known barcodes:

  - Matched: both index reads are known, pass the quality threshold, and
    agree once index2 is reverse-complemented. The read pair goes to the
    sample's R1/R2 files.
  - Mismatched: both index reads are known and pass the threshold, but they
    name different barcodes (index hopping). The pair goes to the
    mismatched files and the barcode pair is counted.
  - Unknown: either index read is absent from the catalog or has a mean
    quality below the threshold.

Every written read1/read2 header gets the suffix ":<index1>-<index2>" where
index2 is the reverse-complemented sequence.

At the end of a run, files of samples that received no reads are removed,
and two tables are written to the output directory: matched_counts.tsv
(reads per sample) and mismatched_counts.tsv (a symmetric sample-by-sample
matrix of index-hopping events).
*/
package demux
