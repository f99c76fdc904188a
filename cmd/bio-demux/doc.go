/*Command bio-demux splits a dual-indexed paired-end run into per-sample
  FASTQ files.

  Usage:

    bio-demux run --input-dir=in/ --catalog=indexes.tsv --output-dir=out/
    bio-demux run --r1=R1.fq.gz --i1=R2.fq.gz --i2=R3.fq.gz --r2=R4.fq.gz \
      --catalog=indexes.tsv --output-dir=out/ --quality-threshold=30
    bio-demux qualdist --output=r2.qual.tsv R2.fq.gz

  The catalog is a two-column tab-separated file of sample code and barcode.
  See github.com/grailbio/demux/demux for the classification rules.
*/
package main
