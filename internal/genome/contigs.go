// Package genome answers organism and build questions about a sample's
// reference genome.
package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/inodb/vibe-anno/internal/fsutil"
)

// Contig is one reference sequence in a genome FASTA.
type Contig struct {
	Name   string
	Length int64
}

// FileContigs lists the contigs of a reference FASTA. It reads the samtools
// faidx index next to the reference when present, and falls back to scanning
// the FASTA headers otherwise (lengths are unavailable on that path).
func FileContigs(refPath string) ([]Contig, error) {
	if fai := refPath + ".fai"; fsutil.Exists(fai) {
		return faiContigs(fai)
	}
	return fastaContigs(refPath)
}

func faiContigs(path string) ([]Contig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fasta index: %w", err)
	}
	defer f.Close()

	var contigs []Contig
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 {
			continue
		}
		length, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse fasta index %s: %w", path, err)
		}
		contigs = append(contigs, Contig{Name: fields[0], Length: length})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fasta index: %w", err)
	}
	return contigs, nil
}

func fastaContigs(path string) ([]Contig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference: %w", err)
	}
	defer f.Close()

	var r io.Reader = f

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("read reference: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek reference: %w", err)
	}
	if buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzipped reference: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var contigs []Contig
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			fields := strings.Fields(strings.TrimPrefix(line, ">"))
			if len(fields) == 0 {
				// malformed nameless header; the contig scan stays best-effort
				continue
			}
			contigs = append(contigs, Contig{Name: fields[0]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reference: %w", err)
	}
	return contigs, nil
}
