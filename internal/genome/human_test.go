package genome

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-anno/internal/metadata"
)

func recordWithBuild(build string) *metadata.SampleRecord {
	rec := &metadata.SampleRecord{}
	rec.Build = build
	return rec
}

func TestIsHumanByBuildName(t *testing.T) {
	tests := []struct {
		name   string
		build  string
		builds []string
		want   bool
	}{
		{"GRCh37 default filter", "GRCh37", nil, true},
		{"hg19 default filter", "hg19", nil, true},
		{"hg38 default filter", "hg38", nil, true},
		{"mm10 default filter", "mm10", nil, false},
		{"hg38 with 38 filter", "hg38", []string{"38"}, true},
		{"hg38 with 37 filter", "hg38", []string{"37"}, false},
		{"GRCh37 with 37 filter", "GRCh37", []string{"37"}, true},
		{"GRCh37 with 38 filter", "GRCh37", []string{"38"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHuman(recordWithBuild(tt.build), tt.builds...))
		})
	}
}

func TestIsHumanByAlias(t *testing.T) {
	rec := recordWithBuild("custom-build")
	rec.GenomeResources.Aliases.Human = true

	assert.True(t, IsHuman(rec))
	// a build filter bypasses the alias shortcut
	assert.False(t, IsHuman(rec, "38"))
}

func TestIsHumanByContigFallback(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "genome.fa")
	require.NoError(t, os.WriteFile(ref, []byte(""), 0644))
	fai := "chr1\t249250621\t6\t60\t61\n" +
		"chr1_gl000191_random\t106433\t100\t60\t61\n"
	require.NoError(t, os.WriteFile(ref+".fai", []byte(fai), 0644))

	rec := recordWithBuild("b37-custom")
	rec.Reference.Fasta.Base = ref

	assert.True(t, IsHuman(rec))
	assert.True(t, IsHuman(rec, "37"))
	assert.False(t, IsHuman(rec, "38"), "contig fallback applies to the 37 family only")
}

func TestIsHumanContigFallbackRejectsUnknownScaffolds(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "genome.fa")
	require.NoError(t, os.WriteFile(ref, []byte(""), 0644))
	fai := "scaffold_1\t100000\t6\t60\t61\n" +
		"GL999999.1\t5000\t100\t60\t61\n"
	require.NoError(t, os.WriteFile(ref+".fai", []byte(fai), 0644))

	rec := recordWithBuild("galGal4")
	rec.Reference.Fasta.Base = ref

	assert.False(t, IsHuman(rec))
}

func TestIsBuild37Alias(t *testing.T) {
	assert.True(t, IsBuild37Alias("GL000191.1"))
	assert.True(t, IsBuild37Alias("GL000249.1"))
	assert.True(t, IsBuild37Alias("chr1_gl000191_random"))
	assert.True(t, IsBuild37Alias("chrUn_gl000220"))
	assert.False(t, IsBuild37Alias("GL000250.1"))
	assert.False(t, IsBuild37Alias("chr1"))
	assert.False(t, IsBuild37Alias("KI270706.1"))
}

func TestFileContigsFromIndex(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "genome.fa")
	require.NoError(t, os.WriteFile(ref, []byte(">chr1\nACGT\n"), 0644))
	require.NoError(t, os.WriteFile(ref+".fai", []byte("chr1\t4\t6\t60\t61\n"), 0644))

	contigs, err := FileContigs(ref)
	require.NoError(t, err)
	require.Len(t, contigs, 1)
	assert.Equal(t, "chr1", contigs[0].Name)
	assert.Equal(t, int64(4), contigs[0].Length)
}

func TestFileContigsSkipsNamelessHeaders(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "genome.fa")
	fasta := ">\nACGT\n>   \nACGT\n>chr1\nACGT\n"
	require.NoError(t, os.WriteFile(ref, []byte(fasta), 0644))

	contigs, err := FileContigs(ref)
	require.NoError(t, err)
	require.Len(t, contigs, 1)
	assert.Equal(t, "chr1", contigs[0].Name)
}

func TestFileContigsFastaFallback(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "genome.fa")
	fasta := ">chr1 AC:CM000663.2\nACGTACGT\n>chrM\nACGT\n"
	require.NoError(t, os.WriteFile(ref, []byte(fasta), 0644))

	contigs, err := FileContigs(ref)
	require.NoError(t, err)
	require.Len(t, contigs, 2)
	assert.Equal(t, "chr1", contigs[0].Name, "header description is dropped")
	assert.Equal(t, "chrM", contigs[1].Name)
}
