package genome

import "fmt"

// build37Scaffold pairs a GRCh37 unlocalized/unplaced scaffold accession with
// its hg19 chromosome assignment ("Un" for unplaced). Covers GL000191.1
// through GL000249.1, the alternate scaffolds shared by the two naming
// schemes.
type build37Scaffold struct {
	accession int
	chrom     string
}

var build37Scaffolds = []build37Scaffold{
	{191, "1"}, {192, "1"},
	{193, "4"}, {194, "4"},
	{195, "7"},
	{196, "8"}, {197, "8"},
	{198, "9"}, {199, "9"}, {200, "9"}, {201, "9"},
	{202, "11"},
	{203, "17"}, {204, "17"}, {205, "17"}, {206, "17"},
	{207, "18"},
	{208, "19"}, {209, "19"},
	{210, "21"},
	{211, "Un"}, {212, "Un"}, {213, "Un"}, {214, "Un"}, {215, "Un"},
	{216, "Un"}, {217, "Un"}, {218, "Un"}, {219, "Un"}, {220, "Un"},
	{221, "Un"}, {222, "Un"}, {223, "Un"}, {224, "Un"}, {225, "Un"},
	{226, "Un"}, {227, "Un"}, {228, "Un"}, {229, "Un"}, {230, "Un"},
	{231, "Un"}, {232, "Un"}, {233, "Un"}, {234, "Un"}, {235, "Un"},
	{236, "Un"}, {237, "Un"}, {238, "Un"}, {239, "Un"}, {240, "Un"},
	{241, "Un"}, {242, "Un"}, {243, "Un"}, {244, "Un"}, {245, "Un"},
	{246, "Un"}, {247, "Un"}, {248, "Un"}, {249, "Un"},
}

// build37Aliases maps every recognized 37-family alternate-scaffold name
// (both GRCh37 accessions and hg19 UCSC names) to its GRCh37 accession.
var build37Aliases = buildAliases()

func buildAliases() map[string]string {
	m := make(map[string]string, 2*len(build37Scaffolds))
	for _, s := range build37Scaffolds {
		acc := fmt.Sprintf("GL%06d.1", s.accession)
		m[acc] = acc
		ucsc := fmt.Sprintf("chr%s_gl%06d", s.chrom, s.accession)
		if s.chrom != "Un" {
			ucsc += "_random"
		}
		m[ucsc] = acc
	}
	return m
}

// IsBuild37Alias reports whether a contig name is a recognized hg19/GRCh37
// alternate-scaffold alias.
func IsBuild37Alias(name string) bool {
	_, ok := build37Aliases[name]
	return ok
}
