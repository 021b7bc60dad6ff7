// Package hpoa reads the two tab-separated annotation artifacts that sit
// alongside hp.obo: phenotype_to_genes.txt and phenotype.hpoa. Columns
// are resolved by header name rather than fixed position, so a release
// that appends new trailing columns (explicitly anticipated by the
// upstream format) never silently misparses an existing one.
package hpoa

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/hpokit/gohpo/ontology/hpoerr"
)

// GeneLink is one row of phenotype_to_genes.txt: a direct HPO-term-to-gene
// annotation.
type GeneLink struct {
	HPOID      string
	HGNCID     int
	GeneSymbol string
}

const (
	colHPOID      = "hpo_id"
	colNCBIGeneID = "ncbi_gene_id"
	colHGNCID     = "hgnc_id"
	colGeneSymbol = "gene_symbol"
)

// ParseGenes reads phenotype_to_genes.txt from r. Lines starting with '#'
// are skipped; the first non-comment line is the header used to locate
// columns. HGNC id is authoritative when present; otherwise the NCBI gene
// id is accepted in its place (§6 of the design), since pyhpo
// historically used this id unconditionally as the identity key.
func ParseGenes(r io.Reader) ([]GeneLink, error) {
	reader := csv.NewReader(commentFilter(r))
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, hpoerr.Parse("phenotype_to_genes.txt", 1, err.Error())
	}
	idx, err := columnIndex(header, colHPOID, colGeneSymbol)
	if err != nil {
		return nil, err
	}
	geneIDCol, hasHGNC := columnOrNegative(header, colHGNCID)
	ncbiCol, hasNCBI := columnOrNegative(header, colNCBIGeneID)
	if !hasHGNC && !hasNCBI {
		return nil, hpoerr.Parse("phenotype_to_genes.txt", 1, "neither hgnc_id nor ncbi_gene_id column present")
	}

	var links []GeneLink
	line := 1
	for {
		line++
		cols, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, hpoerr.Parse("phenotype_to_genes.txt", line, err.Error())
		}

		geneID := 0
		if hasHGNC {
			if v, err := strconv.Atoi(strings.TrimSpace(cols[geneIDCol])); err == nil {
				geneID = v
			}
		}
		if geneID == 0 && hasNCBI {
			if v, err := strconv.Atoi(strings.TrimSpace(cols[ncbiCol])); err == nil {
				geneID = v
			}
		}
		if geneID == 0 {
			continue
		}

		links = append(links, GeneLink{
			HPOID:      strings.TrimSpace(cols[idx[colHPOID]]),
			HGNCID:     geneID,
			GeneSymbol: strings.TrimSpace(cols[idx[colGeneSymbol]]),
		})
	}
	return links, nil
}

// commentFilter drops lines starting with '#' before they reach the csv
// reader, since encoding/csv has no comment-skipping mode of its own.
func commentFilter(r io.Reader) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 1<<20), 1<<20)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "#") {
				continue
			}
			if _, err := pw.Write([]byte(line + "\n")); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(scanner.Err())
	}()
	return pr
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, hpoerr.Parse("annotation file", 1, "missing required column "+col)
		}
	}
	return idx, nil
}

func columnOrNegative(header []string, name string) (int, bool) {
	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) == name {
			return i, true
		}
	}
	return -1, false
}
