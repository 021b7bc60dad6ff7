package hpoa

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/hpokit/gohpo/ontology/hpoerr"
)

// DiseaseSource mirrors ontology.DiseaseSource without importing the
// ontology package, keeping hpoa a leaf reader with no dependency on the
// core it feeds.
type DiseaseSource string

const (
	SourceOmim     DiseaseSource = "omim"
	SourceOrpha    DiseaseSource = "orpha"
	SourceDecipher DiseaseSource = "decipher"
)

// DiseaseLink is one row of phenotype.hpoa: a direct HPO-term-to-disease
// annotation, positive or negative depending on Qualifier.
type DiseaseLink struct {
	Source    DiseaseSource
	DiseaseID int
	Name      string
	Negative  bool
	HPOID     string
}

const (
	colDatabaseID  = "database_id"
	colDiseaseName = "disease_name"
	colQualifier   = "qualifier"
)

// ParseDiseases reads phenotype.hpoa from r, routing each row to the
// omim/orpha/decipher source by the database_id prefix and to the
// negative side when qualifier == "NOT". Duplicate (disease, term) pairs
// are naturally idempotent for callers that insert into a set.
func ParseDiseases(r io.Reader) ([]DiseaseLink, error) {
	reader := csv.NewReader(commentFilter(r))
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, hpoerr.Parse("phenotype.hpoa", 1, err.Error())
	}
	idx, err := columnIndex(header, colDatabaseID, colDiseaseName, colQualifier, colHPOID)
	if err != nil {
		return nil, err
	}

	var links []DiseaseLink
	line := 1
	for {
		line++
		cols, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, hpoerr.Parse("phenotype.hpoa", line, err.Error())
		}

		dbID := strings.TrimSpace(cols[idx[colDatabaseID]])
		prefix, numeric, ok := strings.Cut(dbID, ":")
		if !ok {
			continue
		}
		var source DiseaseSource
		switch strings.ToUpper(prefix) {
		case "OMIM":
			source = SourceOmim
		case "ORPHA":
			source = SourceOrpha
		case "DECIPHER":
			source = SourceDecipher
		default:
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(numeric))
		if err != nil {
			continue
		}

		qualifier := strings.TrimSpace(cols[idx[colQualifier]])
		links = append(links, DiseaseLink{
			Source:    source,
			DiseaseID: id,
			Name:      strings.TrimSpace(cols[idx[colDiseaseName]]),
			Negative:  qualifier == "NOT",
			HPOID:     strings.TrimSpace(cols[idx[colHPOID]]),
		})
	}
	return links, nil
}
