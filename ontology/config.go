package ontology

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	oboFilename     = "hp.obo"
	genesFilename   = "phenotype_to_genes.txt"
	diseaseFilename = "phenotype.hpoa"

	// defaultDataDir is the packaged fallback location, used when neither
	// a Config.DataDir nor the HPO_DATA_DIR environment variable is set.
	defaultDataDir = "data"
	dataDirEnvVar  = "HPO_DATA_DIR"
)

// Config selects the data directory the ontology is built from. It may
// be loaded from an optional hpo.yaml, overridden by HPO_DATA_DIR, or
// left at its packaged default.
type Config struct {
	DataDir string `yaml:"data_dir"`
}

// LoadConfig reads path as YAML if it exists, then applies the
// HPO_DATA_DIR environment override, then falls back to the packaged
// default. A missing config file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := Config{DataDir: defaultDataDir}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, err
			}
		} else if !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	if env := os.Getenv(dataDirEnvVar); env != "" {
		cfg.DataDir = env
	}
	return cfg, nil
}

func (c Config) oboPath() string     { return filepath.Join(c.DataDir, oboFilename) }
func (c Config) genesPath() string   { return filepath.Join(c.DataDir, genesFilename) }
func (c Config) diseasePath() string { return filepath.Join(c.DataDir, diseaseFilename) }
