package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Ledger names the existing-transaction source a batch run deduplicates
// against. Type is "csv" or "itau_xls".
type Ledger struct {
	Type string `yaml:"type"`
	File string `yaml:"file"`
}

// Statement is a single statement text file to parse.
type Statement struct {
	File string `yaml:"file"`
}

// Plan is a YAML manifest describing a batch of statements and an optional
// ledger to score them against.
type Plan struct {
	Threshold  int         `yaml:"threshold"`
	Ledger     *Ledger     `yaml:"ledger"`
	Statements []Statement `yaml:"statements"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Statements) == 0 {
		return nil, fmt.Errorf("plan has no statements")
	}
	return &p, nil
}

func (p *Plan) Print() {
	if p.Ledger != nil {
		fmt.Printf("Ledger: type=%s file=%s\n", p.Ledger.Type, p.Ledger.File)
	}
	for i, st := range p.Statements {
		fmt.Printf("[%d] file=%s\n", i+1, st.File)
	}
}
