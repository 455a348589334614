package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"

	"github.com/aissantos/finansix-web-sub000/pkg/csv"
	"github.com/aissantos/finansix-web-sub000/pkg/models"
	"github.com/aissantos/finansix-web-sub000/pkg/parser"
)

type filters struct {
	startDate   string
	endDate     string
	minAmount   float64
	maxAmount   float64
	description string
}

func (f *filters) toFilterFunc() csv.FilterFunc {
	return func(t models.Transaction) bool {
		if f.startDate != "" && t.Date < f.startDate {
			return false
		}
		if f.endDate != "" && t.Date > f.endDate {
			return false
		}
		if f.minAmount != 0 && t.Amount < f.minAmount {
			return false
		}
		if f.maxAmount != 0 && t.Amount > f.maxAmount {
			return false
		}
		if f.description != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.description)) {
			return false
		}
		return true
	}
}

type FileProcessor struct {
	logger   *log.Logger
	registry *parser.Registry
	filters  *filters
	debug    bool
}

func NewFileProcessor(logger *log.Logger, filters *filters, debug bool) *FileProcessor {
	return &FileProcessor{
		logger:   logger,
		registry: parser.NewRegistry(logger),
		filters:  filters,
		debug:    debug,
	}
}

func (p *FileProcessor) ProcessDirectory(inputDir string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}

		if err := p.ProcessFile(filepath.Join(inputDir, entry.Name())); err != nil {
			p.logger.Warn("error processing file", "error", err)
		}
	}

	return nil
}

func (p *FileProcessor) ProcessFile(inputPath string) error {
	fileBytes, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	result := p.registry.Parse(string(fileBytes))

	if p.debug {
		pp.Println(result)
	}

	sort.Slice(result.Transactions, func(i, j int) bool {
		return result.Transactions[i].Date < result.Transactions[j].Date
	})

	outputBytes := csv.Create(result.Transactions, p.filters.toFilterFunc())

	fmt.Print(string(outputBytes))
	return nil
}
