package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/aissantos/finansix-web-sub000/pkg/config"
	"github.com/aissantos/finansix-web-sub000/pkg/dedup"
	"github.com/aissantos/finansix-web-sub000/pkg/ledger"
	"github.com/aissantos/finansix-web-sub000/pkg/models"
	"github.com/aissantos/finansix-web-sub000/pkg/parser"
	"github.com/aissantos/finansix-web-sub000/pkg/plan"
)

var (
	cliFilters filters
	cfgFile    string
	debugDump  bool
)

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "finansix-cli",
		Level:           log.InfoLevel,
	})
}

var rootCmd = &cobra.Command{
	Use:   "finansix-cli",
	Short: "Parse credit-card statement text and flag duplicate transactions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <input_path>",
	Short: "Parse statement text files and print transactions as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		if _, err := config.Build(cfgFile, cmd.Flags()); err != nil {
			return err
		}

		processor := NewFileProcessor(logger, &cliFilters, debugDump)

		matches, err := filepath.Glob(args[0])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files found matching pattern %s", args[0])
		}

		for _, match := range matches {
			fileInfo, err := os.Stat(match)
			if err != nil {
				logger.Warn("failed to stat file", "error", err, "file", match)
				continue
			}

			if fileInfo.IsDir() {
				if err := processor.ProcessDirectory(match); err != nil {
					logger.Warn("failed to process directory", "error", err, "dir", match)
				}
			} else {
				if err := processor.ProcessFile(match); err != nil {
					logger.Warn("failed to process file", "error", err, "file", match)
				}
			}
		}
		return nil
	},
}

var dedupCmd = &cobra.Command{
	Use:   "dedup [flags] <statement_file>",
	Short: "Parse a statement and score its transactions against an existing ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read statement file: %w", err)
		}

		registry := parser.NewRegistry(logger)
		result := registry.Parse(string(data))

		ledgerFile, _ := cmd.Flags().GetString("ledger")
		ledgerType, _ := cmd.Flags().GetString("ledger-type")
		existing, err := loadExisting(cfg, ledgerType, ledgerFile, result.Transactions)
		if err != nil {
			return err
		}

		threshold, _ := cmd.Flags().GetInt("threshold")
		if threshold <= 0 {
			threshold = cfg.Threshold
		}

		matches := dedup.FindDuplicates(result.Transactions, existing, threshold)
		printReport(result, matches)
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <plan_file>",
	Short: "Parse and deduplicate every statement listed in a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Plan preview for %s\n", args[0])
		p.Print()

		threshold := p.Threshold
		if threshold <= 0 {
			threshold = cfg.Threshold
		}

		var existing []models.ExistingTransaction
		if p.Ledger != nil {
			existing, err = loadLedgerFile(p.Ledger.Type, p.Ledger.File)
			if err != nil {
				return err
			}
		}

		registry := parser.NewRegistry(logger)
		for _, st := range p.Statements {
			data, err := os.ReadFile(st.File)
			if err != nil {
				logger.Warn("failed to read statement", "file", st.File, "error", err)
				continue
			}
			result := registry.Parse(string(data))
			matches := dedup.FindDuplicates(result.Transactions, existing, threshold)
			fmt.Printf("%s: bank=%s transactions=%d duplicates=%d\n",
				st.File, result.BankName, len(result.Transactions), len(matches))
		}
		return nil
	},
}

// loadExisting resolves the existing-transaction source: an explicit ledger
// file when given, otherwise the configured YNAB account windowed to the
// parsed statement's date range.
func loadExisting(cfg *config.Config, ledgerType, ledgerFile string, parsed []models.Transaction) ([]models.ExistingTransaction, error) {
	if ledgerFile != "" {
		return loadLedgerFile(ledgerType, ledgerFile)
	}

	if cfg.YNAB.BudgetID == "" || cfg.YNAB.AccountID == "" {
		return nil, fmt.Errorf("no ledger file given and no YNAB account configured")
	}
	tokenEnv := cfg.YNAB.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "YNAB_TOKEN"
	}
	token := os.Getenv(tokenEnv)
	if token == "" {
		return nil, fmt.Errorf("environment variable %s is empty", tokenEnv)
	}

	from, to := ledger.DateWindow(parsed, 5)
	source := ledger.NewYNABSource(token)
	return source.Existing(cfg.YNAB.BudgetID, cfg.YNAB.AccountID, from, to)
}

func loadLedgerFile(ledgerType, file string) ([]models.ExistingTransaction, error) {
	switch ledgerType {
	case "itau_xls":
		return ledger.LoadItauXLS(file)
	case "", "csv":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger file: %w", err)
		}
		return ledger.LoadCSV(data)
	default:
		return nil, fmt.Errorf("unknown ledger type %q", ledgerType)
	}
}

// printReport lists every parsed transaction, marking scored duplicates
// with "=" and unmatched ones with "+".
func printReport(result models.ParseResult, matches []models.MatchScore) {
	byIndex := make(map[int]models.MatchScore, len(matches))
	for _, m := range matches {
		byIndex[m.ImportedIndex] = m
	}

	for i, tx := range result.Transactions {
		if m, ok := byIndex[i]; ok {
			fmt.Printf("= %s | %-30s | R$ %8.2f | %s score=%d type=%s\n",
				tx.Date, tx.Description, tx.Amount, m.ExistingID, m.Score, m.MatchType)
		} else {
			fmt.Printf("+ %s | %-30s | R$ %8.2f\n", tx.Date, tx.Description, tx.Amount)
		}
	}
	fmt.Printf("Summary: %d parsed, %d flagged as duplicates, %d new\n",
		len(result.Transactions), len(matches), len(result.Transactions)-len(matches))
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugDump, "debug", false, "Dump full parse results")

	// Filter flags (global)
	rootCmd.PersistentFlags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	rootCmd.PersistentFlags().StringVar(&cliFilters.description, "description", "", "Filter by description (case insensitive)")

	// Flags specific to the dedup subcommand
	dedupCmd.Flags().String("ledger", "", "Existing-transaction ledger file (csv or xls)")
	dedupCmd.Flags().String("ledger-type", "", "Ledger file type: csv or itau_xls")
	dedupCmd.Flags().Int("threshold", 0, "Minimum duplicate score (default from config)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(dedupCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	_ = gotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
