package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cajafund-cli",
		Short: "CajaFund CLI tool",
		Long:  `A command line interface for interacting with the CajaFund API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CajaFund API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Schedule commands
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Amortization schedule operations",
	}

	var previewAmount, previewRate, previewStart string
	var previewMonths int
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview an amortization schedule without touching the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := previewSchedule(previewAmount, previewRate, previewMonths, previewStart)
			if err != nil {
				return err
			}
			renderSchedule(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	previewCmd.Flags().StringVar(&previewAmount, "amount", "", "Principal amount (e.g. 1200.00)")
	previewCmd.Flags().StringVar(&previewRate, "rate", "", "Annual interest rate percentage (e.g. 12)")
	previewCmd.Flags().IntVar(&previewMonths, "months", 0, "Term in months")
	previewCmd.Flags().StringVar(&previewStart, "start", "", "First due date (YYYY-MM-DD, default today)")
	_ = previewCmd.MarkFlagRequired("amount")
	_ = previewCmd.MarkFlagRequired("rate")
	_ = previewCmd.MarkFlagRequired("months")

	scheduleCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scheduleCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger stream operations",
	}

	var checkMemberID string
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check cached balances of a stream against recomputed values",
		Run: func(cmd *cobra.Command, args []string) {
			checkStream(checkMemberID)
		},
	}
	checkCmd.Flags().StringVar(&checkMemberID, "member", "", "Member ID (omit to check the admin expense stream)")

	ledgerCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Config commands
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Fund configuration operations",
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current fund configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig()
		},
	}

	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)

	// Migration commands
	var databaseURL, migrationsPath string
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration operations",
	}
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrations(databaseURL, migrationsPath)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrationsDown(databaseURL, migrationsPath)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// previewSchedule builds the amortization table locally, using the same
// generation the server runs at approval time.
func previewSchedule(amount, rate string, months int, start string) ([]*domain.Installment, error) {
	principal, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	annualPct, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	approvalDate := time.Now().UTC().Truncate(24 * time.Hour)
	if start != "" {
		approvalDate, err = time.Parse(time.DateOnly, start)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", start, err)
		}
	}

	loan := &domain.Loan{
		ApprovedAmount:  principal,
		TermMonths:      months,
		InterestRatePct: annualPct,
		ApprovalDate:    &approvalDate,
		Status:          domain.LoanApproved,
	}

	return domain.BuildSchedule(loan, time.Now().UTC())
}

func renderSchedule(w io.Writer, rows []*domain.Installment) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDUE DATE\tBALANCE\tPRINCIPAL\tINTEREST\tTOTAL")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Sequence,
			r.DueDate.Format(time.DateOnly),
			r.Balance.StringFixed(2),
			r.Principal.StringFixed(2),
			r.Interest.StringFixed(2),
			r.Total.StringFixed(2),
		)
	}
	fmt.Fprintf(tw, "\tTOTAL INTEREST\t\t\t%s\t\n", domain.TotalInterest(rows).StringFixed(2))
	tw.Flush()
}

func checkStream(memberID string) {
	url := baseURL + "/api/v1/admin-expenses/check"
	if memberID != "" {
		url = baseURL + "/api/v1/members/" + memberID + "/savings/check"
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Stream check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Stream check PASSED")
	} else {
		fmt.Println("Stream check found inconsistent cached balances")
	}
	printJSON(os.Stdout, result)
}

func showConfig() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/config/")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Failed to fetch configuration (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(os.Stdout, result)
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
	}
}
