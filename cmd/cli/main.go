package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

// Swapped out in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "clubledger-cli",
		Short: "ClubLedger CLI tool",
		Long:  `A command line interface for interacting with the ClubLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ClubLedger API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	reconciliationCmd := &cobra.Command{
		Use:   "reconciliation",
		Short: "Reconciliation operations",
	}
	reconciliationCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Recompute every member position and settlement and report discrepancies",
		Run: func(cmd *cobra.Command, args []string) {
			checkReconciliation()
		},
	})
	rootCmd.AddCommand(reconciliationCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "balance <member-id>",
		Short: "Look up a member's available balance and invested capital",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			lookupBalance(args[0])
		},
	})

	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkReconciliation() {
	body, status := apiGet("/api/v1/reconciliation")
	if status != http.StatusOK {
		fmt.Printf("Reconciliation check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var report struct {
		MembersChecked     int  `json:"members_checked"`
		SettlementsChecked int  `json:"settlements_checked"`
		Consistent         bool `json:"consistent"`
		Discrepancies      []struct {
			SettlementID string `json:"settlement_id"`
			MemberID     string `json:"member_id"`
			Detail       string `json:"detail"`
		} `json:"discrepancies"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Members checked:     %d\n", report.MembersChecked)
	fmt.Printf("Settlements checked: %d\n", report.SettlementsChecked)

	if report.Consistent {
		fmt.Println("Reconciliation check PASSED")
		return
	}

	fmt.Printf("Reconciliation check FAILED (%d discrepancies)\n", len(report.Discrepancies))
	for _, d := range report.Discrepancies {
		fmt.Printf("  settlement=%s member=%s %s\n", truncate(d.SettlementID, 12), truncate(d.MemberID, 12), d.Detail)
	}
	os.Exit(1)
}

func lookupBalance(memberID string) {
	body, status := apiGet("/api/v1/members/" + memberID + "/balance")
	if status != http.StatusOK {
		fmt.Printf("Balance lookup FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var balance map[string]any
	if err := json.Unmarshal(body, &balance); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(balance)
}

// hashPasswordCmd hashes a password with bcrypt, for seeding admin accounts directly in the database.
func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hashed))
			return nil
		},
	}
}

func apiGet(path string) ([]byte, int) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
