package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndmitriev/caseline/internal/clearance"
)

// methodsCmd represents the methods command
var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "Show the clearance method reliability table",
	Long: `Display every recognized clearance method with its reliability class,
scientific basis, and base score. Clearance scoring is fully transparent:
these numbers and the documented deductions are the whole model.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Printf("%-25s %-12s %-12s %s\n", "METHOD", "RELIABILITY", "BASIS", "BASE SCORE")
		fmt.Printf("%-25s %-12s %-12s %s\n", "------", "-----------", "-----", "----------")
		for _, entry := range clearance.MethodTable() {
			fmt.Printf("%-25s %-12s %-12s %d/100\n",
				entry.Method, entry.Profile.Reliability, entry.Profile.Basis, entry.Profile.BaseScore)
		}
		fmt.Println()
		fmt.Println("Deductions: all-biased witnesses -20, unverified alibi -15,")
		fmt.Println("conflicting evidence -30, missing documentation -10.")
		fmt.Println("A critical red flag downgrades the strength label one tier.")
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}
