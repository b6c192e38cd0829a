package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	httpr "github.com/httpr-cli/httpr"
)

func main() {
	if err := httpr.Main(); err != nil {
		red := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintf(os.Stderr, "\n%s %v\n\n", red("Error:"), err)
		printHint(err)
		os.Exit(1)
	}
}

// printHint adds a short contextual suggestion for the failure shapes
// a user can usually fix themselves.
func printHint(err error) {
	message := err.Error()
	yellow := color.New(color.FgYellow).SprintFunc()

	switch {
	case strings.Contains(message, "no such host") || strings.Contains(message, "lookup"):
		fmt.Fprintln(os.Stderr, yellow("Possible causes:"))
		fmt.Fprintln(os.Stderr, "   - Check if the domain name is correct")
		fmt.Fprintln(os.Stderr, "   - Check your network connection")
		fmt.Fprintln(os.Stderr, "   - Try using IP address instead")
	case strings.Contains(message, "Client.Timeout") || strings.Contains(message, "context deadline exceeded"):
		fmt.Fprintln(os.Stderr, yellow("Suggestion:"))
		fmt.Fprintln(os.Stderr, "   - Increase timeout with --timeout <seconds>")
		fmt.Fprintln(os.Stderr, "   - Check if the server is responsive")
	case strings.Contains(message, "connection refused"):
		fmt.Fprintln(os.Stderr, yellow("Possible causes:"))
		fmt.Fprintln(os.Stderr, "   - Server is not running")
		fmt.Fprintln(os.Stderr, "   - Wrong port number")
		fmt.Fprintln(os.Stderr, "   - Firewall blocking the connection")
	case strings.Contains(message, "no such file"):
		fmt.Fprintln(os.Stderr, yellow("File not found:"))
		fmt.Fprintln(os.Stderr, "   - Check if the file path is correct")
		fmt.Fprintln(os.Stderr, "   - Use absolute path or relative to current directory")
	}
}
