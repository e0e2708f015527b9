package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	httpclient "github.com/WilsonSunBritten/serverless-tools/pkg/http"
)

var (
	functionsURL string
	authURL      string
	timeout      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "democtl",
	Short: "Client for the serverless demo services",
	Long: `democtl talks to the functions host (list, register and invoke functions)
and to the auth demo (authorize tokens, call the protected endpoint).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&functionsURL, "functions-url", "http://127.0.0.1:7071", "Functions host base URL")
	rootCmd.PersistentFlags().StringVar(&authURL, "auth-url", "http://127.0.0.1:8123", "Auth demo base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", httpclient.DefaultTimeout, "Per-request timeout")

	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(authorizeCmd)
	rootCmd.AddCommand(protectedCmd)
	rootCmd.AddCommand(loginCmd)
}

func newClient() *demoClient {
	return &demoClient{
		http:         httpclient.New(httpclient.WithTimeout(timeout)),
		functionsURL: functionsURL,
		authURL:      authURL,
	}
}
