package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
)

var invokePath string

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "Work with the function registry",
}

var functionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered functions",
	Args:  cobra.NoArgs,
	RunE: func(cobraCmd *cobra.Command, _ []string) error {
		functions, err := newClient().listFunctions(cobraCmd.Context())
		if err != nil {
			return err
		}

		if len(functions) == 0 {
			pterm.Info.Println("No functions registered")
			return nil
		}

		table := pterm.TableData{{"NAME", "URL"}}
		for _, fn := range functions {
			table = append(table, []string{fn.Name, fn.URL})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

var functionsRegisterCmd = &cobra.Command{
	Use:   "register NAME URL",
	Short: "Register a function endpoint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		message, err := newClient().registerFunction(cobraCmd.Context(), registry.FunctionDescriptor{
			Name: args[0],
			URL:  args[1],
		})
		if err != nil {
			return err
		}

		pterm.Success.Println(message)
		return nil
	},
}

var functionsInvokeCmd = &cobra.Command{
	Use:   "invoke NAME",
	Short: "Call a registered function and print its response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		body, err := newClient().invokeFunction(cobraCmd.Context(), args[0], invokePath)
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Function Response")
		pterm.Println(body)
		return nil
	},
}

func init() {
	functionsInvokeCmd.Flags().StringVar(&invokePath, "path", "/api/SampleEndpoint", "Path to call on the function URL")

	functionsCmd.AddCommand(functionsListCmd)
	functionsCmd.AddCommand(functionsRegisterCmd)
	functionsCmd.AddCommand(functionsInvokeCmd)
}
