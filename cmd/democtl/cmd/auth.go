package cmd

import (
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	authzdomain "github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
)

var (
	token    string
	resource string
)

var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Ask the authorizer for the policy a token would get",
	Args:  cobra.NoArgs,
	RunE: func(cobraCmd *cobra.Command, _ []string) error {
		policy, err := newClient().authorize(cobraCmd.Context(), token, resource)
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Authorization Decision")
		table := pterm.TableData{{"PRINCIPAL", "EFFECT", "RESOURCE"}}
		for _, st := range policy.PolicyDocument.Statement {
			table = append(table, []string{policy.PrincipalID, string(st.Effect), st.Resource})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
			return err
		}

		if user, err := authzdomain.UserContextFrom(policy.Context); err == nil {
			pterm.Info.Printf("User: %s <%s>\n", user.Name, user.Email)
		}
		return nil
	},
}

var protectedCmd = &cobra.Command{
	Use:   "protected",
	Short: "Call the protected demo endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cobraCmd *cobra.Command, _ []string) error {
		status, body, err := newClient().callProtected(cobraCmd.Context(), token)
		if err != nil {
			return err
		}

		if status == http.StatusOK {
			pterm.Success.Println(body)
		} else {
			pterm.Warning.Printf("%d %s\n", status, body)
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange an ID token for the authenticated profile",
	Args:  cobra.NoArgs,
	RunE: func(cobraCmd *cobra.Command, _ []string) error {
		sess, err := newClient().login(cobraCmd.Context(), token)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Authenticated as %s <%s>\n", sess.User.Name, sess.User.Email)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{authorizeCmd, protectedCmd, loginCmd} {
		c.Flags().StringVar(&token, "token", "", "Firebase ID token")
	}
	authorizeCmd.Flags().StringVar(&resource, "resource", "arn:aws:execute-api:local:000000000000:authdemo/dev/GET/demo", "Resource to authorize")
}
