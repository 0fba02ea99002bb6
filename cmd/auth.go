package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/meetpresence/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to the Google Meet API",
		Long: `Run the OAuth authorization flow for the meet-api presence source.

Set MEETPRESENCE_GOOGLE_CLIENT_ID and MEETPRESENCE_GOOGLE_CLIENT_SECRET
to the credentials of your Google Cloud OAuth client before running this
command. The resulting token is stored per account in the user cache
directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if google.HasTokenForAccount(account) {
				// Revalidate the stored token before re-prompting.
				if _, err := google.GetTokenSourceForAccount(ctx, account); err == nil {
					fmt.Printf("Account %q is already authorized.\n", account)
					return nil
				}
				fmt.Printf("Stored token for account %q is invalid, re-authorizing.\n", account)
			}

			authURL, err := google.GetAuthURLForAccount(account)
			if err != nil {
				return err
			}

			fmt.Printf("Go to the following URL and authorize access for account %q:\n\n  %s\n\n", account, authURL)
			fmt.Print("Enter code> ")

			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() {
				return fmt.Errorf("no authorization code entered")
			}
			code := strings.TrimSpace(scanner.Text())
			if code == "" {
				return fmt.Errorf("no authorization code entered")
			}

			if err := google.SaveTokenForAccount(ctx, account, code); err != nil {
				return err
			}

			fmt.Printf("Token saved for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", google.DefaultAccount, "Google account name to authorize")

	return cmd
}
