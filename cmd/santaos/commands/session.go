package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"santaos/internal/domain"
)

func loginCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "login <name>",
		Short: "Sign in and store the session under the passphrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Config.Passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			r, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			u, err := appCtx.SignIn(cmd.Context(), args[0], r, appCtx.Config.Passphrase)
			if err != nil {
				return &viewError{what: "login", err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s, id %s)\n", u.Name, u.Role, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "parent, staff, admin or worker")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.SignOut(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := appCtx.Session.Profile()
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrNotSignedIn
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, id %s), signed in %s\n",
				p.Name, p.Role, p.UserID, domain.Timestamp(p.SignedInAt))
			return nil
		},
	}
}
