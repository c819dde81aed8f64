package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/service"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())
	cmd.AddCommand(newAdminDeactivateCmd())

	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create an admin account",
		Long: `Create an admin account. The password is read interactively and never
appears in shell history or process listings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.ToLower(strings.TrimSpace(args[0]))
			if !strings.Contains(email, "@") {
				return fmt.Errorf("invalid email address: %s", email)
			}

			password, err := promptPassword()
			if err != nil {
				return err
			}

			hash, err := service.HashPassword(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			admin := &model.Admin{
				Email:        email,
				PasswordHash: hash,
				Name:         name,
				Role:         model.DefaultAdminRole,
				IsActive:     true,
			}

			ctx, cancel := cmdCtx()
			defer cancel()
			if err := st.CreateAdmin(ctx, admin); err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			fmt.Printf("Admin account created: %s (id %d)\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name for the account")

	return cmd
}

func newAdminListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			ctx, cancel := cmdCtx()
			defer cancel()
			admins, err := st.ListAdmins(ctx)
			if err != nil {
				return fmt.Errorf("failed to list admins: %w", err)
			}
			if len(admins) == 0 {
				fmt.Println("No admin accounts. Create one with: vitrine admin create <email>")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tACTIVE\tLAST LOGIN")
			for _, a := range admins {
				lastLogin := "never"
				if a.LastLoginAt != nil {
					lastLogin = a.LastLoginAt.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n",
					a.ID, a.Email, a.Name, a.Role, a.IsActive, lastLogin)
			}
			return w.Flush()
		},
	}
}

func newAdminDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <email>",
		Short: "Deactivate an admin account",
		Long: `Deactivate an admin account. A deactivated account can no longer log
in; tokens it already holds stay valid until they expire.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			ctx, cancel := cmdCtx()
			defer cancel()
			admin, err := st.GetAdminByEmail(ctx, args[0])
			if err != nil {
				return fmt.Errorf("no admin account for %s", args[0])
			}
			if err := st.SetAdminActive(ctx, admin.ID, false); err != nil {
				return fmt.Errorf("failed to deactivate admin: %w", err)
			}

			fmt.Printf("Admin account deactivated: %s\n", admin.Email)
			return nil
		},
	}
}

// promptPassword reads the password twice without echo and requires the two
// entries to match.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(password), nil
}

// cmdCtx returns a context bounded for a one-shot CLI database operation.
func cmdCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
