package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/session"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := readPassword()
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newLoginCommand() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if username == "" {
				if username, err = promptLine("Username: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			err = a.session.Login(ctx, username, password)
			if errors.Is(err, apperrors.ErrTwoFactorRequired) {
				code, perr := promptLine("Two-factor code: ")
				if perr != nil {
					return perr
				}
				err = a.session.VerifyTwoFactor(ctx, username, code)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", a.session.User().FullName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username to log in with")
	return cmd
}

func newRegisterCommand() *cobra.Command {
	var username, email, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			user, err := a.session.Register(cmd.Context(), session.RegisterRequest{
				Username:  username,
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Registered %s. Run 'pennywise login' to sign in.\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (required)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.session.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if !a.session.Authenticated() {
				return fmt.Errorf("not logged in")
			}

			user, err := a.client.Profile.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s) <%s>\n", user.FullName(), user.Username, user.Email)
			return nil
		},
	}
}
