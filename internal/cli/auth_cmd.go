package cli

import (
	"context"
	"fmt"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password, provider, callback string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider != "" {
				return socialLogin(app, provider, callback)
			}

			if email == "" || password == "" {
				if !app.interactive() {
					return fmt.Errorf("--email and --password are required in non-interactive mode")
				}
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("Email").Value(&email).Validate(validateRequired("email")),
						huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(validateRequired("password")),
					),
				).WithTheme(plannerHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}

			result, err := app.Auth.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			if err := app.Sessions.Save(result.Session); err != nil {
				return err
			}

			if result.Message != "" {
				fmt.Println(result.Message)
			}
			fmt.Printf("Signed in as %s <%s>\n", result.Session.User.Name, result.Session.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&provider, "provider", "", "OAuth provider (google|kakao)")
	cmd.Flags().StringVar(&callback, "callback", "", "OAuth callback URL or token (skips the paste prompt)")

	return cmd
}

// socialLogin prints the provider's redirect URL, collects the callback
// the browser lands on, and caches the session carried in its token.
func socialLogin(app *App, provider, callback string) error {
	url, err := app.Auth.SocialLoginURL(domain.AuthProvider(provider))
	if err != nil {
		return err
	}

	fmt.Printf("Open this URL in your browser to sign in:\n\n  %s\n\n", url)

	if callback == "" {
		if !app.interactive() {
			return fmt.Errorf("--callback is required in non-interactive mode")
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Paste the callback URL (or token) after signing in").
					Value(&callback).
					Validate(validateRequired("callback")),
			),
		).WithTheme(plannerHuhTheme()).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return err
		}
	}

	s, err := api.SessionFromCallback(callback)
	if err != nil {
		return err
	}
	if err := app.Sessions.Save(*s); err != nil {
		return err
	}

	if s.User.Name != "" {
		fmt.Printf("Signed in as %s <%s>\n", s.User.Name, s.User.Email)
	} else {
		fmt.Println("Signed in.")
	}
	return nil
}

func newSignupCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" || password == "" {
				if !app.interactive() {
					return fmt.Errorf("--name, --email and --password are required in non-interactive mode")
				}
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("Name").Value(&name).Validate(validateRequired("name")),
						huh.NewInput().Title("Email").Value(&email).Validate(validateRequired("email")),
						huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(validateRequired("password")),
					),
				).WithTheme(plannerHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}

			if err := app.Auth.Signup(context.Background(), name, email, password); err != nil {
				return err
			}

			fmt.Printf("Account created for %s. Run `planner login` to sign in.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the cached session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Clear(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.Current()
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Println("Not signed in.")
				return nil
			}
			fmt.Printf("%s <%s>", s.User.Name, s.User.Email)
			if s.User.Provider != "" {
				fmt.Printf(" via %s", s.User.Provider)
			}
			fmt.Println()
			return nil
		},
	}
}
