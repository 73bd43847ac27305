package cmd

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the callctl session",
}

var (
	loginFlagLogin    string
	loginFlagPassword string
)

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the GrandCall Pro API",
	Long: `Authenticate with your login and password. The returned session is
stored under the state directory and attached to every subsequent
command until 'callctl auth logout'.

When --login or --password is omitted you are prompted interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		creds := auth.Credentials{
			Login:    loginFlagLogin,
			Password: loginFlagPassword,
		}
		if creds.Login == "" || creds.Password == "" {
			if err := promptCredentials(&creds); err != nil {
				return err
			}
		}

		app.manager.Start(cmd.Context())
		if err := app.manager.Login(cmd.Context(), creds); err != nil {
			return err
		}

		if st := app.manager.State(); st.User != nil {
			cmd.Printf("Logged in as %s (%s)\n", st.User.Name, st.User.AccessLevel)
		} else {
			cmd.Println("Logged in.")
		}
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long:  "Clears the stored session. Running it while logged out is a no-op.",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		app.manager.Logout()
		cmd.Println("Logged out.")
		return nil
	},
}

var (
	registerFlagName       string
	registerFlagEmail      string
	registerFlagLogin      string
	registerFlagPassword   string
	registerFlagDepartment string
)

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Request a new GrandCall Pro account",
	Long: `Submit a registration request. Depending on platform policy the
account is either active immediately (you are logged in right away) or
held for administrator approval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		data := auth.RegisterData{
			Name:       registerFlagName,
			Email:      registerFlagEmail,
			Login:      registerFlagLogin,
			Password:   registerFlagPassword,
			Department: registerFlagDepartment,
		}
		if data.Name == "" || data.Email == "" || data.Login == "" || data.Password == "" {
			if err := promptRegistration(&data); err != nil {
				return err
			}
		}

		app.manager.Start(cmd.Context())
		result, err := app.manager.Register(cmd.Context(), data)
		if err != nil {
			return err
		}

		if result.PendingApproval {
			cmd.Println("Registration received. An administrator must approve the account before you can log in.")
			return nil
		}
		cmd.Printf("Account created. Logged in as %s.\n", result.Session.User.Name)
		return nil
	},
}

var authForgotCmd = &cobra.Command{
	Use:   "forgot-password <login-or-email>",
	Short: "Request a password reset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		app.manager.Start(cmd.Context())
		if err := app.manager.ForgotPassword(cmd.Context(), args[0]); err != nil {
			return err
		}

		// Same message whether or not the identifier exists.
		cmd.Println("If that account exists, reset instructions have been sent.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/settings"); err != nil {
			return err
		}

		st := app.manager.State()
		cmd.Printf("Logged in as:  %s\n", st.User.Name)
		if st.User.Email != "" {
			cmd.Printf("Email:         %s\n", st.User.Email)
		}
		if st.User.Department != "" {
			cmd.Printf("Department:    %s\n", st.User.Department)
		}
		if st.User.AccessLevel != "" {
			cmd.Printf("Access level:  %s\n", st.User.AccessLevel)
		}
		cmd.Printf("Environment:   %s\n", app.cfg.Environment)
		cmd.Printf("API:           %s\n", app.cfg.APIBaseURL())
		return nil
	},
}

func promptCredentials(creds *auth.Credentials) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Login").
			Value(&creds.Login),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password),
	))
	return form.Run()
}

func promptRegistration(data *auth.RegisterData) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Full name").
			Value(&data.Name),
		huh.NewInput().
			Title("Email").
			Value(&data.Email),
		huh.NewInput().
			Title("Login").
			Value(&data.Login),
		huh.NewInput().
			Title("Password").
			Description("At least 8 characters").
			EchoMode(huh.EchoModePassword).
			Value(&data.Password),
		huh.NewInput().
			Title("Department").
			Value(&data.Department),
	))
	return form.Run()
}

func init() {
	authLoginCmd.Flags().StringVar(&loginFlagLogin, "login", "", "account login")
	authLoginCmd.Flags().StringVar(&loginFlagPassword, "password", "", "account password (prefer the interactive prompt)")

	authRegisterCmd.Flags().StringVar(&registerFlagName, "name", "", "full name")
	authRegisterCmd.Flags().StringVar(&registerFlagEmail, "email", "", "email address")
	authRegisterCmd.Flags().StringVar(&registerFlagLogin, "login", "", "desired login")
	authRegisterCmd.Flags().StringVar(&registerFlagPassword, "password", "", "password (prefer the interactive prompt)")
	authRegisterCmd.Flags().StringVar(&registerFlagDepartment, "department", "", "department")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authForgotCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
