package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/config"
)

var signupData models.FarmerSignupData

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a farmer account (logs you in on success)",
	RunE: func(cmd *cobra.Command, args []string) error {
		farmer, err := authSvc.SignupFarmer(cmd.Context(), signupData)
		if err != nil {
			return err
		}
		fmt.Printf("Welcome, %s! Your farmer account #%d is ready.\n", farmer.Name, farmer.ID)
		return nil
	},
}

var loginData models.FarmerLoginData

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a farmer",
	RunE: func(cmd *cobra.Command, args []string) error {
		farmer, err := authSvc.LoginFarmer(cmd.Context(), loginData)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s <%s>\n", farmer.Name, farmer.Email)
		return nil
	},
}

var customerEmail string

var loginCustomerCmd = &cobra.Command{
	Use:   "login-customer",
	Short: "Start a customer browsing session",
	RunE: func(cmd *cobra.Command, args []string) error {
		guest, err := authSvc.LoginCustomer(customerEmail)
		if err != nil {
			return err
		}
		fmt.Printf("Browsing as %s\n", guest.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := authSvc.Current()
		if !state.IsAuthenticated || state.User == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s> (%s)\n", state.User.Name, state.User.Email, state.UserType)
		return nil
	},
}

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection",
	Short: "Check whether the marketplace backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		if authSvc.TestConnection(cmd.Context()) {
			fmt.Printf("Backend at %s is reachable.\n", config.BackendURL())
			return nil
		}
		return fmt.Errorf("backend at %s is not reachable", config.BackendURL())
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupData.Name, "name", "", "full name")
	signupCmd.Flags().StringVar(&signupData.Email, "email", "", "email address")
	signupCmd.Flags().StringVar(&signupData.Password, "password", "", "password (min 4 characters)")
	signupCmd.Flags().StringVar(&signupData.Phone, "phone", "", "phone number (local form gets the +251 prefix)")

	loginCmd.Flags().StringVar(&loginData.Email, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginData.Password, "password", "", "password")

	loginCustomerCmd.Flags().StringVar(&customerEmail, "email", "", "email address")
	_ = loginCustomerCmd.MarkFlagRequired("email")
}
