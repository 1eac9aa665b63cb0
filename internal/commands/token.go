package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecombase/shopapi/internal/auth"
	"github.com/ecombase/shopapi/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage authentication tokens",
	Long:  `Generate customer bearer tokens for testing and service access`,
}

var generateCustomerTokenCmd = &cobra.Command{
	Use:   "customer [customer-id]",
	Short: "Generate a customer bearer token",
	Long: `Generate a JWT bearer token for a customer.

The token is signed with the jwt_secret from the configuration file and
carries the customer id in the claims.

Examples:
  # Generate a token for a customer id
  shopd token customer customer:42

  # Generate with a custom expiration (in hours)
  shopd token customer customer:42 --expiration 24

  # Use a custom secret (overrides config)
  shopd token customer customer:42 --secret "my-custom-secret"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateCustomerToken,
}

var (
	tokenExpiration int64
	tokenSecret     string
	tokenCode       string
)

func init() {
	generateCustomerTokenCmd.Flags().Int64Var(&tokenExpiration, "expiration", 72, "Token expiration in hours")
	generateCustomerTokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "JWT secret (default: from config file)")
	generateCustomerTokenCmd.Flags().StringVar(&tokenCode, "code", "", "Customer login code embedded in the claims")

	tokenCmd.AddCommand(generateCustomerTokenCmd)
}

func runGenerateCustomerToken(cmd *cobra.Command, args []string) error {
	customerID := args[0]

	secret := tokenSecret
	if secret == "" && cfg != nil {
		secret = cfg.Security.JWTSecret
	}
	if secret == "" {
		return fmt.Errorf(`jwt_secret not found in config file and --secret not provided

Please either:
  1. Add to your config.yaml:
     security:
       jwt_secret: your-secret-here

  2. Or use the --secret flag:
     shopd token customer %s --secret "your-secret-here"`, customerID)
	}

	tokenCfg := &config.Config{}
	tokenCfg.Security.JWTSecret = secret
	tokenCfg.Security.JWTExpiration = time.Duration(tokenExpiration) * time.Hour

	token, err := auth.NewJWTService(tokenCfg).GenerateToken(customerID, tokenCode)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Printf("Customer Token Generated Successfully\n")
	fmt.Printf("=====================================\n\n")
	fmt.Printf("Customer ID: %s\n", customerID)
	fmt.Printf("Expiration:  %d hours\n", tokenExpiration)
	fmt.Printf("\nToken:\n%s\n\n", token)
	fmt.Printf("Send it as a bearer header:\n")
	fmt.Printf("  Authorization: Bearer %s\n", token)

	return nil
}
