// Command komoju is a small CLI around the client library, mainly for
// exercising a sandbox account: it loads credentials from the
// environment (or a secret backend), issues one API call per
// invocation and prints the decoded response as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kevin07696/komoju-client/internal/secrets"
	"github.com/kevin07696/komoju-client/komoju"
)

var (
	logger *zap.Logger
	client *komoju.Client
)

func main() {
	root := &cobra.Command{
		Use:           "komoju",
		Short:         "KOMOJU payment API client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd.Context())
		},
	}

	root.AddCommand(paymentsCommand(), customersCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context) error {
	// Optional .env for local development
	_ = godotenv.Load()

	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	if err := resolveSecretKey(ctx); err != nil {
		return err
	}

	cfg, err := komoju.LoadFromEnv()
	if err != nil {
		return err
	}

	client, err = komoju.NewClient(cfg, nil, logger)
	return err
}

// resolveSecretKey fills KOMOJU_SECRET_KEY from a secret backend when
// it is not already present in the environment. The backend is chosen
// by KOMOJU_SECRET_SOURCE (aws, vault or file) and the secret path by
// KOMOJU_SECRET_PATH.
func resolveSecretKey(ctx context.Context) error {
	if os.Getenv("KOMOJU_SECRET_KEY") != "" {
		return nil
	}

	backend := os.Getenv("KOMOJU_SECRET_SOURCE")
	if backend == "" {
		return nil
	}
	path := os.Getenv("KOMOJU_SECRET_PATH")
	if path == "" {
		return fmt.Errorf("KOMOJU_SECRET_PATH is required with KOMOJU_SECRET_SOURCE=%s", backend)
	}

	var source secrets.Source
	var err error
	switch backend {
	case "aws":
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "ap-northeast-1"
		}
		source, err = secrets.NewAWSSecretsManagerSource(ctx, secrets.DefaultAWSSecretsManagerConfig(region), logger)
	case "vault":
		vaultCfg := secrets.DefaultVaultConfig(os.Getenv("VAULT_ADDR"))
		vaultCfg.Token = os.Getenv("VAULT_TOKEN")
		source, err = secrets.NewVaultSource(ctx, vaultCfg, logger)
	case "file":
		dir := os.Getenv("KOMOJU_SECRET_DIR")
		if dir == "" {
			dir = "."
		}
		source = secrets.NewLocalSource(dir, logger)
	default:
		return fmt.Errorf("unsupported secret source: %s", backend)
	}
	if err != nil {
		return err
	}

	secret, err := source.GetSecret(ctx, path)
	if err != nil {
		return err
	}
	return os.Setenv("KOMOJU_SECRET_KEY", secret.Value)
}

func paymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Operate on payments",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.ListPayments(cmd.Context(), nil))
		},
	}

	show := &cobra.Command{
		Use:  "show <payment-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.ShowPayment(cmd.Context(), args[0]))
		},
	}

	var (
		amount   string
		currency string
		card     string
		cvv      string
		month    string
		year     string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a credit card payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
			return output(client.CreatePayment(cmd.Context(), &komoju.CreditCardPayment{
				Amount:   amt,
				Currency: currency,
				Number:   card,
				CVV:      cvv,
				Expiry:   komoju.NewExpiry(month, year),
			}))
		},
	}
	create.Flags().StringVar(&amount, "amount", "", "charge amount")
	create.Flags().StringVar(&currency, "currency", "", "3-character currency code (default JPY)")
	create.Flags().StringVar(&card, "card", "", "card number")
	create.Flags().StringVar(&cvv, "cvv", "", "card security code")
	create.Flags().StringVar(&month, "month", "", "expiry month")
	create.Flags().StringVar(&year, "year", "", "expiry year")

	cancel := &cobra.Command{
		Use:  "cancel <payment-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.CancelPayment(cmd.Context(), args[0]))
		},
	}

	capture := &cobra.Command{
		Use:  "capture <payment-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.CapturePayment(cmd.Context(), args[0]))
		},
	}

	var (
		refundType   string
		refundAmount string
	)
	refund := &cobra.Command{
		Use:  "refund <payment-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(refundAmount)
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
			return output(client.RefundPayment(cmd.Context(), &komoju.RefundRequest{
				PaymentID:   args[0],
				PaymentType: refundType,
				Amount:      amt,
			}))
		},
	}
	refund.Flags().StringVar(&refundType, "type", komoju.PaymentTypeCreditCard, "payment type of the original payment")
	refund.Flags().StringVar(&refundAmount, "amount", "", "refund amount")

	cmd.AddCommand(list, show, create, cancel, capture, refund)
	return cmd
}

func customersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Operate on customers",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.ListCustomers(cmd.Context(), nil))
		},
	}

	show := &cobra.Command{
		Use:  "show <customer-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.ShowCustomer(cmd.Context(), args[0]))
		},
	}

	var email string
	create := &cobra.Command{
		Use:  "create",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.CreateCustomer(cmd.Context(), &komoju.CustomerRequest{Email: email}))
		},
	}
	create.Flags().StringVar(&email, "email", "", "customer e-mail address")

	var updateEmail string
	update := &cobra.Command{
		Use:  "update <customer-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.UpdateCustomer(cmd.Context(), args[0], &komoju.CustomerRequest{Email: updateEmail}))
		},
	}
	update.Flags().StringVar(&updateEmail, "email", "", "customer e-mail address")

	del := &cobra.Command{
		Use:  "delete <customer-id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return output(client.DeleteCustomer(cmd.Context(), args[0]))
		},
	}

	cmd.AddCommand(list, show, create, update, del)
	return cmd
}

func output(result map[string]interface{}, err error) error {
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
