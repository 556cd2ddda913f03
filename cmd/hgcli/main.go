package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hashnet-labs/hedera-core-sdk/client"
	"github.com/hashnet-labs/hedera-core-sdk/hedera"
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/txbody"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	rootCmd := &cobra.Command{Use: "hgcli"}
	rootCmd.PersistentFlags().String("env", "", "config environment name (loads config/<env>.yaml over config/default.yaml)")
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(refreshCmd())
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("hgcli: command failed")
		os.Exit(1)
	}
}

func newClient(cmd *cobra.Command) (*client.Client, error) {
	env, _ := cmd.Flags().GetString("env")
	return client.NewFromConfig(env)
}

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "submit a balanced hbar transfer between two accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			amountHbar, _ := cmd.Flags().GetFloat64("amount")

			fromID, err := ids.ParseAccountID(from)
			if err != nil {
				return fmt.Errorf("hgcli: --from: %w", err)
			}
			toID, err := ids.ParseAccountID(to)
			if err != nil {
				return fmt.Errorf("hgcli: --to: %w", err)
			}

			c, err := newClient(cmd)
			if err != nil {
				return fmt.Errorf("hgcli: %w", err)
			}

			transfers := txbody.NewHbarTransferList().
				AddTransfer(fromID, hedera.NewHbar(-amountHbar)).
				AddTransfer(toID, hedera.NewHbar(amountHbar))

			body := txbody.NewBody()
			if err := body.SetHbarTransferList(transfers); err != nil {
				return fmt.Errorf("hgcli: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			var signers []txbody.Signer
			if signer, ok := c.OperatorSigner(); ok {
				signers = append(signers, signer)
			}

			resp, err := c.Execute(ctx, body, signers...)
			if err != nil {
				return fmt.Errorf("hgcli: transfer failed: %w", err)
			}
			fmt.Printf("transfer %s -> %s amount %s: %s\n", fromID, toID, hedera.NewHbar(amountHbar), resp.Status)
			return nil
		},
	}
	cmd.Flags().String("from", "", "payer/sender account id (shard.realm.num)")
	cmd.Flags().String("to", "", "receiver account id (shard.realm.num)")
	cmd.Flags().Float64("amount", 0, "amount in hbar")
	return cmd
}

func refreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh-network [path]",
		Short: "reload the managed network's node list from a YAML address book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return fmt.Errorf("hgcli: %w", err)
			}
			if err := c.RefreshAddressBook(args[0]); err != nil {
				return fmt.Errorf("hgcli: refresh-network: %w", err)
			}
			fmt.Println("address book refreshed")
			return nil
		},
	}
	return cmd
}
