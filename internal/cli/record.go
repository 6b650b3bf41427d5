package cli

import (
	"github.com/spf13/cobra"

	"github.com/invoisio/paymentledger/internal/record"
)

// NewRecordCommand creates the record command.
func NewRecordCommand(opts *RootOptions) *cobra.Command {
	var (
		payer       string
		assetCode   string
		assetIssuer string
		amount      string
	)

	cmd := &cobra.Command{
		Use:   "record <invoice-id>",
		Short: "Record a payment against an invoice",
		Long: `Records that an invoice was paid. Requires the invoking --caller to be
the registered admin.

Each invoice id is recorded at most once: re-running with the same id fails
with PAYMENT_ALREADY_RECORDED and leaves the stored record unchanged, so the
command is safe to retry after a timeout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := record.ParseAmount(amount)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --amount", err)
			}

			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			invoiceID := args[0]
			err = sess.ledger.RecordPayment(sess.ctx, invoiceID,
				record.Identity(payer), assetCode, assetIssuer, amt)
			if err != nil {
				return ledgerError(err)
			}

			rec, err := sess.ledger.GetPayment(sess.ctx, invoiceID)
			if err != nil {
				return ledgerError(err)
			}

			return printResult(cmd.OutOrStdout(), opts.Format, rec,
				"recorded payment for invoice "+rec.InvoiceID+
					": "+rec.Amount.String()+" "+rec.Asset.String()+" from "+payer)
		},
	}

	cmd.Flags().StringVar(&payer, "payer", "", "identity of the paying account (required)")
	cmd.Flags().StringVar(&assetCode, "asset-code", record.NativeCode, "asset code (XLM for the native asset)")
	cmd.Flags().StringVar(&assetIssuer, "asset-issuer", "", "issuer identity (required for non-native assets)")
	cmd.Flags().StringVar(&amount, "amount", "", "payment amount in the asset's smallest unit (required)")
	cmd.MarkFlagRequired("payer")
	cmd.MarkFlagRequired("amount")

	return cmd
}
