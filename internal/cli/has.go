package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewHasCommand creates the has command.
func NewHasCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "has <invoice-id>",
		Short:         "Check whether a payment exists for an invoice",
		Long:          `Prints true or false. Absence is a regular answer, not a failure.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			ok, err := sess.ledger.HasPayment(sess.ctx, args[0])
			if err != nil {
				return ledgerError(err)
			}

			result := map[string]bool{"exists": ok}
			return printResult(cmd.OutOrStdout(), opts.Format, result, strconv.FormatBool(ok))
		},
	}

	return cmd
}
