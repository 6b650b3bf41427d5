package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewCountCommand creates the count command.
func NewCountCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "count",
		Short:         "Show the total number of recorded payments",
		Long:          `Prints the payment counter. Zero before any recording, including before init.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			count, err := sess.ledger.PaymentCount(sess.ctx)
			if err != nil {
				return ledgerError(err)
			}

			result := map[string]uint64{"count": count}
			return printResult(cmd.OutOrStdout(), opts.Format, result, strconv.FormatUint(count, 10))
		},
	}

	return cmd
}
