package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"max.ks1230/budget-tracker/internal/model/submission"
)

var tableHeader = []string{"ID", "DATE", "AMOUNT", "CATEGORY_ID", "NOTES"}

func newTransactionCmd(opts *options) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Submit one transaction form",
		Long: `Submit the given fields as one transaction form.

Fields are sent as entered; the server validates them. The created row is
printed to stdout, notifications go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := submission.ParseFields(fields)
			if err != nil {
				return err
			}

			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}

			form := submission.NewFieldForm(nil)
			for name, value := range values {
				form.Set(name, value)
			}
			table := submission.NewWriterTable(cmd.OutOrStdout(), tableHeader...)

			handler := submission.New(opts.client(conf), form, table, notifier(cmd, conf))
			res := handler.HandleSubmit(commandContext(cmd), submission.NoopEvent{})
			if res.Outcome != submission.OutcomeAdded {
				return errNotAdded
			}
			return errors.Wrap(table.Flush(), "print row")
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "form field as name=value, repeatable")
	return cmd
}
