package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"max.ks1230/budget-tracker/internal/model/submission"
)

func newTransactionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "transactions",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}

			rows, err := opts.client(conf).ListTransactions(commandContext(cmd))
			if err != nil {
				return err
			}

			table := submission.NewWriterTable(cmd.OutOrStdout(), "ID", "DATE", "AMOUNT", "CATEGORY", "NOTES")
			for _, row := range rows {
				table.AppendRow([]string{row.ID.Text(), row.Date.Text(), row.Amount.Text(), row.Category.Text(), row.Notes.Text()})
			}
			return errors.Wrap(table.Flush(), "print transactions")
		},
	}
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}

			categories, err := opts.client(conf).ListCategories(commandContext(cmd))
			if err != nil {
				return err
			}

			table := submission.NewWriterTable(cmd.OutOrStdout(), "ID", "NAME")
			for _, c := range categories {
				table.AppendRow([]string{strconv.FormatInt(c.ID, 10), c.Name})
			}
			return errors.Wrap(table.Flush(), "print categories")
		},
	}
}
