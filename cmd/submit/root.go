package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/clients/budgetapi"
	"max.ks1230/budget-tracker/internal/clients/tg"
	"max.ks1230/budget-tracker/internal/config"
	"max.ks1230/budget-tracker/internal/logger"
	"max.ks1230/budget-tracker/internal/model/submission"
)

const defaultServerURL = "http://localhost:8080"

// errNotAdded is returned after the outcome was already reported to the user.
var errNotAdded = errors.New("transaction was not added")

type options struct {
	serverURL string
	cfgFile   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "submit",
		Short: "Submit and list budget transactions",
		Long: `submit talks to a running budget tracker server.

  submit transaction -f date=2024-01-01 -f amount=12.50 -f category_id=1 -f notes=lunch
  submit transactions
  submit categories`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.serverURL, "server", "", "server base URL (default from config or "+defaultServerURL+")")
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file")

	root.AddCommand(
		newTransactionCmd(opts),
		newTransactionsCmd(opts),
		newCategoriesCmd(opts),
	)
	return root
}

func (o *options) loadConfig() (*config.Service, error) {
	if o.cfgFile == "" {
		return nil, nil
	}
	conf, err := config.FromFile(o.cfgFile)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return conf, nil
}

func (o *options) client(conf *config.Service) *budgetapi.Client {
	url := o.serverURL
	if url == "" && conf != nil {
		url = conf.HTTP().BaseURL()
	}
	if url == "" {
		url = defaultServerURL
	}
	return budgetapi.New(url, nil)
}

// notifier prints to stderr and mirrors to Telegram when a chat is configured.
func notifier(cmd *cobra.Command, conf *config.Service) submission.Notifier {
	notifiers := submission.MultiNotifier{submission.WriterNotifier{W: cmd.ErrOrStderr()}}
	if conf == nil || conf.Telegram().Token() == "" || conf.Telegram().ChatID() == 0 {
		return notifiers
	}

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Warn("telegram notifications disabled", zap.Error(err))
		return notifiers
	}
	return append(notifiers, client.Notifier(conf.Telegram().ChatID()))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
