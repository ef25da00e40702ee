package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/dispatch"
)

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the outreach email delivery worker",
		Long: `Consume the outreach queue and deliver each email through the
configured SMTP relay. Requires broker.url and the smtp.* settings.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			url := viper.GetString("broker.url")
			if url == "" {
				return fmt.Errorf("%w: broker.url is required for the worker", common.ErrMissingConfig)
			}
			host := viper.GetString("smtp.host")
			if host == "" {
				return fmt.Errorf("%w: smtp.host is required for the worker", common.ErrMissingConfig)
			}

			mq, err := dispatch.NewRabbitMQ(url)
			if err != nil {
				return err
			}
			defer func() { _ = mq.Close() }()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sender := dispatch.NewSMTPSender(
				host,
				viper.GetInt("smtp.port"),
				viper.GetString("smtp.user"),
				viper.GetString("smtp.password"),
				viper.GetString("smtp.from"),
			)

			worker := dispatch.NewWorker(mq.Ch, store, sender, viper.GetString("smtp.sender_name"))
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
