package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/config"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/dispatch"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/genai"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/service"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/storage"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/views"
)

// initStorage opens the lead database with proper path expansion and runs
// migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initViews opens the saved-views key-value store.
func initViews() (*views.Manager, *views.BadgerKV, error) {
	kvPath := config.ViewsPath(viper.GetString("views.path"))

	kv, err := views.NewBadgerKV(kvPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open views store: %w", err)
	}
	return views.NewManager(kv), kv, nil
}

// initDispatcher connects to the outreach broker if one is configured,
// otherwise falls back to the simulated dispatcher.
func initDispatcher() (service.Dispatcher, func(), error) {
	url := viper.GetString("broker.url")
	if url == "" {
		return &dispatch.SimulatedDispatcher{}, func() {}, nil
	}

	mq, err := dispatch.NewRabbitMQ(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	d := dispatch.NewQueueDispatcher(mq.Ch, viper.GetString("email.template"))
	return d, func() { _ = mq.Close() }, nil
}

// initGenerator builds the text-generation service. Without an API key it
// runs in simulation mode.
func initGenerator() (*genai.Service, error) {
	client, err := genai.NewClient(genai.Config{
		Provider: viper.GetString("genai.provider"),
		APIKey:   viper.GetString("genai.api_key"),
		Model:    viper.GetString("genai.model"),
	})
	if err != nil {
		return nil, err
	}
	return genai.NewService(client), nil
}
