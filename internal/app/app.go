// Package app wires the core services together over one storage
// medium: session, catalog, import pipeline, and notifications. The
// presentation layer only ever talks to the fields exposed here.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ssselery/techtrack/internal/catalog"
	"github.com/ssselery/techtrack/internal/importer"
	"github.com/ssselery/techtrack/internal/model"
	"github.com/ssselery/techtrack/internal/notify"
	"github.com/ssselery/techtrack/internal/session"
	"github.com/ssselery/techtrack/internal/storage"
)

// App bundles the assembled core services.
type App struct {
	Config   *model.AppConfig
	Store    *storage.SQLiteStore
	Session  *session.Session
	Catalog  *catalog.Manager
	Notifier *notify.Service
	Importer *importer.Pipeline
}

// New opens the configured storage medium and assembles the services
// around it.
func New(cfg *model.AppConfig) (*App, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening storage at %s: %w", cfg.Storage.Path, err)
	}

	sess := session.New(store)
	cat := catalog.New(store, sess)
	notifier := notify.New(store, sess, notify.TimerScheduler{},
		time.Duration(cfg.Notify.ToastSeconds)*time.Second)

	client := importer.NewClient(time.Duration(cfg.Import.TimeoutSec) * time.Second)
	pipeline := importer.New(client, cat, sess, notifier)

	// Logout resets the guest catalog in storage; drop the stale cache
	// so the next read sees the reset.
	sess.AddLogoutHook(func(context.Context) {
		cat.Invalidate(model.GuestIdentity)
	})

	return &App{
		Config:   cfg,
		Store:    store,
		Session:  sess,
		Catalog:  cat,
		Notifier: notifier,
		Importer: pipeline,
	}, nil
}

// Close releases the storage medium.
func (a *App) Close() error {
	return a.Store.Close()
}
