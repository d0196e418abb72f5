package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"

	"github.com/five82/lexicon/internal/config"
	"github.com/five82/lexicon/internal/dictionary"
	"github.com/five82/lexicon/internal/docstore"
	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/prefs"
	"github.com/five82/lexicon/internal/state"
	"github.com/five82/lexicon/internal/ui"
)

const (
	healthTimeout = 3 * time.Second
	loadTimeout   = 10 * time.Second
)

// Options configure the lexicon application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lexicon/prefs.toml
	StoreAddr  string // overrides store_addr from the config file
}

// ServeOptions configure the document store server.
type ServeOptions struct {
	ConfigPath string
	DBPath     string // overrides db_path
	Listen     string // overrides listen
}

// Run boots the lexicon TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := docstore.NewClient(cfg.StoreAddr)
	if err != nil {
		return fmt.Errorf("init store client: %w", err)
	}
	if err := ensureStoreAvailable(ctx, client); err != nil {
		return err
	}

	toaster := ui.NewToaster()
	dict, err := newDictionary(cfg, client, toaster, cfg.SubscribeDelay)
	if err != nil {
		return err
	}
	dict.Mount(ctx)
	defer dict.Unmount()

	err = ui.Run(ui.Options{
		Context:    ctx,
		Dictionary: dict,
		Toaster:    toaster,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
	})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// Serve runs the SQLite-backed document store until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}

	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}

	store, err := docstore.OpenSQLite(cfg.DBPath, docstore.WithUniqueField(cfg.Collection, entry.FieldName))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			glog.Warningf("close store: %v", err)
		}
	}()

	glog.Infof("serving %s from %s", cfg.Collection, cfg.DBPath)
	return docstore.NewServer(store, cfg.Listen).Run(ctx)
}

// List waits for the first push from the store and returns the visible words
// grouped into sections, filtered by search.
func List(ctx context.Context, opts Options, search string) ([]dictionary.Section, error) {
	dict, err := openSession(ctx, opts, nil)
	if err != nil {
		return nil, err
	}
	dict.Mount(ctx)
	defer dict.Unmount()

	timer := time.NewTimer(loadTimeout)
	defer timer.Stop()
	select {
	case <-dict.Loaded():
	case <-timer.C:
		return nil, errors.New("load words: timed out waiting for the store")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	dict.Dispatch(state.SetSearch{Text: search})
	return dict.Sections(), nil
}

// Add creates one word. Notifications go to notify.
func Add(ctx context.Context, opts Options, draft dictionary.Draft, notify dictionary.Notifier) (entry.Entry, error) {
	dict, err := openSession(ctx, opts, notify)
	if err != nil {
		return entry.Entry{}, err
	}
	defer dict.Unmount()
	return dict.Create(ctx, draft)
}

// openSession builds an unmounted dictionary for one-shot commands. The
// subscription delay only paces the TUI, so it is skipped here.
func openSession(ctx context.Context, opts Options, notify dictionary.Notifier) (*dictionary.Dictionary, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	client, err := docstore.NewClient(cfg.StoreAddr)
	if err != nil {
		return nil, fmt.Errorf("init store client: %w", err)
	}
	if err := ensureStoreAvailable(ctx, client); err != nil {
		return nil, err
	}
	return newDictionary(cfg, client, notify, 0)
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.StoreAddr != "" {
		cfg.StoreAddr = opts.StoreAddr
	}
	return cfg, nil
}

func newDictionary(cfg config.Config, store docstore.Store, notify dictionary.Notifier, subscribeDelay time.Duration) (*dictionary.Dictionary, error) {
	dict, err := dictionary.New(dictionary.Options{
		Store:          store,
		Collection:     cfg.Collection,
		Notifier:       notify,
		RollbackDelay:  cfg.RollbackDelay,
		SubscribeDelay: subscribeDelay,
		RetryInterval:  cfg.RetryInterval,
		Locale:         cfg.Locale,
	})
	if err != nil {
		return nil, fmt.Errorf("init dictionary: %w", err)
	}
	return dict, nil
}

func ensureStoreAvailable(ctx context.Context, client *docstore.Client) error {
	checkCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := client.Health(checkCtx); err != nil {
		return fmt.Errorf("document store unreachable (is `lexicon serve` running?): %w", err)
	}
	return nil
}
