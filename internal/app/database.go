package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel/internal/config"
	"parcel/internal/repository/mongodb"
)

// ErrInvalidURI marks a connection string the driver rejects without
// reaching the network. Retrying cannot fix it.
var ErrInvalidURI = errors.New("invalid mongodb connection string")

// Database owns the MongoDB client.
//
// The client is connected lazily: until one connect and ping succeed, every
// use retries them. A mongodb+srv address resolves its SRV record at connect
// time, so a DNS outage at startup lands here too. Indexes are ensured once,
// right after the first successful ping and before any caller gets the client.
type Database struct {
	cfg   config.DatabaseConfig
	nrApp *newrelic.Application
	log   zerolog.Logger

	sem    chan struct{} // guards client
	client *mongo.Client
	ready  atomic.Pointer[mongo.Client]
}

// NewDatabase creates a Database without connecting.
// If nrApp is provided, driver commands are recorded as datastore segments.
func NewDatabase(cfg config.DatabaseConfig, nrApp *newrelic.Application, log zerolog.Logger) *Database {
	return &Database{
		cfg:   cfg,
		nrApp: nrApp,
		log:   log,
		sem:   make(chan struct{}, 1),
	}
}

// OpenDatabase connects at startup and decides whether the service may run.
//
// A malformed connection string is always returned as an error. Any other
// failure is returned only with cfg.FailFast; otherwise it is logged and the
// service runs degraded, with requests failing until the database answers.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, nrApp *newrelic.Application, log zerolog.Logger) (*Database, error) {
	db := NewDatabase(cfg, nrApp, log)

	_, err := db.Client(ctx)
	switch {
	case err == nil:
		log.Info().Str("database", cfg.Name).Msg("Connected to MongoDB")
	case errors.Is(err, ErrInvalidURI):
		return nil, err
	case cfg.FailFast:
		_ = db.Disconnect(context.Background())
		return nil, err
	default:
		log.Error().Err(err).Msg("MongoDB connection failed, serving in degraded mode")
	}

	return db, nil
}

// Client returns a client that has answered a ping, connecting on demand.
func (d *Database) Client(ctx context.Context) (*mongo.Client, error) {
	if client := d.ready.Load(); client != nil {
		return client, nil
	}

	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-d.sem }()

	if client := d.ready.Load(); client != nil {
		return client, nil
	}

	if d.client == nil {
		client, err := d.connect(ctx)
		if err != nil {
			return nil, err
		}
		d.client = client
	}

	if err := Ping(ctx, d.client); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	if err := mongodb.EnsureIndexes(ctx, d.client.Database(d.cfg.Name)); err != nil {
		d.log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	d.ready.Store(d.client)
	return d.client, nil
}

// Collection returns a named collection resolved through Client on each call.
func (d *Database) Collection(name string) mongodb.CollectionFunc {
	return func(ctx context.Context) (*mongo.Collection, error) {
		client, err := d.Client(ctx)
		if err != nil {
			return nil, err
		}
		return client.Database(d.cfg.Name).Collection(name), nil
	}
}

// Ping checks the database, connecting first if needed.
func (d *Database) Ping(ctx context.Context) error {
	client, err := d.Client(ctx)
	if err != nil {
		return err
	}
	return Ping(ctx, client)
}

// Disconnect closes the client if one was ever created.
func (d *Database) Disconnect(ctx context.Context) error {
	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-d.sem }()

	if d.client == nil {
		return nil
	}
	return d.client.Disconnect(ctx)
}

func (d *Database) connect(ctx context.Context) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(d.cfg.ConnectionURI()).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(d.cfg.ConnectTimeout).
		SetServerSelectionTimeout(d.cfg.ConnectTimeout)

	if d.nrApp != nil {
		opts.SetMonitor(nrmongo.NewCommandMonitor(nil))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		if isNetworkError(err) {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	return client, nil
}

// isNetworkError reports whether err came from DNS or the network rather
// than from parsing the connection string.
func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Ping runs the no-op ping command against the admin database.
func Ping(ctx context.Context, client *mongo.Client) error {
	return client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
