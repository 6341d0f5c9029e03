package mongodb

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection        = "users"
	internshipsCollection  = "internships"
	applicationsCollection = "applications"

	// IllegalOperation, returned by standalone servers for transaction commands.
	codeIllegalOperation = 20
)

type Config struct {
	URI             string
	Database        string
	ConnectTimeout  time.Duration
	UseTransactions bool
}

// Client is the process-wide storage handle. The connection is opened on first use
// and reused until Close. A failed connection attempt is retried by the next caller.
type Client struct {
	cfg           Config
	mu            sync.Mutex
	client        *mongo.Client
	db            *mongo.Database
	txUnsupported atomic.Bool
}

func NewClient(cfg Config) *Client {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	return &Client{cfg: cfg}
}

func (c *Client) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(c.cfg.URI))
	if err != nil {
		return nil, err
	}
	// Check connection
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	c.client = client
	c.db = client.Database(c.cfg.Database)
	log.Info().Str("database", c.cfg.Database).Msg("Connected to MongoDB")
	return c.db, nil
}

func (c *Client) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (c *Client) Ping(ctx context.Context) error {
	db, err := c.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects if a connection was ever opened. The handle may be reused afterwards.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	if err == nil {
		log.Info().Msg("MongoDB connection closed")
	}
	return err
}

// WithinTransaction runs fn in a multi-document transaction when enabled and supported by the
// deployment. Otherwise fn runs directly and a failure part way through is not rolled back.
func (c *Client) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !c.cfg.UseTransactions || c.txUnsupported.Load() {
		return fn(ctx)
	}

	db, err := c.Database(ctx)
	if err != nil {
		return err
	}
	sess, err := db.Client().StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if transactionsUnsupported(err) {
		c.txUnsupported.Store(true)
		log.Warn().Err(err).Msg("MongoDB deployment does not support transactions, running sequentially")
		return fn(ctx)
	}
	return err
}

func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == codeIllegalOperation
}
