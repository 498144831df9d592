package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/stackcensus/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "stackcensus"
	DefaultMongoCollection = "documents"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps each key as one document whose body is the raw JSON text.
type MongoStore struct {
	cfg    MongoConfig
	logger *log.Logger

	mu     sync.Mutex
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoDocument struct {
	Key       string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore creates a MongoDB store. No network calls are made until Connect.
func NewMongoStore(cfg MongoConfig, logger *log.Logger) (*MongoStore, error) {
	cfg.URI = strings.TrimSpace(cfg.URI)
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongodb uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if logger == nil {
		logger = log.Default()
	}
	return &MongoStore{cfg: cfg, logger: logger}, nil
}

// Connect dials and pings the server once. Later calls reuse the client.
func (m *MongoStore) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client != nil {
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.cfg.URI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	m.client = client
	m.coll = client.Database(m.cfg.Database).Collection(m.cfg.Collection)
	m.logger.Debug("connected to mongodb", "database", m.cfg.Database, "collection", m.cfg.Collection)
	return nil
}

// IsConnected reports whether a client is held.
func (m *MongoStore) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}

// Exists reports whether a document with _id key exists.
func (m *MongoStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := m.coll.CountDocuments(ctx, bson.M{"_id": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get returns the stored body of the document with _id key, or [ErrNotFound].
func (m *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc mongoDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Body), nil
}

// Put upserts the document for key with data as its body.
func (m *MongoStore) Put(ctx context.Context, key string, data []byte) error {
	doc := mongoDocument{Key: key, Body: string(data), UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

// Location returns database.collection/key.
func (m *MongoStore) Location(key string) string {
	return m.cfg.Database + "." + m.cfg.Collection + "/" + key
}

// Close disconnects the client, if any.
func (m *MongoStore) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client, m.coll = nil, nil
	return err
}
