// Package mongodb persists the inventory document in a MongoDB
// collection, one record per deployment under a fixed key.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chemstock/internal/domain/models"
)

// Store implements the inventory store on MongoDB. The document is
// carried as a JSON payload inside the wrapper record so its wire
// shape stays byte-identical with the file backend.
type Store struct {
	client      *mongo.Client
	dbName      string
	collName    string
	documentKey string
}

type stateRecord struct {
	ID        string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri, dbName, documentKey string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client:      client,
		dbName:      dbName,
		collName:    "state_documents",
		documentKey: documentKey,
	}, nil
}

// Load fetches the document; a missing record loads as the zero document.
func (s *Store) Load(ctx context.Context) (models.Document, error) {
	collection := s.client.Database(s.dbName).Collection(s.collName)

	var record stateRecord
	err := collection.FindOne(ctx, bson.M{"_id": s.documentKey}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Document{}, nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to fetch state document: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(record.Payload), &doc); err != nil {
		return models.Document{}, fmt.Errorf("failed to decode state payload: %w", err)
	}
	return doc, nil
}

// Save upserts the document under the fixed key.
func (s *Store) Save(ctx context.Context, doc models.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode state payload: %w", err)
	}

	record := stateRecord{
		ID:        s.documentKey,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}

	collection := s.client.Database(s.dbName).Collection(s.collName)
	_, err = collection.ReplaceOne(ctx, bson.M{"_id": s.documentKey}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert state document: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
