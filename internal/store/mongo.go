package store

import (
	"context"
	"errors"

	"interview-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists one document per session in the sessions
// collection, keyed by the session id string.
type MongoStore struct {
	Col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{Col: db.Collection("sessions")}
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := s.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MongoStore) Put(ctx context.Context, session *models.InterviewSession) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.Col.ReplaceOne(ctx, bson.M{"_id": session.ID}, session, opts)
	return err
}
