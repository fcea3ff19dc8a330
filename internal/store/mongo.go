package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	CollectionUsers = "users"
	CollectionChats = "chats"
)

// MongoStore wraps the MongoDB client and exposes the document operations
// the diary needs: upsert-merge on user documents, set-union append on day
// documents, and date-range reads.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	chats  *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &MongoStore{
		client: client,
		users:  db.Collection(CollectionUsers),
		chats:  db.Collection(CollectionChats),
	}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ChatDayID builds the _id of a user's day document.
func ChatDayID(userID, date string) string {
	return userID + ":" + date
}

// EnsureUser lazily creates the user document. The creation timestamp is
// written only on insert, so repeated calls never overwrite it.
func (s *MongoStore) EnsureUser(ctx context.Context, userID string, createdAt time.Time) error {
	filter := bson.M{"_id": userID}
	update := bson.M{"$setOnInsert": bson.M{"created_at": createdAt}}

	if _, err := s.users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", userID, err)
	}
	return nil
}

// AppendMessage appends a message to the user's day document, creating the
// document on first write. $addToSet gives set-union semantics: a retried
// identical {text, timestamp} pair is not inserted twice, while two calls
// with the same text but different timestamps both persist.
func (s *MongoStore) AppendMessage(ctx context.Context, userID, date string, msg Message) error {
	filter := bson.M{"_id": ChatDayID(userID, date)}
	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id": userID,
			"date":    date,
		},
		"$addToSet": bson.M{"messages": msg},
	}

	if _, err := s.chats.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to append message for user %s on %s: %w", userID, date, err)
	}
	return nil
}

// ChatDaysSince returns the user's day documents with date >= fromDate,
// oldest first.
func (s *MongoStore) ChatDaysSince(ctx context.Context, userID, fromDate string) ([]ChatDay, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": fromDate},
	}

	cursor, err := s.chats.Find(ctx, filter, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query chat days for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var days []ChatDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode chat days for user %s: %w", userID, err)
	}
	return days, nil
}

// MergeProfile merges the profile sub-document into the user document,
// creating the user if needed. Fields outside profile.* are untouched.
func (s *MongoStore) MergeProfile(ctx context.Context, userID string, p Profile, createdAt time.Time) error {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set": bson.M{
			"profile.name": p.Name,
			"profile.pfp":  p.Pfp,
		},
		"$setOnInsert": bson.M{"created_at": createdAt},
	}

	if _, err := s.users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to merge profile for user %s: %w", userID, err)
	}
	return nil
}

// GetRiddleState reads the user's riddle sub-document. A missing user
// yields the zero state, matching lazy user creation.
func (s *MongoStore) GetRiddleState(ctx context.Context, userID string) (RiddleState, error) {
	var user User
	err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return RiddleState{}, nil
	}
	if err != nil {
		return RiddleState{}, fmt.Errorf("failed to read riddle state for user %s: %w", userID, err)
	}
	return user.Riddle, nil
}

// SetRiddleIssued records a newly issued riddle and clears any prior
// completion date in the same write.
func (s *MongoStore) SetRiddleIssued(ctx context.Context, userID, question string, issuedAt time.Time) error {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set":         bson.M{"riddle.last_riddle": question},
		"$unset":       bson.M{"riddle.last_chat_date": ""},
		"$setOnInsert": bson.M{"created_at": issuedAt},
	}

	if _, err := s.users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to record issued riddle for user %s: %w", userID, err)
	}
	return nil
}

// SetRiddleCompleted marks the outstanding riddle as solved on the given
// date.
func (s *MongoStore) SetRiddleCompleted(ctx context.Context, userID, date string) error {
	filter := bson.M{"_id": userID}
	update := bson.M{"$set": bson.M{"riddle.last_chat_date": date}}

	if _, err := s.users.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to record riddle completion for user %s: %w", userID, err)
	}
	return nil
}
