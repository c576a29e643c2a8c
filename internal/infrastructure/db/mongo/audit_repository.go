package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// AuditRepository persists auth events to the auth_events collection.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := bson.M{
		"username":    event.Username,
		"kind":        string(event.Kind),
		"success":     event.Success,
		"remote_ip":   event.RemoteIP,
		"occurred_at": event.OccurredAt.UTC(),
	}

	if _, err := r.db.Collection(collectionAuthEvents).InsertOne(ctx, doc); err != nil {
		return storeError("insert auth event", err)
	}
	return nil
}
