package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todoapp/todo-service/internal/core/domain"
)

type TodoRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{db: db, col: db.Collection(collectionTodos)}
}

type mongoTodo struct {
	ID          int64   `bson:"_id"`
	Title       string  `bson:"title"`
	Description *string `bson:"description"`
	Finished    bool    `bson:"finished"`
	UserID      int64   `bson:"user_id"`
}

func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionTodos)
	if err != nil {
		return nil, err
	}

	created := *t
	created.ID = id
	if _, err := r.col.InsertOne(ctx, toTodoDoc(&created)); err != nil {
		return nil, storeError("insert todo", err)
	}
	return &created, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTodo
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, storeError("find todo", err)
	}
	return fromTodoDoc(&doc), nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storeError("list todos", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTodo
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("decode todos", err)
	}

	todos := make([]*domain.Todo, 0, len(docs))
	for i := range docs {
		todos = append(todos, fromTodoDoc(&docs[i]))
	}
	return todos, nil
}

func (r *TodoRepository) Update(ctx context.Context, t *domain.Todo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": t.ID}, bson.M{"$set": bson.M{
		"title":       t.Title,
		"description": t.Description,
		"finished":    t.Finished,
	}})
	if err != nil {
		return storeError("update todo", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete todo", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func toTodoDoc(t *domain.Todo) *mongoTodo {
	return &mongoTodo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Finished:    t.Finished,
		UserID:      t.UserID,
	}
}

func fromTodoDoc(doc *mongoTodo) *domain.Todo {
	return &domain.Todo{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		Finished:    doc.Finished,
		UserID:      doc.UserID,
	}
}
