package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

type UserRepository struct {
	db     *mongo.Database
	coll   *mongo.Collection
	cipher ports.PasswordCipher
}

func NewUserRepository(db *mongo.Database, cipher ports.PasswordCipher) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(collectionUsers), cipher: cipher}
}

type mongoUser struct {
	ID        int64  `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Username  string `bson:"username"`
	Email     string `bson:"email"`
	Password  string `bson:"password"`
	IsActive  bool   `bson:"is_active"`
	Role      string `bson:"role"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionUsers)
	if err != nil {
		return nil, err
	}

	created := *user
	created.ID = id
	doc, err := toUserDoc(&created, r.cipher)
	if err != nil {
		return nil, err
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("insert user: %w", domain.ErrUserExists)
		}
		return nil, storeError("insert user", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeError("find user", err)
	}
	return fromUserDoc(&doc, r.cipher)
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storeError("list users", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("decode users", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		u, err := fromUserDoc(&docs[i], r.cipher)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, password string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	encrypted, err := r.cipher.Encrypt(password)
	if err != nil {
		return fmt.Errorf("encrypt password: %w", err)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"password": string(encrypted)}},
	)
	if err != nil {
		return storeError("update password", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toUserDoc(u *domain.User, cipher ports.PasswordCipher) (*mongoUser, error) {
	encrypted, err := cipher.Encrypt(u.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypt password: %w", err)
	}
	return &mongoUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Password:  string(encrypted),
		IsActive:  u.IsActive,
		Role:      string(u.Role),
	}, nil
}

func fromUserDoc(doc *mongoUser, cipher ports.PasswordCipher) (*domain.User, error) {
	password, err := cipher.Decrypt([]byte(doc.Password))
	if err != nil {
		return nil, fmt.Errorf("decrypt password of user %d: %w", doc.ID, err)
	}
	return &domain.User{
		ID:        doc.ID,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Username:  doc.Username,
		Email:     doc.Email,
		Password:  password,
		IsActive:  doc.IsActive,
		Role:      domain.Role(doc.Role),
	}, nil
}
