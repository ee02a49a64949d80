package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

const collectionUsers = "users"

// Index names double as the discriminator when a duplicate-key error must be
// mapped back to the field that collided.
const (
	indexUserEmail    = "uniq_email"
	indexUserDocument = "uniq_document"
)

// UserRepository implements ports.UserRepository on MongoDB. The unique
// indexes on email and document are the final arbiter for concurrent
// registrations and updates racing past the service-level pre-checks.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID           string    `bson:"_id"`
	FullName     string    `bson:"full_name"`
	Document     string    `bson:"document"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	MainRole     string    `bson:"main_role"`
	CurrentRole  string    `bson:"current_role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID.String(),
		FullName:     u.FullName,
		Document:     u.Document,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		MainRole:     string(u.MainRole),
		CurrentRole:  string(u.CurrentRole),
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

func (d userDoc) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", d.ID, err)
	}
	return &domain.User{
		ID:           id,
		FullName:     d.FullName,
		Document:     d.Document,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		MainRole:     domain.Role(d.MainRole),
		CurrentRole:  domain.Role(d.CurrentRole),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain()
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *UserRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	return r.exists(ctx, bson.M{"document": document})
}

func (r *UserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toUserDoc(user)); err != nil {
		if mapped := mapDuplicateKey(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID.String()}, toUserDoc(user))
	if err != nil {
		if mapped := mapDuplicateKey(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique indexes uniqueness enforcement depends on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(indexUserEmail).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "document", Value: 1}},
			Options: options.Index().SetName(indexUserDocument).SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// mapDuplicateKey translates a unique-constraint violation into the matching
// domain error, so a race caught only at write time surfaces exactly like
// the pre-check would have. Returns nil for unrelated errors.
func mapDuplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, indexUserDocument):
		return domain.ErrDocumentExists
	default:
		// The email index is the only other unique index on the collection.
		return domain.ErrEmailExists
	}
}
