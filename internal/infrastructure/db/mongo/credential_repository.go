package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/identity-service/internal/core/domain"
)

const credentialCollection = "auth"

// CredentialRepository stores credentials in the "auth" collection.
type CredentialRepository struct {
	coll *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{coll: db.Collection(credentialCollection)}
}

type mongoCredential struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email,omitempty"`
	Username     string `bson:"username,omitempty"`
	PasswordHash string `bson:"password"`
	RefreshToken string `bson:"refresh_token,omitempty"`
	Status       string `bson:"status"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func toDocument(c *domain.Credential) mongoCredential {
	return mongoCredential{
		ID:           c.ID,
		Email:        c.Email,
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		RefreshToken: c.RefreshToken,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (d mongoCredential) toDomain() *domain.Credential {
	return &domain.Credential{
		ID:           d.ID,
		Email:        d.Email,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		RefreshToken: d.RefreshToken,
		Status:       domain.CredentialStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Create assigns a UUID and inserts the credential. The partial unique indexes
// from EnsureIndexes turn a concurrent duplicate into ErrCredentialExists.
func (r *CredentialRepository) Create(ctx context.Context, c *domain.Credential) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toDocument(c)
	doc.ID = uuid.NewString()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCredentialExists
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *CredentialRepository) FindByID(ctx context.Context, id string) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{"_id": id, "status": string(domain.StatusActive)})
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{"email": email, "status": string(domain.StatusActive)})
}

func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{"username": username, "status": string(domain.StatusActive)})
}

// FindByRefreshToken is intentionally not filtered by status.
func (r *CredentialRepository) FindByRefreshToken(ctx context.Context, token string) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{"refresh_token": token})
}

// Update replaces the whole document identified by c.ID.
func (r *CredentialRepository) Update(ctx context.Context, c *domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, toDocument(c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCredentialExists
		}
		return fmt.Errorf("replace credential: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

func (r *CredentialRepository) findOne(ctx context.Context, filter bson.M) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCredential
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the uniqueness and lookup indexes on the collection.
// Email and username are unique among active credentials only, so soft-deleted
// identities can be registered again.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	activeWith := func(field string) bson.D {
		return bson.D{
			{Key: "status", Value: string(domain.StatusActive)},
			{Key: field, Value: bson.D{{Key: "$exists", Value: true}}},
		}
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("uniq_active_email").
				SetUnique(true).
				SetPartialFilterExpression(activeWith("email")),
		},
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("uniq_active_username").
				SetUnique(true).
				SetPartialFilterExpression(activeWith("username")),
		},
		{
			Keys:    bson.D{{Key: "refresh_token", Value: 1}},
			Options: options.Index().SetName("refresh_token").SetSparse(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create credential indexes: %w", err)
	}
	return nil
}
