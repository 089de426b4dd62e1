package repo

import (
	"context"
	"errors"
	"time"

	"github.com/crucial707/account-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection is the collection name used by the document store.
const UsersCollection = "users"

// userDocument is the on-disk shape of a user in MongoDB.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ==========================
// MongoUserRepo
// ==========================
type MongoUserRepo struct {
	Coll *mongo.Collection
	now  func() time.Time
}

func NewMongoUserRepo(coll *mongo.Collection) *MongoUserRepo {
	return &MongoUserRepo{Coll: coll, now: time.Now}
}

// EnsureIndexes creates the unique email index that backs ErrDuplicateEmail.
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.Coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return err
}

// ==========================
// Find By Email
// ==========================
func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// ==========================
// Find By ID
// ==========================
func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// ==========================
// Create User
// ==========================
func (r *MongoUserRepo) Create(ctx context.Context, user models.User) (models.User, error) {
	// Mongo stores milliseconds; truncate so the returned copy matches a later read.
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := r.Coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}

	return doc.toModel(), nil
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var doc userDocument
	err := r.Coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return doc.toModel(), nil
}
