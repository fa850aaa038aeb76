package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/registryhq/birth-registry/internal/core/domain"
	"github.com/registryhq/birth-registry/internal/core/ports"
)

const detailCollection = "birth_details"

type MongoDetailRepository struct {
	coll *mongo.Collection
}

func NewDetailRepository(db *mongo.Database) *MongoDetailRepository {
	return &MongoDetailRepository{coll: db.Collection(detailCollection)}
}

type mongoDetail struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Age          int                `bson:"age"`
	YearOfBirth  int                `bson:"year_of_birth"`
	PlaceOfBirth string             `bson:"place_of_birth"`
	UserID       string             `bson:"user_id,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (md mongoDetail) toDomain() *domain.BirthDetail {
	return &domain.BirthDetail{
		ID:           md.ID.Hex(),
		Age:          md.Age,
		YearOfBirth:  md.YearOfBirth,
		PlaceOfBirth: md.PlaceOfBirth,
		UserID:       md.UserID,
		CreatedAt:    unixToTime(md.CreatedAt),
		UpdatedAt:    unixToTime(md.UpdatedAt),
	}
}

func (r *MongoDetailRepository) Create(ctx context.Context, detail *domain.BirthDetail) (*domain.BirthDetail, error) {
	doc := mongoDetail{
		Age:          detail.Age,
		YearOfBirth:  detail.YearOfBirth,
		PlaceOfBirth: detail.PlaceOfBirth,
		UserID:       detail.UserID,
		CreatedAt:    detail.CreatedAt.Unix(),
		UpdatedAt:    detail.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert detail: %w", err)
	}

	created := *detail
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoDetailRepository) List(ctx context.Context) ([]*domain.BirthDetail, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}
	defer cursor.Close(ctx)

	var details []*domain.BirthDetail
	for cursor.Next(ctx) {
		var md mongoDetail
		if err := cursor.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode detail: %w", err)
		}
		details = append(details, md.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}
	return details, nil
}

// Update overwrites the three payload fields and refreshes updated_at; the
// creator's user_id is left untouched. Returns the updated document.
func (r *MongoDetailRepository) Update(ctx context.Context, id string, input ports.UpdateDetailInput) (*domain.BirthDetail, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDetailNotFound
	}

	update := bson.M{"$set": bson.M{
		"age":            input.Age,
		"year_of_birth":  input.YearOfBirth,
		"place_of_birth": input.PlaceOfBirth,
		"updated_at":     time.Now().UTC().Unix(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var md mongoDetail
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDetailNotFound
		}
		return nil, fmt.Errorf("update detail: %w", err)
	}
	return md.toDomain(), nil
}

// Delete removes a record by id and returns the removed document.
func (r *MongoDetailRepository) Delete(ctx context.Context, id string) (*domain.BirthDetail, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDetailNotFound
	}

	var md mongoDetail
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDetailNotFound
		}
		return nil, fmt.Errorf("delete detail: %w", err)
	}
	return md.toDomain(), nil
}
