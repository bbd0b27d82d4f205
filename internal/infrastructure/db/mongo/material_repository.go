package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

const materialsCollection = "materials"

type MaterialRepository struct {
	coll *mongo.Collection
}

func NewMaterialRepository(db *mongo.Database) *MaterialRepository {
	return &MaterialRepository{coll: db.Collection(materialsCollection)}
}

type materialDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	RatePerCuMetre float64            `bson:"rate_per_cu_metre"`
	Unit           string             `bson:"unit"`
	Stock          float64            `bson:"stock"`
	ImageURL       string             `bson:"image_url,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d materialDoc) toDomain() *domain.Material {
	return &domain.Material{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		RatePerCuMetre: d.RatePerCuMetre,
		Unit:           d.Unit,
		Stock:          d.Stock,
		ImageURL:       d.ImageURL,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Create inserts a new material. The unique name index is the sole defense
// against a concurrent-create race; its violation maps to
// ErrDuplicateMaterialName.
func (r *MaterialRepository) Create(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := materialDoc{
		Name:           m.Name,
		RatePerCuMetre: m.RatePerCuMetre,
		Unit:           m.Unit,
		Stock:          m.Stock,
		ImageURL:       m.ImageURL,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateMaterialName
		}
		return nil, fmt.Errorf("insert material: %w", err)
	}

	created := *m
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*domain.Material, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMaterialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var d materialDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("find material: %w", err)
	}
	return d.toDomain(), nil
}

// FindAll returns every material, newest-created first.
func (r *MaterialRepository) FindAll(ctx context.Context) ([]*domain.Material, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer cur.Close(ctx)

	var materials []*domain.Material
	for cur.Next(ctx) {
		var d materialDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode material: %w", err)
		}
		materials = append(materials, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return materials, nil
}

// Update applies only the present fields of upd and returns the updated
// record. Last write wins between concurrent updates; the unique name index
// still rejects a rename onto an existing name.
func (r *MaterialRepository) Update(ctx context.Context, id string, upd ports.MaterialUpdate) (*domain.Material, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMaterialNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.RatePerCuMetre != nil {
		set["rate_per_cu_metre"] = *upd.RatePerCuMetre
	}
	if upd.Unit != nil {
		set["unit"] = *upd.Unit
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d materialDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMaterialNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateMaterialName
		}
		return nil, fmt.Errorf("update material: %w", err)
	}
	return d.toDomain(), nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMaterialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index.
func (r *MaterialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
