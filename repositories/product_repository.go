package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"proshop/config"
	"proshop/models"
)

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: config.DB.Collection("products")}
}

// Search returns the page of products whose name contains the keyword
// (case-insensitive) plus the total match count.
func (r *ProductRepository) Search(ctx context.Context, keyword string, skip, limit int) ([]models.Product, int, error) {
	filter := bson.M{}
	if keyword != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

func (r *ProductRepository) TopRated(ctx context.Context, limit int) ([]models.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PushReview appends the review only if the user has no review on the
// product yet. The duplicate check and the append are a single
// document-level conditional update, so concurrent submissions cannot
// both succeed. Returns false when the precondition did not hold.
func (r *ProductRepository) PushReview(ctx context.Context, id primitive.ObjectID, review models.Review) (bool, error) {
	filter := bson.M{
		"_id":          id,
		"reviews.user": bson.M{"$ne": review.User},
	}
	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// UpdateAggregates writes only the derived fields, leaving the review
// array untouched so a concurrent push is not clobbered.
func (r *ProductRepository) UpdateAggregates(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"rating":      rating,
			"num_reviews": numReviews,
			"updated_at":  time.Now(),
		},
	})
	return err
}

func (r *ProductRepository) SetReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review, rating float64, numReviews int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"reviews":     reviews,
			"rating":      rating,
			"num_reviews": numReviews,
			"updated_at":  time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProductRepository) SetImages(ctx context.Context, id primitive.ObjectID, images []models.ImageRef) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"images":     images,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
