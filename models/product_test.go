package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestImageRefUnmarshalJSON(t *testing.T) {
	t.Run("legacy string", func(t *testing.T) {
		var img ImageRef
		err := json.Unmarshal([]byte(`"/uploads/photo.jpg"`), &img)
		require.NoError(t, err)
		assert.Equal(t, "/uploads/photo.jpg", img.URL)
		assert.Empty(t, img.PublicID)
	})

	t.Run("object", func(t *testing.T) {
		var img ImageRef
		err := json.Unmarshal([]byte(`{"url":"https://res.cloudinary.com/demo/img.jpg","public_id":"proshop/img"}`), &img)
		require.NoError(t, err)
		assert.Equal(t, "https://res.cloudinary.com/demo/img.jpg", img.URL)
		assert.Equal(t, "proshop/img", img.PublicID)
	})

	t.Run("mixed list on product", func(t *testing.T) {
		var p Product
		payload := `{"name":"Camera","images":["/uploads/a.jpg",{"url":"/uploads/b.jpg","public_id":"proshop/b"}]}`
		err := json.Unmarshal([]byte(payload), &p)
		require.NoError(t, err)
		require.Len(t, p.Images, 2)
		assert.Equal(t, ImageRef{URL: "/uploads/a.jpg"}, p.Images[0])
		assert.Equal(t, ImageRef{URL: "/uploads/b.jpg", PublicID: "proshop/b"}, p.Images[1])
	})
}

func TestImageRefUnmarshalBSON(t *testing.T) {
	doc := bson.M{
		"_id":  primitive.NewObjectID(),
		"user": primitive.NewObjectID(),
		"name": "Camera",
		"images": bson.A{
			"/uploads/a.jpg",
			bson.M{"url": "/uploads/b.jpg", "public_id": "proshop/b"},
		},
	}
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var p Product
	require.NoError(t, bson.Unmarshal(raw, &p))
	require.Len(t, p.Images, 2)
	assert.Equal(t, ImageRef{URL: "/uploads/a.jpg"}, p.Images[0])
	assert.Equal(t, ImageRef{URL: "/uploads/b.jpg", PublicID: "proshop/b"}, p.Images[1])
}

func TestDisplayImage(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name:    "images list wins",
			product: Product{Image: "/uploads/legacy.jpg", Images: []ImageRef{{URL: "/uploads/new.jpg"}}},
			want:    "/uploads/new.jpg",
		},
		{
			name:    "legacy field when list empty",
			product: Product{Image: "/uploads/legacy.jpg"},
			want:    "/uploads/legacy.jpg",
		},
		{
			name:    "placeholder when nothing stored",
			product: Product{},
			want:    PlaceholderImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.DisplayImage())
		})
	}
}

func TestRecalcAggregates(t *testing.T) {
	now := time.Now()
	p := Product{Reviews: []Review{
		{ID: primitive.NewObjectID(), Rating: 5, CreatedAt: now},
		{ID: primitive.NewObjectID(), Rating: 3, CreatedAt: now},
		{ID: primitive.NewObjectID(), Rating: 4, CreatedAt: now},
	}}

	p.RecalcAggregates()
	assert.Equal(t, 3, p.NumReviews)
	assert.InDelta(t, 4.0, p.Rating, 0.0001)

	// Drop the 3-star review and the mean moves to 4.5.
	p.Reviews = append(p.Reviews[:1], p.Reviews[2])
	p.RecalcAggregates()
	assert.Equal(t, 2, p.NumReviews)
	assert.InDelta(t, 4.5, p.Rating, 0.0001)

	p.Reviews = nil
	p.RecalcAggregates()
	assert.Equal(t, 0, p.NumReviews)
	assert.Zero(t, p.Rating)
}
