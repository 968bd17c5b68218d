package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceholderImage is served when a product has no stored image at all.
const PlaceholderImage = "/images/sample.jpg"

// ImageRef is a stored product image. Older documents persisted images as
// bare URL strings; newer ones as {url, public_id} objects where public_id
// is the Cloudinary handle needed to delete the file later. Decoding
// accepts both shapes so every read site works with a single type.
type ImageRef struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id,omitempty" bson:"public_id,omitempty"`
}

func (i *ImageRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.URL = s
		i.PublicID = ""
		return nil
	}

	type alias ImageRef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*i = ImageRef(a)
	return nil
}

func (i *ImageRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeString:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		i.URL = s
		i.PublicID = ""
		return nil
	case bson.TypeEmbeddedDocument:
		type alias ImageRef
		var a alias
		if err := bson.UnmarshalValue(t, data, &a); err != nil {
			return err
		}
		*i = ImageRef(a)
		return nil
	default:
		return fmt.Errorf("cannot decode %s into an image entry", t)
	}
}

type Review struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Name      string             `json:"name" bson:"name"`
	Rating    float64            `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

type Product struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User         primitive.ObjectID `json:"user" bson:"user"`
	Name         string             `json:"name" bson:"name"`
	Image        string             `json:"image" bson:"image"`
	Images       []ImageRef         `json:"images" bson:"images"`
	Brand        string             `json:"brand" bson:"brand"`
	Category     string             `json:"category" bson:"category"`
	Description  string             `json:"description" bson:"description"`
	Price        float64            `json:"price" bson:"price"`
	CountInStock int                `json:"countInStock" bson:"count_in_stock"`
	Rating       float64            `json:"rating" bson:"rating"`
	NumReviews   int                `json:"numReviews" bson:"num_reviews"`
	Reviews      []Review           `json:"reviews" bson:"reviews"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updated_at"`
}

// DisplayImage normalizes the two image generations into one URL:
// first entry of images, else the legacy image field, else the placeholder.
func (p *Product) DisplayImage() string {
	if len(p.Images) > 0 && p.Images[0].URL != "" {
		return p.Images[0].URL
	}
	if p.Image != "" {
		return p.Image
	}
	return PlaceholderImage
}

// RecalcAggregates rederives numReviews and rating from the review list.
// Rating is 0 when there are no reviews.
func (p *Product) RecalcAggregates() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = sum / float64(p.NumReviews)
}
