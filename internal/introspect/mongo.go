package introspect

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"medquery/internal/schema"
)

// SampleMongo infers a UnifiedSchema for a document database by sampling
// each collection. Field discovery is bounded by the sample size and depth
// cap in the schema package; collections that cannot be sampled fail the
// whole extraction rather than silently vanishing from the schema.
func SampleMongo(ctx context.Context, db *mongo.Database) (*schema.UnifiedSchema, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, &schema.IntrospectionError{Family: schema.FamilyMongo, Err: err}
	}
	if len(names) == 0 {
		return nil, schema.ErrEmptySchema
	}

	us := &schema.UnifiedSchema{
		DatabaseName: db.Name(),
		Family:       schema.FamilyMongo,
	}

	for _, name := range names {
		coll := db.Collection(name)

		count, err := coll.EstimatedDocumentCount(ctx)
		if err != nil {
			return nil, &schema.IntrospectionError{Family: schema.FamilyMongo, Err: err}
		}

		docs, err := sampleDocuments(ctx, coll)
		if err != nil {
			return nil, &schema.IntrospectionError{Family: schema.FamilyMongo, Err: err}
		}

		us.Tables = append(us.Tables, schema.NormalizeDocuments(name, count, docs))
	}
	return us, nil
}

// sampleDocuments pulls a bounded random sample via the $sample stage.
func sampleDocuments(ctx context.Context, coll *mongo.Collection) ([]map[string]interface{}, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: schema.DocumentSampleSize}}}},
	}
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []map[string]interface{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, map[string]interface{}(doc))
	}
	return docs, cur.Err()
}
