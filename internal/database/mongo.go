package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"catalog-orders/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoGateway struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoGateway connects to MongoDB and returns a Gateway over the named database.
func NewMongoGateway(ctx context.Context, uri, database string) (Gateway, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &mongoGateway{client: client, db: client.Database(database)}, nil
}

func (g *mongoGateway) Insert(ctx context.Context, coll Collection, doc any) (domain.ID, error) {
	result, err := g.db.Collection(string(coll)).InsertOne(ctx, doc)
	if err != nil {
		return domain.NilID, fmt.Errorf("failed to insert into %s: %w", coll, err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return domain.NilID, fmt.Errorf("unexpected id type %T inserted into %s", result.InsertedID, coll)
	}

	return domain.ID(oid), nil
}

func (g *mongoGateway) Count(ctx context.Context, coll Collection, filter Filter) (int64, error) {
	n, err := g.db.Collection(string(coll)).CountDocuments(ctx, mongoFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", coll, err)
	}
	return n, nil
}

func (g *mongoGateway) Find(ctx context.Context, coll Collection, filter Filter, page domain.Page, out any) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit))

	cursor, err := g.db.Collection(string(coll)).Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", coll, err)
	}

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll, err)
	}

	return nil
}

func (g *mongoGateway) FindByID(ctx context.Context, coll Collection, id domain.ID, out any) error {
	err := g.db.Collection(string(coll)).FindOne(ctx, bson.M{"_id": id.ObjectID()}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to find %s by id: %w", coll, err)
	}
	return nil
}

func (g *mongoGateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx, readpref.Primary())
}

func (g *mongoGateway) Close(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}

// mongoFilter translates a Filter into a query document. Array conditions
// use a dotted path, which matches when any element matches.
func mongoFilter(filter Filter) bson.D {
	query := bson.D{}
	for _, c := range filter {
		switch c.Op {
		case OpEq:
			query = append(query, bson.E{Key: c.Field, Value: c.Value})
		case OpContainsFold:
			query = append(query, bson.E{Key: c.Field, Value: bson.M{
				"$regex":   regexp.QuoteMeta(c.Value),
				"$options": "i",
			}})
		case OpAnyEq:
			query = append(query, bson.E{Key: c.Field + "." + c.Sub, Value: c.Value})
		}
	}
	return query
}
