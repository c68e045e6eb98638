package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"raichu/internal/raichu"
)

const (
	gamesCollection = "games"
	mongoTimeout    = 5 * time.Second
)

// 存库用的结构：局面存成编码字符串
type gameDoc struct {
	ID        string        `bson:"_id"`
	N         int           `bson:"n"`
	Board     string        `bson:"board"`
	ToMove    string        `bson:"to_move"`
	History   []raichu.Move `bson:"history"`
	Status    string        `bson:"status"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

func toDoc(g *GameState) gameDoc {
	return gameDoc{
		ID:        g.ID,
		N:         g.N,
		Board:     g.Pos.Encode(),
		ToMove:    g.Pos.SideToMove.String(),
		History:   g.History,
		Status:    g.Status,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func fromDoc(d gameDoc) (*GameState, error) {
	side, err := raichu.ParseSide(d.ToMove)
	if err != nil {
		return nil, err
	}
	pos, err := raichu.DecodePosition(d.Board, d.N, side)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", d.ID, err)
	}
	return &GameState{
		ID:        d.ID,
		N:         d.N,
		Pos:       pos,
		History:   d.History,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// gamesColl 用到的 *mongo.Collection 方法子集
type gamesColl interface {
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

type MongoStore struct {
	coll gamesColl
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(gamesCollection)}
}

// ConnectMongo 连库并 ping，返回 client 以便调用方 Disconnect
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Client, *MongoStore, error) {
	ctxConnect, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctxConnect, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctxConnect, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, NewMongoStore(client.Database(database)), nil
}

func (s *MongoStore) Create(ctx context.Context, g *GameState) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, toDoc(g))
	return err
}

func (s *MongoStore) Get(ctx context.Context, id string) (*GameState, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var d gameDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDoc(d)
}

func (s *MongoStore) Update(ctx context.Context, g *GameState) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": g.ID}, toDoc(g), options.Replace().SetUpsert(false))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrGameNotFound
	}
	return nil
}
