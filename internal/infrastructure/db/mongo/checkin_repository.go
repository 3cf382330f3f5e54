package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

const checkinsCollection = "checkins"

// CheckinRepository implements ports.CheckinStore using MongoDB.
type CheckinRepository struct {
	coll *mongo.Collection
}

func NewCheckinRepository(db *mongo.Database) *CheckinRepository {
	return &CheckinRepository{coll: db.Collection(checkinsCollection)}
}

func (r *CheckinRepository) Insert(ctx context.Context, ci *domain.CheckIn) error {
	doc := bson.M{
		"_id":         ci.ID,
		"ticket_code": ci.TicketCode,
		"event_id":    ci.EventID,
		"scanned_by":  ci.ScannedBy,
		"scanned_at":  ci.ScannedAt.UTC(),
		"duplicate":   ci.Duplicate,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert checkin: %w", err)
	}
	return nil
}

func (r *CheckinRepository) List(ctx context.Context, filter ports.ListCheckinsFilter) ([]*domain.CheckIn, int64, error) {
	query := bson.M{}
	if filter.EventID != "" {
		query["event_id"] = filter.EventID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count checkins: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "scanned_at", Value: -1}}).
		SetSkip(int64((page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list checkins: %w", err)
	}
	defer cursor.Close(ctx)

	var checkins []*domain.CheckIn
	for cursor.Next(ctx) {
		var doc struct {
			ID         string    `bson:"_id"`
			TicketCode string    `bson:"ticket_code"`
			EventID    string    `bson:"event_id"`
			ScannedBy  string    `bson:"scanned_by"`
			ScannedAt  time.Time `bson:"scanned_at"`
			Duplicate  bool      `bson:"duplicate"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode checkin: %w", err)
		}
		checkins = append(checkins, &domain.CheckIn{
			ID:         doc.ID,
			TicketCode: doc.TicketCode,
			EventID:    doc.EventID,
			ScannedBy:  doc.ScannedBy,
			ScannedAt:  doc.ScannedAt,
			Duplicate:  doc.Duplicate,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list checkins: %w", err)
	}
	return checkins, total, nil
}
