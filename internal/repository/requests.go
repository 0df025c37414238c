package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asklio/procurement/internal/common"
	"github.com/asklio/procurement/internal/entity"
)

const requestsCollection = "procurementRequests"

// RequestRepository is the document-store boundary for procurement
// requests. Implementations guarantee: createdAt is never altered after
// insert, every successful update refreshes updatedAt, and List never
// loads the stored document bytes.
type RequestRepository interface {
	Insert(ctx context.Context, request *entity.ProcurementRequest) (*entity.ProcurementRequest, error)
	FindByID(ctx context.Context, id string) (*entity.ProcurementRequest, error)
	Update(ctx context.Context, request *entity.ProcurementRequest) (*entity.ProcurementRequest, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.ProcurementRequest, error)
}

type requestRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

func NewRequestRepository(client *mongo.Client, database string, logger *slog.Logger) RequestRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &requestRepository{
		coll:   client.Database(database).Collection(requestsCollection),
		logger: logger,
	}
}

// ParseID validates the store's id format. A malformed id is a caller
// error, distinct from a well-formed id with no matching record.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewAppError("INVALID_ID", "id is not a valid object id: "+id, common.ErrInvalidID)
	}
	return oid, nil
}

func (r *requestRepository) Insert(ctx context.Context, request *entity.ProcurementRequest) (*entity.ProcurementRequest, error) {
	now := time.Now().UTC()
	request.CreatedAt = now
	request.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, request)
	if err != nil {
		r.logger.Error("failed to insert procurement request", "file_name", request.Document.FileName, "error", err)
		return nil, common.NewAppError("DB_INSERT", "insert procurement request", err)
	}
	request.ID = res.InsertedID.(primitive.ObjectID)

	r.logger.Info("procurement request created", "id", request.ID.Hex(), "status", request.Status)
	return request, nil
}

func (r *requestRepository) FindByID(ctx context.Context, id string) (*entity.ProcurementRequest, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc entity.ProcurementRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewAppError("NOT_FOUND", "procurement request "+id, common.ErrNotFound)
		}
		r.logger.Error("failed to fetch procurement request", "id", id, "error", err)
		return nil, common.NewAppError("DB_FIND", "fetch procurement request", err)
	}
	return &doc, nil
}

// Update persists the mutable part of the aggregate: status and the
// flattened extraction fields. The document payload and createdAt are
// insert-only; updatedAt is refreshed on every successful call.
func (r *requestRepository) Update(ctx context.Context, request *entity.ProcurementRequest) (*entity.ProcurementRequest, error) {
	request.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"status":              request.Status,
		"requestor":           request.Requestor,
		"requestorDepartment": request.RequestorDepartment,
		"vendor":              request.Vendor,
		"commodityGroup":      request.CommodityGroup,
		"category":            request.Category,
		"description":         request.Description,
		"vatId":               request.VATID,
		"orderLines":          request.OrderLines,
		"totalCost":           request.TotalCost,
		"updatedAt":           request.UpdatedAt,
	}

	var updated entity.ProcurementRequest
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": request.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewAppError("NOT_FOUND", "procurement request "+request.ID.Hex(), common.ErrNotFound)
		}
		r.logger.Error("failed to update procurement request", "id", request.ID.Hex(), "error", err)
		return nil, common.NewAppError("DB_UPDATE", "update procurement request", err)
	}

	r.logger.Info("procurement request updated", "id", updated.ID.Hex(), "status", updated.Status)
	return &updated, nil
}

func (r *requestRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("failed to delete procurement request", "id", id, "error", err)
		return common.NewAppError("DB_DELETE", "delete procurement request", err)
	}
	if res.DeletedCount == 0 {
		return common.NewAppError("NOT_FOUND", "procurement request "+id, common.ErrNotFound)
	}

	r.logger.Info("procurement request deleted", "id", id)
	return nil
}

// List returns all requests, newest first, with the raw document bytes
// projected out.
func (r *requestRepository) List(ctx context.Context) ([]*entity.ProcurementRequest, error) {
	opts := options.Find().
		SetProjection(bson.M{"document.data": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("failed to list procurement requests", "error", err)
		return nil, common.NewAppError("DB_LIST", "list procurement requests", err)
	}
	defer cursor.Close(ctx)

	var result []*entity.ProcurementRequest
	if err := cursor.All(ctx, &result); err != nil {
		r.logger.Error("failed to decode procurement requests", "error", err)
		return nil, common.NewAppError("DB_LIST", "decode procurement requests", err)
	}
	return result, nil
}
