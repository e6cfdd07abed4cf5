package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskdesk/task-system/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository persists security audit events. Entries are written by
// the async dispatcher and never read on the request path.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID        string `bson:"_id"`
	Action    string `bson:"action"`
	SubjectID string `bson:"subject_id"`
	Detail    string `bson:"detail,omitempty"`
	At        int64  `bson:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, auditDoc{
		ID:        event.ID,
		Action:    event.Action,
		SubjectID: event.SubjectID,
		Detail:    event.Detail,
		At:        event.At.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
