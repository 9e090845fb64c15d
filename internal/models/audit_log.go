package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions recorded for write operations
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditLog records one successful write operation against the portal
type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Actor      string             `bson:"actor,omitempty" json:"actor,omitempty"`
	ActorKind  string             `bson:"actor_kind,omitempty" json:"actor_kind,omitempty"`
	Action     string             `bson:"action" json:"action"`
	Resource   string             `bson:"resource" json:"resource"`
	ResourceID string             `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	Metadata   map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
