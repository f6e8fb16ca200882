package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one append-only audit log row. Entries are written in the
// same transaction as the mutation they describe; a failed audit write
// aborts the mutation.
type AuditEntry struct {
	ID            int64
	CreatedAt     time.Time
	ActorUserID   *uuid.UUID
	ActorUsername string
	ActorRole     UserRole
	Action        AuditAction
	EntityType    EntityType
	EntityID      *uuid.UUID
	Name          *string
	Details       json.RawMessage
	IP            *string
}
