package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is a saved calculation sheet. The payload is the sheet's inputs and
// results as the calc package serialized them; the store treats it as opaque
// JSON. Records may optionally be attached to a parent valve design.
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	DesignID  *uuid.UUID
	Type      CalcType
	Name      string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordSummary is the list-view projection of a Record (no payload).
type RecordSummary struct {
	ID        uuid.UUID
	DesignID  *uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordUpdateParams carries the optional fields of a record update. Nil
// fields keep their stored values; ClearDesignID detaches the record from
// its parent design.
type RecordUpdateParams struct {
	Name          *string
	Data          json.RawMessage
	DesignID      *uuid.UUID
	ClearDesignID bool
}

// RecordListFilter narrows the superadmin record listing.
type RecordListFilter struct {
	UsernameLike string
	NameLike     string
	Limit        int
}

// RecordOverview is the admin list projection of a Record joined with its
// owner.
type RecordOverview struct {
	ID        uuid.UUID
	Username  string
	DesignID  *uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordWithUser is a Record joined with its owner's username, used by
// superadmin lookups that cross user boundaries.
type RecordWithUser struct {
	Record
	Username string
}

// Design is a parent valve design record grouping calculation sheets.
type Design struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DesignUpdateParams carries the optional fields of a design update.
type DesignUpdateParams struct {
	Name *string
	Data json.RawMessage
}

// DesignListFilter narrows the superadmin design listing.
type DesignListFilter struct {
	UsernameLike string
	NameLike     string
	Limit        int
}

// DesignOverview is the admin list projection of a Design joined with its
// owner and a few headline figures pulled out of the payload.
type DesignOverview struct {
	ID          uuid.UUID
	Username    string
	Name        string
	NPS         *string
	ASMEClass   *string
	WallMM      *string
	BoreMM      *string
	FaceToFace  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DesignWithUser is a Design joined with its owner's username, used by
// superadmin lookups that cross user boundaries.
type DesignWithUser struct {
	Design
	Username string
}
