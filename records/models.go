package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the contacts row.
type Record struct {
	bun.BaseModel `bun:"table:contacts,alias:contacts"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	OwnerID   uuid.UUID `bun:"owner_id,notnull,type:uuid"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,nullzero"`
	Phone     string    `bun:"phone,nullzero"`
	Company   string    `bun:"company,nullzero"`
	Position  string    `bun:"position,nullzero"`
	Address   string    `bun:"address,nullzero"`
	Notes     string    `bun:"notes,nullzero"`
	Photo     string    `bun:"photo,nullzero"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`

	OwnerName  string `bun:"owner_name,scanonly"`
	OwnerEmail string `bun:"owner_email,scanonly"`
}
