package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LinkItem is a single entry on a profile page. Items carry no identity
// beyond the (title, url) pair; duplicates are allowed.
type LinkItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// LinkList is the ordered link collection of a profile, stored as a JSONB
// array. Array position is display order.
type LinkList []LinkItem

// Value implements driver.Valuer so sqlx can bind a LinkList as JSONB.
func (l LinkList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB columns.
func (l *LinkList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = LinkList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into LinkList", src)
	}
}

// LinkProfile is one row of public.treelink_profiles: the full per-account
// record. Email is the unique owner key; Handle is the public identifier used
// in shareable URLs (NULL until the owner has claimed one).
type LinkProfile struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Handle       *string   `json:"accountId" db:"handle"`
	ProfileImage *string   `json:"profileImage" db:"profile_image"`
	Links        LinkList  `json:"links" db:"links"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HandleOrEmpty flattens the nullable handle for API responses.
func (p *LinkProfile) HandleOrEmpty() string {
	if p == nil || p.Handle == nil {
		return ""
	}
	return *p.Handle
}

// ImageOrEmpty flattens the nullable profile image for API responses.
func (p *LinkProfile) ImageOrEmpty() string {
	if p == nil || p.ProfileImage == nil {
		return ""
	}
	return *p.ProfileImage
}
