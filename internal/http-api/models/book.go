package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is stored as a JSON array so the same model works on Postgres
// and on the sqlite databases the tests run against.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// Book is catalog metadata imported from Open Library. It is shared read-only
// across users; a re-import of the same OpenLibraryID overwrites metadata.
type Book struct {
	ID            int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OpenLibraryID string     `json:"open_library_id" gorm:"uniqueIndex;size:50;not null"`
	ISBN10        *string    `json:"isbn_10,omitempty" gorm:"size:10"`
	ISBN13        *string    `json:"isbn_13,omitempty" gorm:"size:13"`
	Title         string     `json:"title" gorm:"not null;size:500"`
	Authors       StringList `json:"authors" gorm:"type:text"`
	Pages         *int       `json:"pages,omitempty"`
	PublishYear   *int       `json:"publish_year,omitempty"`
	Genres        StringList `json:"genres" gorm:"type:text"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}

// PrimaryAuthor returns the first listed author.
func (b *Book) PrimaryAuthor() string {
	if len(b.Authors) > 0 {
		return b.Authors[0]
	}
	return "Unknown Author"
}
