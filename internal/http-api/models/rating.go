package models

import "time"

// Rating categories. "overall" is the one the dashboard averages and the only
// one that carries review text.
const (
	CategoryOverall   = "overall"
	CategoryEnjoyment = "enjoyment"
	CategoryCritique  = "critique"
	CategoryPlot      = "plot"
	CategoryCharacter = "character"
	CategorySetting   = "setting"
	CategoryTheme     = "theme"
	CategoryProse     = "prose"
)

// RatingCategories lists every category in display order.
var RatingCategories = []string{
	CategoryOverall,
	CategoryEnjoyment,
	CategoryCritique,
	CategoryPlot,
	CategoryCharacter,
	CategorySetting,
	CategoryTheme,
	CategoryProse,
}

// ValidCategory reports whether c is a known rating category.
func ValidCategory(c string) bool {
	for _, known := range RatingCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidRatingValue reports whether v is one of the ten half-star levels
// 0.5, 1.0, ... 5.0.
func ValidRatingValue(v float64) bool {
	doubled := v * 2
	if doubled != float64(int(doubled)) {
		return false
	}
	return doubled >= 1 && doubled <= 10
}

// Rating is one (user, book, category) score. Re-rating the same category
// overwrites in place.
type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_user_book_category"`
	BookID    int64     `json:"book_id" gorm:"not null;index;uniqueIndex:idx_user_book_category"`
	Category  string    `json:"category" gorm:"size:20;not null;uniqueIndex:idx_user_book_category"`
	Value     float64   `json:"value" gorm:"type:decimal(2,1);not null"`
	Review    *string   `json:"review,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}
