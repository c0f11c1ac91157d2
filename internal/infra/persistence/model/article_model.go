package model

import (
	"time"

	"github.com/google/uuid"
)

// ArticleModel mirrors the 'articles' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// CreatedAt is indexed because listing and search order by it.
type ArticleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	Author    string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ArticleModel) TableName() string {
	return "articles"
}
