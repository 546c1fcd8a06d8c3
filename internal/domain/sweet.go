package domain

import (
	"context"
	"time"
)

type Sweet struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:191;not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Category  string    `gorm:"size:64;not null" json:"category"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Sweet) TableName() string { return "sweets" }

// SweetPatch PATCH 局部更新；nil 字段不动。库存走 Restock/Purchase，不在这里改
type SweetPatch struct {
	Name     *string
	Price    *float64
	Category *string
}

// SweetFilter 目录筛选条件，零值表示不过滤
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

type SweetRepository interface {
	Create(ctx context.Context, s *Sweet) error
	FindByID(ctx context.Context, id string) (*Sweet, error)
	List(ctx context.Context) ([]Sweet, error)
	Search(ctx context.Context, f SweetFilter) ([]Sweet, error)
	Patch(ctx context.Context, id string, p SweetPatch) (*Sweet, error)
	Delete(ctx context.Context, id string) error
	// Restock / Purchase 对同一行的读改写必须互相串行化
	Restock(ctx context.Context, id string, amount int) (*Sweet, error)
	Purchase(ctx context.Context, id string, amount int) (*Sweet, error)
}
