package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sweetshop-api/internal/domain"
)

type SweetRepo struct{ db *gorm.DB }

func NewSweetRepo(db *gorm.DB) *SweetRepo { return &SweetRepo{db: db} }

func (r *SweetRepo) Create(ctx context.Context, s *domain.Sweet) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SweetRepo) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SweetRepo) List(ctx context.Context) ([]domain.Sweet, error) {
	var items []domain.Sweet
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SweetRepo) Search(ctx context.Context, f domain.SweetFilter) ([]domain.Sweet, error) {
	q := r.db.WithContext(ctx).Model(&domain.Sweet{})
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	var items []domain.Sweet
	if err := q.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SweetRepo) Patch(ctx context.Context, id string, p domain.SweetPatch) (*domain.Sweet, error) {
	var out domain.Sweet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if p.Name != nil {
			out.Name = *p.Name
		}
		if p.Price != nil {
			out.Price = *p.Price
		}
		if p.Category != nil {
			out.Category = *p.Category
		}
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SweetRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Sweet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restock 无条件加库存，单条带条件 UPDATE 天然原子
func (r *SweetRepo) Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	var out domain.Sweet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Sweet{}).
			Where("id = ?", id).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Purchase 核心不变式：quantity 永不为负。
// 扣减用带存量守卫的单条 UPDATE，并发购买同一商品时由存储层串行化，
// 超卖的那一方 RowsAffected=0，再区分是不存在还是库存不足。
func (r *SweetRepo) Purchase(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	var out domain.Sweet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Sweet{}).
			Where("id = ? AND quantity >= ?", id, amount).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&domain.Sweet{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrInsufficientStock
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
