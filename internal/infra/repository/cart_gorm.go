package repository

import (
	"context"
	"errors"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// 顧客のカートを取得
func (r *CartGormRepository) FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	return r.findByCustomer(r.db.WithContext(ctx), customerID)
}

// 顧客のカートをFOR UPDATEで取得
func (r *CartGormRepository) FindByCustomerIDForUpdate(ctx context.Context, customerID int64) (model.Cart, error) {
	return r.findByCustomer(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), customerID)
}

func (r *CartGormRepository) findByCustomer(db *gorm.DB, customerID int64) (model.Cart, error) {
	var cart model.Cart
	err := db.Where("customer_id = ?", customerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// customer_idのunique制約にぶつかったら何もしない
func (r *CartGormRepository) CreateIfAbsent(ctx context.Context, cart model.Cart) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "customer_id"}}, DoNothing: true}).
		Create(&cart).Error
}

// carts.total_priceを更新
func (r *CartGormRepository) UpdateTotal(ctx context.Context, cartID int64, total decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("total_price", total)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を全削除してからカートを削除
func (r *CartGormRepository) Delete(ctx context.Context, cartID int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", cartID).Delete(&model.Cart{}).Error
}

// カート明細を一覧取得
func (r *CartGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 同じ商品の明細を取得
func (r *CartGormRepository) FindByCartAndFood(ctx context.Context, cartID int64, foodID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND food_id = ?", cartID, foodID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 新規なら作成、既存なら数量と行合計を更新
func (r *CartGormRepository) Save(ctx context.Context, item *model.CartItem) error {
	if item.Quantity <= 0 {
		return errors.New("invalid quantity")
	}

	db := r.db.WithContext(ctx)
	if item.ID == 0 {
		return db.Create(item).Error
	}

	res := db.Model(&model.CartItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity":    item.Quantity,
			"total_price": item.TotalPrice,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除（無くてもOK）
func (r *CartGormRepository) DeleteByCartAndFood(ctx context.Context, cartID int64, foodID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND food_id = ?", cartID, foodID).
		Delete(&model.CartItem{}).Error
}
