package usecase

import (
	"context"
	"errors"
	"time"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 変更系はすべて1トランザクションでカート行をロックして行う（注文確定と同じロック）。
type CartUsecase struct {
	tx        repo.TransactionManager
	customers repo.CustomerRepository
	carts     repo.CartRepository
	cartItems repo.CartItemRepository
	foods     repo.FoodRepository
	now       func() time.Time
}

func NewCartUsecase(
	tx repo.TransactionManager,
	customers repo.CustomerRepository,
	carts repo.CartRepository,
	cartItems repo.CartItemRepository,
	foods repo.FoodRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:        tx,
		customers: customers,
		carts:     carts,
		cartItems: cartItems,
		foods:     foods,
		now:       time.Now,
	}
}

type CartItemResponse struct {
	FoodID     int64           `json:"food_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CartResponse struct {
	TotalPrice decimal.Decimal    `json:"total_price"`
	Items      []CartItemResponse `json:"items"`
}

// カート取得（無ければ空）
func (u *CartUsecase) GetCart(ctx context.Context, p model.Principal) (CartResponse, error) {
	c, err := customerOf(ctx, u.customers, p)
	if err != nil {
		return CartResponse{}, err
	}

	cart, err := u.carts.FindByCustomerID(ctx, c.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return emptyCart(), nil
	}
	if err != nil {
		return CartResponse{}, errDB()
	}
	return buildCartResponse(ctx, u.cartItems, u.foods, cart)
}

// 商品を追加（同じ商品は数量加算）
func (u *CartUsecase) AddItem(ctx context.Context, p model.Principal, foodID int64, quantity int64) (CartResponse, error) {
	if quantity < 1 {
		return CartResponse{}, newKindError(ErrValidation, "invalid quantity")
	}
	if foodID <= 0 {
		return CartResponse{}, newKindError(ErrFoodNotFound, "food not found")
	}

	var out CartResponse
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := customerOf(ctx, r.Customers(), p)
		if err != nil {
			return err
		}

		food, err := r.Foods().FindByID(ctx, foodID)
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrFoodNotFound, "food not found")
		}
		if err != nil {
			return errDB()
		}
		if !food.IsAvailable {
			return newKindError(ErrFoodNotFound, "food not found")
		}

		cart, err := u.lockOrCreateCart(ctx, r, c.ID)
		if err != nil {
			return err
		}

		item, err := r.CartItems().FindByCartAndFood(ctx, cart.ID, foodID)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			item = model.CartItem{CartID: cart.ID, FoodID: foodID}
		case err != nil:
			return errDB()
		}

		item.Quantity += quantity
		item.Reprice(food.Price)
		if err := r.CartItems().Save(ctx, &item); err != nil {
			return errDB()
		}

		out, err = recalcCart(ctx, r, cart)
		return err
	})
	if err != nil {
		return CartResponse{}, err
	}
	return out, nil
}

// 数量を減らす。0以下になったら明細を消す
func (u *CartUsecase) DecreaseItem(ctx context.Context, p model.Principal, foodID int64, quantity int64) (CartResponse, error) {
	if quantity < 1 {
		return CartResponse{}, newKindError(ErrValidation, "invalid quantity")
	}

	var out CartResponse
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := customerOf(ctx, r.Customers(), p)
		if err != nil {
			return err
		}

		cart, err := r.Carts().FindByCustomerIDForUpdate(ctx, c.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrCartItemNotFound, "cart item not found")
		}
		if err != nil {
			return errDB()
		}

		item, err := r.CartItems().FindByCartAndFood(ctx, cart.ID, foodID)
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrCartItemNotFound, "cart item not found")
		}
		if err != nil {
			return errDB()
		}

		price, err := currentUnitPrice(ctx, r.Foods(), item)
		if err != nil {
			return err
		}

		item.Quantity -= quantity
		if item.Quantity <= 0 {
			if err := r.CartItems().DeleteByCartAndFood(ctx, cart.ID, foodID); err != nil {
				return errDB()
			}
		} else {
			item.Reprice(price)
			if err := r.CartItems().Save(ctx, &item); err != nil {
				return errDB()
			}
		}

		out, err = recalcCart(ctx, r, cart)
		return err
	})
	if err != nil {
		return CartResponse{}, err
	}
	return out, nil
}

// 明細を削除（無くても成功）
func (u *CartUsecase) RemoveItem(ctx context.Context, p model.Principal, foodID int64) (CartResponse, error) {
	var out CartResponse
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := customerOf(ctx, r.Customers(), p)
		if err != nil {
			return err
		}

		cart, err := r.Carts().FindByCustomerIDForUpdate(ctx, c.ID)
		if errors.Is(err, repo.ErrNotFound) {
			out = emptyCart()
			return nil
		}
		if err != nil {
			return errDB()
		}

		if err := r.CartItems().DeleteByCartAndFood(ctx, cart.ID, foodID); err != nil {
			return errDB()
		}

		out, err = recalcCart(ctx, r, cart)
		return err
	})
	if err != nil {
		return CartResponse{}, err
	}
	return out, nil
}

// 明細とカート自体を削除（無くても成功）
func (u *CartUsecase) Clear(ctx context.Context, p model.Principal) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := customerOf(ctx, r.Customers(), p)
		if err != nil {
			return err
		}
		return clearCustomerCart(ctx, r, c.ID)
	})
}

// 顧客のカートをロックして消す。無ければ何もしない
func clearCustomerCart(ctx context.Context, r repo.TxRepos, customerID int64) error {
	cart, err := r.Carts().FindByCustomerIDForUpdate(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return errDB()
	}
	if err := r.Carts().Delete(ctx, cart.ID); err != nil {
		return errDB()
	}
	return nil
}

// カートをロック付きで取得。無ければ作ってから取り直す
func (u *CartUsecase) lockOrCreateCart(ctx context.Context, r repo.TxRepos, customerID int64) (model.Cart, error) {
	cart, err := r.Carts().FindByCustomerIDForUpdate(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, errDB()
	}

	if err := r.Carts().CreateIfAbsent(ctx, model.NewCart(customerID, u.now())); err != nil {
		return model.Cart{}, errDB()
	}
	cart, err = r.Carts().FindByCustomerIDForUpdate(ctx, customerID)
	if err != nil {
		return model.Cart{}, errDB()
	}
	return cart, nil
}

func currentUnitPrice(ctx context.Context, foods repo.FoodRepository, item model.CartItem) (decimal.Decimal, error) {
	food, err := foods.FindByID(ctx, item.FoodID)
	if errors.Is(err, repo.ErrNotFound) {
		// 商品が消えていたら明細の単価を使う
		if item.Quantity <= 0 {
			return decimal.Zero, nil
		}
		return item.TotalPrice.Div(decimal.NewFromInt(item.Quantity)), nil
	}
	if err != nil {
		return decimal.Zero, errDB()
	}
	return food.Price, nil
}

// 明細から合計を出し直して保存する
func recalcCart(ctx context.Context, r repo.TxRepos, cart model.Cart) (CartResponse, error) {
	items, err := r.CartItems().ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, errDB()
	}

	cart.TotalPrice = model.CartTotal(items)
	if err := r.Carts().UpdateTotal(ctx, cart.ID, cart.TotalPrice); err != nil {
		return CartResponse{}, errDB()
	}
	return toCartResponse(ctx, r.Foods(), cart, items)
}

func buildCartResponse(ctx context.Context, cartItems repo.CartItemRepository, foods repo.FoodRepository, cart model.Cart) (CartResponse, error) {
	items, err := cartItems.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, errDB()
	}
	return toCartResponse(ctx, foods, cart, items)
}

func toCartResponse(ctx context.Context, foods repo.FoodRepository, cart model.Cart, items []model.CartItem) (CartResponse, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.FoodID)
	}
	byID, err := foods.FindByIDs(ctx, ids)
	if err != nil {
		return CartResponse{}, errDB()
	}

	out := CartResponse{
		TotalPrice: cart.TotalPrice,
		Items:      make([]CartItemResponse, 0, len(items)),
	}
	for _, it := range items {
		f := byID[it.FoodID]
		out.Items = append(out.Items, CartItemResponse{
			FoodID:     it.FoodID,
			Name:       f.Name,
			Price:      f.Price,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}
	return out, nil
}

func emptyCart() CartResponse {
	return CartResponse{TotalPrice: decimal.Zero, Items: []CartItemResponse{}}
}
