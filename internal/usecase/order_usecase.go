package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx         repo.TransactionManager
	customers  repo.CustomerRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   repo.PaymentRepository
	now        func() time.Time
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	customers repo.CustomerRepository,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	payments repo.PaymentRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		customers:  customers,
		orders:     orders,
		orderItems: orderItems,
		payments:   payments,
		now:        time.Now,
	}
}

type CreateOrderInput struct {
	AddressID     *int64
	Note          string
	PaymentMethod string
}

type CreateOrderOutput struct {
	OrderID   int64 `json:"order_id"`
	PaymentID int64 `json:"payment_id"`
}

type OrderItemOutput struct {
	FoodID     int64           `json:"food_id"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	CustomerID    int64             `json:"customer_id"`
	OrderDate     time.Time         `json:"order_date"`
	Status        string            `json:"status"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	AddressID     *int64            `json:"address_id"`
	Note          string            `json:"note"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	PaymentStatus string            `json:"payment_status,omitempty"`
	Items         []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
}

// カートから注文と支払いを作り、カートを消す。全部1トランザクション
func (u *OrderUsecase) CreateOrder(ctx context.Context, p model.Principal, in CreateOrderInput) (CreateOrderOutput, error) {
	method, ok := model.ParsePaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if !ok {
		return CreateOrderOutput{}, newKindError(ErrValidation, "invalid payment_method")
	}

	var out CreateOrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := customerOf(ctx, r.Customers(), p)
		if err != nil {
			return err
		}

		//カートをロック（カート操作と直列化）
		cart, err := r.Carts().FindByCustomerIDForUpdate(ctx, c.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrEmptyCart, "cart empty")
		}
		if err != nil {
			return errDB()
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return errDB()
		}
		if len(cartItems) == 0 {
			return newKindError(ErrEmptyCart, "cart empty")
		}

		//住所は自分のものだけ
		if in.AddressID != nil {
			addr, err := r.Addresses().FindByID(ctx, *in.AddressID)
			if errors.Is(err, repo.ErrNotFound) || (err == nil && addr.CustomerID != c.ID) {
				return newKindError(ErrNotFound, "address not found")
			}
			if err != nil {
				return errDB()
			}
		}

		//単価はカート行から求め、合計と食い違わないようにする
		now := u.now()
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		for _, ci := range cartItems {
			price := ci.TotalPrice.Div(decimal.NewFromInt(ci.Quantity)).Round(2)
			orderItems = append(orderItems, model.OrderItem{
				FoodID:     ci.FoodID,
				Quantity:   ci.Quantity,
				Price:      price,
				TotalPrice: ci.TotalPrice,
				CreatedAt:  now,
			})
		}

		order := model.Order{
			CustomerID:  c.ID,
			OrderDate:   now,
			TotalAmount: cart.TotalPrice,
			Status:      model.OrderStatusPending,
			AddressID:   in.AddressID,
			Note:        strings.TrimSpace(in.Note),
		}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return errDB()
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return errDB()
		}

		payment := model.Payment{
			OrderID:       order.ID,
			PaymentMethod: method,
			PaymentStatus: model.PaymentStatusPending,
			Amount:        order.TotalAmount,
		}
		if err := r.Payments().Create(ctx, &payment); err != nil {
			return errDB()
		}
		if err := r.Orders().SetPaymentID(ctx, order.ID, payment.ID); err != nil {
			return errDB()
		}

		//再注文防止
		if err := r.Carts().Delete(ctx, cart.ID); err != nil {
			return errDB()
		}

		out = CreateOrderOutput{OrderID: order.ID, PaymentID: payment.ID}
		return nil
	})
	if err != nil {
		return CreateOrderOutput{}, err
	}
	return out, nil
}

// 代金引換の支払いを確定する
func (u *OrderUsecase) ConfirmCashPayment(ctx context.Context, p model.Principal, orderID int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := customerOf(ctx, r.Customers(), p)
		if err != nil {
			return err
		}

		payment, err := r.Payments().FindByOrderIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrPaymentNotFound, "payment not found")
		}
		if err != nil {
			return errDB()
		}

		order, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrPaymentNotFound, "payment not found")
		}
		if err != nil {
			return errDB()
		}
		//他人の注文は存在しない扱い
		if order.CustomerID != c.ID {
			return newKindError(ErrPaymentNotFound, "payment not found")
		}

		if payment.PaymentMethod != model.PaymentMethodCash {
			return newKindError(ErrInvalidMethod, "payment method is not cash on delivery")
		}

		switch payment.PaymentStatus {
		case model.PaymentStatusPaid:
			return nil
		case model.PaymentStatusPending:
		default:
			return newKindError(ErrConflict, "payment already resolved")
		}

		before := payment.PaymentStatus
		payment.PaymentStatus = model.PaymentStatusPaid
		if err := r.Payments().Update(ctx, payment); err != nil {
			return errDB()
		}
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusPaid); err != nil {
			return errDB()
		}

		actor := p.AccountID
		return recordPaymentStatus(ctx, r.AuditLogs(), &actor, "cash", payment.ID, before, payment.PaymentStatus, u.now())
	})
}

// 自分の注文一覧
func (u *OrderUsecase) ListOrders(ctx context.Context, p model.Principal, page, limit int) (OrderListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	c, err := customerOf(ctx, u.customers, p)
	if err != nil {
		return OrderListOutput{}, err
	}

	orders, total, err := u.orders.ListByCustomerID(ctx, c.ID, page, limit)
	if err != nil {
		return OrderListOutput{}, errDB()
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out, err := orderDetail(ctx, u.orderItems, u.payments, o)
		if err != nil {
			return OrderListOutput{}, err
		}
		outs = append(outs, out)
	}

	return OrderListOutput{Items: outs, Page: page, Limit: limit, Total: total}, nil
}

// 自分の注文詳細（明細と支払い状態つき）
func (u *OrderUsecase) GetOrder(ctx context.Context, p model.Principal, orderID int64) (OrderOutput, error) {
	c, err := customerOf(ctx, u.customers, p)
	if err != nil {
		return OrderOutput{}, err
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, newKindError(ErrNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, errDB()
	}
	if o.CustomerID != c.ID {
		return OrderOutput{}, newKindError(ErrNotFound, "order not found")
	}

	return orderDetail(ctx, u.orderItems, u.payments, o)
}

func orderDetail(ctx context.Context, items repo.OrderItemRepository, payments repo.PaymentRepository, o model.Order) (OrderOutput, error) {
	its, err := items.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, errDB()
	}

	pay, err := payments.FindByOrderID(ctx, o.ID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, errDB()
	}

	return toOrderOutput(o, its, pay), nil
}

func toOrderOutput(o model.Order, items []model.OrderItem, pay model.Payment) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			FoodID:     it.FoodID,
			Quantity:   it.Quantity,
			Price:      it.Price,
			TotalPrice: it.TotalPrice,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		OrderDate:     o.OrderDate,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		AddressID:     o.AddressID,
		Note:          o.Note,
		PaymentMethod: string(pay.PaymentMethod),
		PaymentStatus: string(pay.PaymentStatus),
		Items:         outItems,
	}
}
