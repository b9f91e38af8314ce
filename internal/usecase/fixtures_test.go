package usecase

import (
	"context"
	"errors"
	"testing"

	"fastfood/internal/domain/model"
	infraRepo "fastfood/internal/infra/repository"
	repo "fastfood/internal/repository"
	"fastfood/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// sqlite上に組んだrepo一式
type testEnv struct {
	db         *gorm.DB
	tx         repo.TransactionManager
	accounts   repo.AccountRepository
	customers  repo.CustomerRepository
	addresses  repo.AddressRepository
	foods      repo.FoodRepository
	carts      *infraRepo.CartGormRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   repo.PaymentRepository
	auditLogs  repo.AuditLogRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.NewSQLiteDB(t)
	return &testEnv{
		db:         gdb,
		tx:         infraRepo.NewTxManagerGorm(gdb),
		accounts:   infraRepo.NewAccountRepository(gdb),
		customers:  infraRepo.NewCustomerGormRepository(gdb),
		addresses:  infraRepo.NewAddressGormRepository(gdb),
		foods:      infraRepo.NewFoodGormRepository(gdb),
		carts:      infraRepo.NewCartGormRepository(gdb),
		orders:     infraRepo.NewOrderGormRepository(gdb),
		orderItems: infraRepo.NewOrderItemGormRepository(gdb),
		payments:   infraRepo.NewPaymentGormRepository(gdb),
		auditLogs:  infraRepo.NewAuditLogGormRepository(gdb),
	}
}

func (e *testEnv) cartUC() *CartUsecase {
	return NewCartUsecase(e.tx, e.customers, e.carts, e.carts, e.foods)
}

func (e *testEnv) orderUC() *OrderUsecase {
	return NewOrderUsecase(e.tx, e.customers, e.orders, e.orderItems, e.payments)
}

// アカウントと顧客を作ってPrincipalを返す
func (e *testEnv) seedCustomer(t *testing.T, username, email string) (model.Principal, model.Customer) {
	t.Helper()
	ctx := context.Background()

	acc := &model.Account{Username: username, PasswordHash: "x", IsActive: true}
	require.NoError(t, e.accounts.Create(ctx, acc))

	c := &model.Customer{AccountID: acc.ID, Name: username, Email: email}
	require.NoError(t, e.customers.Create(ctx, c))

	return model.Principal{AccountID: acc.ID, Username: username, Roles: []string{string(model.RoleCustomer)}}, *c
}

func (e *testEnv) seedFood(t *testing.T, name string, price int64) model.Food {
	t.Helper()
	f := model.Food{Name: name, Price: decimal.NewFromInt(price), IsAvailable: true}
	require.NoError(t, e.db.Create(&f).Error)
	return f
}

func (e *testEnv) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}

// 返ってきたエラーの種類を確認する
func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
