package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fastfood/internal/config"
	"fastfood/internal/handler"
	"fastfood/internal/infra/cache"
	"fastfood/internal/infra/db"
	"fastfood/internal/infra/mail"
	"fastfood/internal/infra/mq"
	infraRepo "fastfood/internal/infra/repository"
	"fastfood/internal/infra/token"
	"fastfood/internal/infra/vnpay"
	"fastfood/internal/logger"
	"fastfood/internal/server"
	"fastfood/internal/usecase"
	auth "fastfood/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const accessTokenTTL = 30 * time.Minute

func main() {
	//.envは無くてもよい（コンテナでは環境変数を直接渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if _, err := logger.Init(cfg.GoEnv); err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", zap.Error(err))
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("db migrate failed", zap.Error(err))
		os.Exit(1)
	}

	//Redisは落ちていてもnilで起動（レート制限なし）
	rdb := cache.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	//Repository（GORM実装）生成
	txm := infraRepo.NewTxManagerGorm(gormDB)
	accountRepo := infraRepo.NewAccountRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	foodRepo := infraRepo.NewFoodGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)

	//外部サービス
	jwtSvc := token.NewJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, accessTokenTTL)
	gateway := vnpay.NewClient(cfg.VNPay)
	publisher := mq.NewPublisher(cfg.RabbitMQURL)
	mailer := mail.NewSMTPSender(cfg.SMTP)

	//usecaseに渡す部品
	clock := auth.SystemClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	tokens := auth.NewTokenService(rtRepo, jwtSvc, auth.UUIDGenerator{}, clock, auth.RefreshTokenTTL)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(txm, hasher)
	loginUC := auth.NewLoginUsecase(accountRepo, verifier, tokens, clock)
	refreshUC := auth.NewRefreshUsecase(accountRepo, tokens)
	logoutUC := auth.NewLogoutUsecase(tokens)
	resetUC := auth.NewPasswordResetUsecase(accountRepo, customerRepo, hasher, mailer, auth.RandomCodeGenerator{}, clock)
	revokeUC := auth.NewRevokeTokensUsecase(accountRepo, tokens, auditRepo, clock)

	accountUC := usecase.NewAccountUsecase(txm, accountRepo, customerRepo, hasher, verifier)
	addressUC := usecase.NewAddressUsecase(customerRepo, addressRepo)
	foodUC := usecase.NewFoodUsecase(foodRepo)
	cartUC := usecase.NewCartUsecase(txm, customerRepo, cartRepo, cartRepo, foodRepo)
	orderUC := usecase.NewOrderUsecase(txm, customerRepo, orderRepo, orderItemRepo, paymentRepo)
	paymentUC := usecase.NewPaymentUsecase(txm, customerRepo, orderRepo, paymentRepo, gateway, publisher)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, orderItemRepo, paymentRepo)
	auditLogUC := usecase.NewAdminAuditLogUsecase(auditRepo)

	//Handler生成
	h := server.Handlers{
		Auth:       handler.NewAuthHandler(registerUC, loginUC, refreshUC, logoutUC, resetUC),
		Account:    handler.NewAccountHandler(accountUC),
		Address:    handler.NewAddressHandler(addressUC),
		Food:       handler.NewFoodHandler(foodUC),
		Cart:       handler.NewCartHandler(cartUC),
		Order:      handler.NewOrderHandler(orderUC),
		Payment:    handler.NewPaymentHandler(paymentUC, cfg.PaymentStatusURL),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:  handler.NewAdminUserHandler(revokeUC),
		AuditLog:   handler.NewAdminAuditLogHandler(auditLogUC),
	}

	e := server.New(server.Deps{
		Tokens:    jwtSvc,
		Accounts:  accountRepo,
		Redis:     rdb,
		RateLimit: cfg.RateLimit,
		FEURL:     cfg.FEURL,
	}, h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	if err := server.Start(ctx, e, addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
