// Package app はリポジトリ・usecase・handlerを組み立てる（api と storectl で共用）。
package app

import (
	"fmt"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/mailer"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/storage"
	"storefront/internal/seed"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const bcryptCost = 12

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type App struct {
	Echo   *echo.Echo
	Carts  *usecase.CartUsecase
	Seeder *seed.Seeder
}

// DI
func New(cfg config.Config, gdb *gorm.DB, log *zap.Logger) (*App, error) {
	sqlxDB, err := db.SQLX(gdb)
	if err != nil {
		return nil, fmt.Errorf("sqlx: %w", err)
	}
	files, err := storage.NewLocalStore(cfg.UploadDir, "/uploads")
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	mail := mailer.New(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom, log.Named("mailer"))
	clock := usecase.SystemClock{}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gdb)
	categoryRepo := infraRepo.NewCategoryGormRepository(gdb)
	storeRepo := infraRepo.NewStoreGormRepository(gdb)
	productRepo := infraRepo.NewProductGormRepository(gdb)
	cartRepo := infraRepo.NewCartGormRepository(gdb)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gdb)
	orderRepo := infraRepo.NewOrderGormRepository(gdb)
	auditRepo := infraRepo.NewAuditLogGormRepository(gdb)
	notificationRepo := infraRepo.NewNotificationGormRepository(gdb)
	salesRepo := infraRepo.NewSalesSQLXRepository(sqlxDB)
	txm := infraRepo.NewTxManagerGorm(gdb)

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(bcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AuthTokenTTL)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, &uuidGenerator{}, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	logoutUC := auth.NewLogoutUsecase(userRepo)

	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo, log.Named("catalog"))
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, auditRepo, log.Named("product"))
	storeUC := usecase.NewStoreUsecase(storeRepo, productRepo, auditRepo, log.Named("store"))
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, clock, log.Named("cart"))
	checkoutUC := usecase.NewCheckoutUsecase(txm, cartRepo, cartItemRepo, mail, cfg.AppName, log.Named("checkout"))
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, productRepo, log.Named("order"))
	customerUC := usecase.NewCustomerUsecase(orderRepo, log.Named("customer"))
	analyticsUC := usecase.NewAnalyticsUsecase(orderRepo, salesRepo, log.Named("analytics"))
	newsletterUC := usecase.NewNewsletterUsecase(notificationRepo, mail, cfg.AppName, cfg.AppURL, log.Named("newsletter"))
	uploadUC := usecase.NewUploadUsecase(files, cfg.UploadMaxBytes, log.Named("upload"))

	//Handler生成
	routers := []server.Router{
		handler.NewAuthHandler(registerUC, loginUC, logoutUC, userRepo, cfg.CookieSecure),
		handler.NewProductHandler(catalogUC, productUC),
		handler.NewStoreHandler(storeUC),
		handler.NewCartHandler(cartUC, cfg.CartCookieMaxAge, cfg.CookieSecure),
		handler.NewCheckoutHandler(checkoutUC, cartUC),
		handler.NewOrderHandler(orderUC),
		handler.NewNewsletterHandler(newsletterUC),
		handler.NewDashboardHandler(handler.DashboardDeps{
			Stores:    storeUC,
			Products:  productUC,
			Orders:    orderUC,
			Customers: customerUC,
			Analytics: analyticsUC,
			Uploads:   uploadUC,
		}),
	}

	e := server.New(cfg, log, server.Deps{
		Users:   userRepo,
		Stores:  storeUC,
		Routers: routers,
	})

	return &App{
		Echo:   e,
		Carts:  cartUC,
		Seeder: seed.NewSeeder(categoryRepo, storeRepo, productRepo, userRepo, hasher, log.Named("seed")),
	}, nil
}
