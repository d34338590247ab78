package main

import (
	"log"
	"strconv"
	"time"

	"pos/internal/config"
	"pos/internal/domain/model"
	"pos/internal/handler"
	"pos/internal/infra/db"
	infraRepo "pos/internal/infra/repository"
	"pos/internal/server"
	"pos/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(cashierID int64, username string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(cashierID, 10),
		"name": username,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.Cashier{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	); err != nil {
		log.Fatal(err)
	}

	if cfg.SeedOnStart {
		if err := db.Seed(gormDB); err != nil {
			log.Fatal(err)
		}
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	cashierRepo := infraRepo.NewCashierGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB, cfg.LockTimeoutMS)

	//usecaseに渡す部品
	clock := &realClock{}
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 8 * time.Hour, // 1シフトぶん
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cashierRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager)
	reportUC := usecase.NewReportUsecase(reportRepo, clock)

	//Handler生成
	e := server.New(cfg, server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Product:  handler.NewProductHandler(productUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
		Report:   handler.NewReportHandler(reportUC),
	})

	//Server起動
	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
