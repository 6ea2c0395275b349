package handler

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/pos/backend/internal/application/catalog"
	appidentity "github.com/pos/backend/internal/application/identity"
	appinv "github.com/pos/backend/internal/application/inventory"
	apptrade "github.com/pos/backend/internal/application/trade"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/infrastructure/auth"
	"github.com/pos/backend/internal/infrastructure/cache"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"github.com/pos/backend/internal/interfaces/http/router"
	"github.com/pos/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testAPI is the full API over an in-memory database with an admin and a
// seller of branch Centro already seeded
type testAPI struct {
	engine      *gin.Engine
	db          *gorm.DB
	jwt         *auth.JWTService
	blacklist   *auth.InMemoryTokenBlacklist
	branch      *identity.Branch
	admin       *identity.User
	seller      *identity.User
	adminToken  string
	sellerToken string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithLoginGuard(t, nil)
}

func newTestAPIWithLoginGuard(t *testing.T, loginGuard gin.HandlerFunc) *testAPI {
	t.Helper()
	return buildTestAPI(t, loginGuard, nil)
}

// buildTestAPI mounts the product image routes only when images is set
func buildTestAPI(t *testing.T, loginGuard gin.HandlerFunc, images appcatalog.ObjectStorage) *testAPI {
	t.Helper()
	log := zaptest.NewLogger(t)
	db := testutil.NewSQLiteDB(t)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-32-characters-long",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "pos-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	txScope := persistence.NewGormTransactionScope(db)
	branchRepo := persistence.NewGormBranchRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	stockRepo := persistence.NewGormStockRepository(db)
	posCache := cache.NewInMemoryPOSViewCache(time.Minute, log)

	handlers := Handlers{
		Auth:   NewAuthHandler(appidentity.NewAuthService(userRepo, jwtService, log)),
		Branch: NewBranchHandler(appidentity.NewBranchService(txScope, branchRepo, log)),
		User: NewUserHandler(appidentity.NewUserService(userRepo, branchRepo, log).
			WithTokenRevocation(blacklist, 15*time.Minute)),
		Category:  NewCategoryHandler(appcatalog.NewCategoryService(categoryRepo)),
		Product:   NewProductHandler(appcatalog.NewProductService(txScope, productRepo, log), appcatalog.NewPOSViewService(productRepo, stockRepo, posCache, log)),
		Inventory: NewInventoryHandler(appinv.NewStockService(txScope, stockRepo, log)),
		Sale:      NewSaleHandler(apptrade.NewSaleService(txScope, saleRepo, log)),
		System:    NewSystemHandler(nil, "POS Backend API", "test"),
	}

	if images != nil {
		imageService := appcatalog.NewProductImageService(productRepo, images, log)
		handlers.Image = NewProductImageHandler(imageService)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/health", handlers.System.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	}))
	handlers.Mount(r, loginGuard)
	r.Setup()

	api := &testAPI{engine: engine, db: db, jwt: jwtService, blacklist: blacklist}
	api.branch = testutil.SeedBranch(t, db, "Centro")
	api.admin = testutil.SeedUser(t, db, "admin@pos.test", identity.RoleAdmin, &api.branch.ID)
	api.seller = testutil.SeedUser(t, db, "seller@pos.test", identity.RoleSeller, &api.branch.ID)
	api.adminToken = api.token(t, api.admin)
	api.sellerToken = api.token(t, api.seller)
	return api
}

func (a *testAPI) token(t *testing.T, user *identity.User) string {
	t.Helper()
	token, err := a.jwt.GenerateAccessToken(user)
	require.NoError(t, err)
	return token.Token
}
