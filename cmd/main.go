package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/leonemunyao/alx-project-nexus/config"
	"github.com/leonemunyao/alx-project-nexus/internal/api/car"
	"github.com/leonemunyao/alx-project-nexus/internal/api/category"
	"github.com/leonemunyao/alx-project-nexus/internal/api/dealership"
	"github.com/leonemunyao/alx-project-nexus/internal/api/favorite"
	"github.com/leonemunyao/alx-project-nexus/internal/api/review"
	"github.com/leonemunyao/alx-project-nexus/internal/api/stats"
	"github.com/leonemunyao/alx-project-nexus/internal/api/user"
	"github.com/leonemunyao/alx-project-nexus/internal/middleware"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/mysql"
	"github.com/leonemunyao/alx-project-nexus/internal/service"
	"github.com/leonemunyao/alx-project-nexus/internal/storage"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("car_year", util.ValidateCarYear)
	}

	// 初始化图片存储后端
	imageStorage, err := storage.New(&config.AppConfig)
	if err != nil {
		util.Logger.Fatal("初始化图片存储失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	carRepo := mysql.NewCarRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	favoriteRepo := mysql.NewFavoriteRepository(db)
	dealershipRepo := mysql.NewDealershipRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	statsRepo := mysql.NewStatsRepository(db)

	userService := service.NewUserService(userRepo)
	carService := service.NewCarService(carRepo, reviewRepo, favoriteRepo)
	reviewService := service.NewReviewService(reviewRepo, carRepo, userRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, carRepo)
	dealershipService := service.NewDealershipService(dealershipRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	statsService := service.NewStatsService(statsRepo)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService)
	carHandler := car.NewCarHandler(carService)
	dealerCarHandler := car.NewDealerCarHandler(carService, imageStorage)
	reviewHandler := review.NewReviewHandler(reviewService)
	favoriteHandler := favorite.NewFavoriteHandler(favoriteService)
	dealershipHandler := dealership.NewDealershipHandler(dealershipService, imageStorage)
	categoryHandler := category.NewCategoryHandler(categoryService)
	statsHandler := stats.NewStatsHandler(statsService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 本地存储时的静态文件服务
	if config.AppConfig.StorageBackend == "local" {
		r.Use(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
				c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
				if c.Request.Method == "OPTIONS" {
					c.AbortWithStatus(200)
					return
				}
			}
			c.Next()
		})
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	authRequired := middleware.AuthMiddleware(userService)
	authOptional := middleware.OptionalAuthMiddleware(userService)
	dealerOnly := middleware.DealerMiddleware()

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 认证相关路由
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		// 账号信息
		api.GET("/users/profile", authRequired, profileHandler.GetAccount)
		api.PUT("/users/profile", authRequired, profileHandler.UpdateAccount)

		// 公开的车辆读接口，携带令牌时可见自己的未发布车辆
		api.GET("/cars", authOptional, carHandler.ListCars)
		api.GET("/cars/:id", authOptional, carHandler.GetCar)
		api.GET("/cars/:id/reviews", reviewHandler.ListReviews)

		// 经销商的车辆管理
		dealerCars := api.Group("/dealers/cars")
		dealerCars.Use(authRequired, dealerOnly)
		{
			dealerCars.POST("/create", dealerCarHandler.CreateCar)
			dealerCars.GET("", dealerCarHandler.ListOwnCars)
			dealerCars.PUT("/:id", dealerCarHandler.UpdateCar)
			dealerCars.DELETE("/:id", dealerCarHandler.DeleteCar)
			dealerCars.POST("/:id/publish", dealerCarHandler.SetPublished)
			dealerCars.POST("/bulk-publish", dealerCarHandler.BulkPublish)
		}

		// 经销商档案
		api.GET("/dealers", profileHandler.ListDealers)
		api.GET("/dealers/:id", profileHandler.GetDealer)
		api.POST("/dealers/create", authRequired, profileHandler.CreateDealerProfile)
		api.GET("/dealers/profile", authRequired, profileHandler.GetOwnDealerProfile)
		api.PUT("/dealers/profile", authRequired, profileHandler.UpdateDealerProfile)

		// 买家档案
		api.POST("/buyers/create", authRequired, profileHandler.CreateBuyerProfile)
		api.GET("/buyers/profile", authRequired, profileHandler.GetBuyerProfile)
		api.PUT("/buyers/profile", authRequired, profileHandler.UpdateBuyerProfile)

		// 分类
		api.GET("/categories", categoryHandler.ListCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)
		api.POST("/categories/create", authRequired, categoryHandler.CreateCategory)
		api.DELETE("/categories/:id", authRequired, categoryHandler.DeleteCategory)

		// 评价
		api.POST("/cars/:id/reviews/create", authRequired, reviewHandler.CreateReview)
		api.PUT("/reviews/:id", authRequired, reviewHandler.UpdateReview)
		api.DELETE("/reviews/:id", authRequired, reviewHandler.DeleteReview)

		// 收藏
		api.GET("/favorites", authRequired, favoriteHandler.ListFavorites)
		api.POST("/favorites", authRequired, favoriteHandler.AddFavorite)
		api.DELETE("/favorites/:id", authRequired, favoriteHandler.RemoveFavorite)
		api.POST("/cars/:id/toggle-favorite", authRequired, favoriteHandler.ToggleFavorite)

		// 店铺
		api.GET("/dealerships", dealershipHandler.ListDealerships)
		api.GET("/dealerships/:dealerId", authOptional, dealershipHandler.GetDealership)
		dealerships := api.Group("/dealerships")
		dealerships.Use(authRequired, dealerOnly)
		{
			dealerships.POST("/create", dealershipHandler.CreateDealership)
			dealerships.GET("/profile", dealershipHandler.GetOwnDealership)
			dealerships.PUT("/profile", dealershipHandler.UpdateDealership)
			dealerships.POST("/toggle-publish", dealershipHandler.TogglePublish)
			dealerships.POST("/avatar", dealershipHandler.UploadAvatar)
		}

		// 统计与搜索建议
		api.GET("/stats", statsHandler.MarketStats)
		api.GET("/search-suggestions", statsHandler.Suggest)
	}

	// 启动 HTTP 服务器
	srv := &http.Server{
		Addr:    ":" + config.AppConfig.ServerPort,
		Handler: r,
	}

	go func() {
		util.Logger.Info("HTTP服务器启动", zap.String("port", config.AppConfig.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("HTTP服务器异常退出", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("收到退出信号，开始关闭服务器")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器关闭失败", zap.Error(err))
	}
	util.Logger.Info("服务器已关闭")
}
