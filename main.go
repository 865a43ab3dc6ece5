package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"albumapi/auth"
	"albumapi/config"
	"albumapi/db"
	"albumapi/handlers"
	"albumapi/models"
	"albumapi/storage"
	"albumapi/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	db.Init(cfg)
	models.Init()
	storage.Init(cfg)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if cfg.DebugMode {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !cfg.DebugMode {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default

	provider := auth.NewProvider(cfg)
	authRouter := &auth.Router{Base: router, Secret: []byte(cfg.JWTSecret)}

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>Welcome to the album API server.</h1>"))
	})
	// Login flow
	router.GET("/auth/google", handlers.GoogleLogin(provider))
	router.GET("/auth/google/callback", handlers.GoogleCallback(cfg, provider))
	// Album metadata is readable by id without a session
	router.GET("/albums/:albumId", handlers.AlbumGet)
	// Disk-bucket blobs are served straight off the drive
	if cfg.DefaultBucketDir != "" {
		router.Static("/files", cfg.DefaultBucketDir)
	}

	authRouter.GET("/user/profile", handlers.UserProfile)
	// Album handlers
	authRouter.POST("/albums", handlers.AlbumCreate)
	authRouter.GET("/albums", handlers.AlbumList)
	authRouter.GET("/albums/shared", handlers.AlbumListShared)
	authRouter.PUT("/albums/:albumId", handlers.AlbumUpdate)
	authRouter.DELETE("/albums/:albumId", handlers.AlbumDelete)
	authRouter.POST("/albums/:albumId/share", handlers.AlbumShare)
	// Image handlers
	authRouter.POST("/albums/:albumId/images", handlers.ImageUpload(storage.GetDefaultStorage()))
	authRouter.GET("/albums/:albumId/images", handlers.ImageList)
	authRouter.PUT("/albums/:albumId/images/:imageId/favorite", handlers.ImageFavourite)
	authRouter.PUT("/albums/:albumId/images/:imageId/comments", handlers.ImageComment)
	authRouter.DELETE("/albums/:albumId/images/:imageId", handlers.ImageDelete)

	var err error
	if cfg.TLSDomains != "" {
		err = autotls.Run(router, strings.Split(cfg.TLSDomains, ",")...)
	} else {
		err = router.Run(cfg.BindAddress)
	}
	log.Fatalf("Server stopped: %v", err)
}
