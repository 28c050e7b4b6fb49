// SPDX-License-Identifier: AGPL-3.0-only
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"

	"github.com/natterhq/natter/internal/api/handlers"
	"github.com/natterhq/natter/internal/cli"
	"github.com/natterhq/natter/internal/config"
	"github.com/natterhq/natter/internal/middleware"
	"github.com/natterhq/natter/internal/social"
	"github.com/natterhq/natter/internal/worker"
)

func main() {
	resetPassword := flag.String("reset-password", "", "reset the password for the given account email and exit")
	reset2FA := flag.String("reset-2fa", "", "disable two-factor auth for the given account email and exit")
	flag.Parse()

	cfg := config.Load()

	dbQueries, dbConn, err := config.LoadDatabase()
	if err != nil {
		log.Fatalln(err)
	}
	defer dbConn.Close()

	if *resetPassword != "" {
		cli.HandleResetPassword(dbQueries, *resetPassword)
		return
	}
	if *reset2FA != "" {
		cli.HandleReset2FA(dbQueries, *reset2FA)
		return
	}

	svc := social.NewService(dbQueries)

	publishWorker := worker.NewWorker(svc)
	publishWorker.Start(cfg.DispatchInterval)
	defer publishWorker.Stop()

	h := handlers.NewHandler(dbQueries, dbConn, cfg, svc, publishWorker)

	r := gin.Default()
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(sessions.Sessions("natter_session", cookie.NewStore(cfg.SessionSecret)))
	r.Use(middleware.AuthMiddleware(dbQueries, cfg))

	registerRoutes(r, h)

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalln(err)
	}
	listener = netutil.LimitListener(listener, cfg.MaxClients)

	httpServer := &http.Server{Handler: r}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}

func registerRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/health", h.HealthCheckHandler)

	api := r.Group("/api")
	{
		api.POST("/register", h.RegisterHandler)
		api.POST("/login", h.LoginHandler)
		api.POST("/login/2fa", h.Login2FAHandler)
		api.POST("/logout", h.LogoutHandler)

		api.GET("/me", h.MeHandler)
		api.PUT("/me", h.UpdateMeHandler)
		api.POST("/2fa/setup", h.TwoFASetupHandler)
		api.POST("/2fa/enable", h.TwoFAEnableHandler)

		api.GET("/profiles", h.ListProfilesHandler)
		api.GET("/profiles/me", h.MyProfileHandler)
		api.POST("/profiles/me", h.CreateMyProfileHandler)
		api.PUT("/profiles/me", h.UpdateMyProfileHandler)
		api.DELETE("/profiles/me", h.DeleteMyProfileHandler)
		api.POST("/profiles/me/avatar", h.UploadAvatarHandler)
		api.GET("/profiles/followers", h.MyFollowersHandler)
		api.GET("/profiles/followings", h.MyFollowingsHandler)
		api.GET("/profiles/:id", h.GetProfileHandler)
		api.GET("/profiles/:id/avatar", h.AvatarHandler)
		api.POST("/profiles/:id/follow", h.FollowHandler)
		api.DELETE("/profiles/:id/follow", h.UnfollowHandler)
		api.GET("/profiles/:id/followers", h.FollowersHandler)
		api.GET("/profiles/:id/followings", h.FollowingsHandler)
		api.GET("/profiles/:id/stats", h.ProfileStatsHandler)

		api.GET("/posts", h.ListPostsHandler)
		api.GET("/posts/export", h.ExportPostsHandler)
		api.POST("/posts", h.CreatePostHandler)
		api.GET("/posts/my_posts", h.MyPostsHandler)
		api.GET("/posts/following_posts", h.FollowingPostsHandler)
		api.GET("/posts/liked", h.LikedPostsHandler)
		api.GET("/posts/:id", h.GetPostHandler)
		api.PUT("/posts/:id", h.UpdatePostHandler)
		api.DELETE("/posts/:id", h.DeletePostHandler)
		api.POST("/posts/:id/image", h.UploadPostImageHandler)
		api.GET("/posts/:id/image", h.PostImageHandler)
		api.POST("/posts/:id/like", h.LikeHandler)
		api.POST("/posts/:id/comment", h.CreateCommentHandler)
		api.DELETE("/posts/:id/comment/:comment_id", h.DeleteCommentHandler)
	}
}
