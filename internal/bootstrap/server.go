package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, verifier auth.Verifier, bookingSvc booking.BookingUseCase) error {
	router := newRouter(cfg, verifier, bookingSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, verifier auth.Verifier, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.Default()

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	if cfg.HTTP.ClientURL != "" {
		corsCfg.AllowOrigins = []string{cfg.HTTP.ClientURL}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	handler := api.NewBookingHandler(bookingSvc)
	handler.Register(router.Group("/bookings"), api.RequireUser(verifier))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/api-docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/bookings.swagger.json"),
		)))
	}

	return router
}
