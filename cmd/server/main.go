package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/doku"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	httpx "github.com/usausernob/lapangan-putroagung-rangkah/internal/http"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/notifier"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/repository"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/service"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/worker"
	"github.com/usausernob/lapangan-putroagung-rangkah/pkg/config"
	"github.com/usausernob/lapangan-putroagung-rangkah/pkg/db"
	"github.com/usausernob/lapangan-putroagung-rangkah/pkg/mq"
	"github.com/usausernob/lapangan-putroagung-rangkah/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		logrus.Fatal(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.OTLPEndpoint != "" {
		shutdown := must(obs.InitTracer("venue-booking", cfg.OTLPEndpoint, cfg.Env))
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	// DB
	gdb := must(db.Open(cfg.PGDSN))
	bookingRepo := repository.NewBookingRepo(gdb)
	courtRepo := repository.NewCourtRepo(gdb)
	userRepo := repository.NewUserRepo(gdb)
	galleryRepo := repository.NewGalleryRepo(gdb)
	chatRepo := repository.NewChatRepo(gdb)
	must(0, bookingRepo.Migrate())
	must(0, courtRepo.Migrate())
	must(0, userRepo.Migrate())
	must(0, galleryRepo.Migrate())
	must(0, chatRepo.Migrate())
	must(0, courtRepo.Seed(ctx, domain.DefaultCourts()))

	// Events (optional: the API runs without a broker)
	var pub *mq.Publisher
	var notifyCons *mq.Consumer
	if cfg.RabbitURL != "" {
		pub = must(mq.NewPublisher(cfg.RabbitURL, cfg.EventExchange))
		defer pub.Close()
		notifyCons = must(mq.NewConsumer(mq.ConsumerConfig{
			URL:      cfg.RabbitURL,
			Exchange: cfg.EventExchange,
			Queue:    cfg.NotifyQueue,
			Bindings: worker.Bindings(),
			Prefetch: cfg.NotifyPrefetch,
			Tag:      "venue-notify",
		}))
		defer notifyCons.Close()
	}

	// Gateway client
	gateway := doku.NewClient(doku.Config{
		ClientID:  cfg.DokuClientID,
		SecretKey: cfg.DokuSecretKey,
		BaseURL:   cfg.DokuBaseURL,
	})

	// Services
	var eventPub service.Publisher
	if pub != nil {
		eventPub = pub
	}
	paymentSvc := service.NewPaymentSvc(bookingRepo, gateway, eventPub, cfg.CallbackBaseURL)
	reconcileSvc := service.NewReconcileSvc(bookingRepo, eventPub, cfg.WebhookTerminalGuard)
	bookingSvc := service.NewBookingSvc(bookingRepo)
	authSvc := service.NewAuthSvc(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute)
	chatSvc := service.NewChatSvc(chatRepo)

	r := httpx.NewRouter(httpx.Deps{
		JWTSecret: cfg.JWTSecret,
		Auth:      httpx.NewAuthHandler(authSvc),
		Payments:  httpx.NewPaymentHandler(paymentSvc),
		Webhook:   httpx.NewWebhookHandler(reconcileSvc),
		Bookings:  httpx.NewBookingHandler(bookingSvc, courtRepo),
		Courts:    httpx.NewCourtHandler(courtRepo),
		Gallery:   httpx.NewGalleryHandler(galleryRepo),
		Chat:      httpx.NewChatHandler(chatSvc),
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if notifyCons != nil {
		nw := worker.NewNotifyWorker(notifyCons, notifier.NewConsole())
		g.Go(func() error {
			logrus.Info("notify worker started")
			return nw.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("stopped")
}
