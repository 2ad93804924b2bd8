package main

import (
	"context"
	"fmt"

	"github.com/tiendago/orders/internal/adapter/auth"
	"github.com/tiendago/orders/internal/adapter/client/mercadopago"
	"github.com/tiendago/orders/internal/adapter/config"
	"github.com/tiendago/orders/internal/adapter/handler/http"
	"github.com/tiendago/orders/internal/adapter/logger"
	"github.com/tiendago/orders/internal/adapter/notifier"
	"github.com/tiendago/orders/internal/adapter/storage"
	"github.com/tiendago/orders/internal/adapter/storage/repository"
	"github.com/tiendago/orders/internal/core/port"
	"github.com/tiendago/orders/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("order repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	gateway, err := mercadopago.NewClient(conf.MercadoPago, log.Named("MercadoPago"))
	if err != nil {
		log.Error("payment gateway client creating error", zap.Error(err))
		return
	}

	var notify port.Notifier
	if conf.AMQP.URL != "" {
		notify, err = notifier.NewAMQPNotifier(conf.AMQP, log.Named("Notifier"))
		if err != nil {
			log.Error("notifier creating error", zap.Error(err))
			return
		}
	} else {
		notify = notifier.NewLogNotifier(log.Named("Notifier"))
	}

	svc, err := service.NewService(repo, tokenService, gateway, notify, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	shopperHandler, err := http.NewShopperHandler(svc, log.Named("Shopper handler"))
	if err != nil {
		log.Error("shopper handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	webhookHandler, err := http.NewWebhookHandler(svc, log.Named("Webhook handler"))
	if err != nil {
		log.Error("webhook handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, conf.MercadoPago.WebhookSecret, tokenService,
		shopperHandler, orderHandler, webhookHandler, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
