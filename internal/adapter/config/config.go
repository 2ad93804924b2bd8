package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database    *Database
	HTTP        *HTTP
	MercadoPago *MercadoPago
	AMQP        *AMQP
	App         *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type MercadoPago struct {
	BaseURL       string `env:"MP_API_URL"`
	AccessToken   string `env:"MP_ACCESS_TOKEN"`
	WebhookSecret string `env:"MP_WEBHOOK_SECRET"`
}

type AMQP struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var mp MercadoPago
	var amqp AMQP
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&mp.BaseURL, "p", `https://api.mercadopago.com`, "Payment gateway API address")
	flag.StringVar(&mp.AccessToken, "t", "", "Payment gateway access token")
	flag.StringVar(&mp.WebhookSecret, "s", "", "Webhook signature secret (empty disables verification)")
	flag.StringVar(&amqp.URL, "q", "", "AMQP broker URL (empty logs notifications instead)")
	flag.StringVar(&amqp.Exchange, "e", `storefront.notifications`, "AMQP exchange for notifications")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&mp)
	if err != nil {
		return nil, fmt.Errorf("error parsing payment gateway config: %w", err)
	}
	err = env.Parse(&amqp)
	if err != nil {
		return nil, fmt.Errorf("error parsing amqp config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database:    &db,
		HTTP:        &http,
		MercadoPago: &mp,
		AMQP:        &amqp,
		App:         &app,
	}

	return &config, nil
}
