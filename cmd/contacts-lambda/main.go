package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/goliatone/go-contacts/bootstrap"
	"github.com/goliatone/go-contacts/config"
)

func main() {
	base := bootstrap.NewBaseLogger("contacts-lambda")
	log := base.GetLogger("main")
	ctx := context.Background()

	cfg, err := config.Load(ctx, base.GetLogger("config"))
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}
	app, err := bootstrap.New(ctx, cfg, base)
	if err != nil {
		log.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	lambda.Start(bootstrap.NewGatewayHandler(app.Router).Handle)
}
