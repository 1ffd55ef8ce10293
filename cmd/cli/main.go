package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/application/validation"
	"github.com/sangkips/expedicao-api/internal/config"
	"github.com/sangkips/expedicao-api/internal/infrastructure/maglog"
	"github.com/sangkips/expedicao-api/internal/infrastructure/repository"
	"github.com/sangkips/expedicao-api/internal/presentation/cli"
)

func main() {
	draftPath := flag.String("draft", "", "YAML order draft used to prefill the form")
	dryRun := flag.Bool("dry-run", false, "print the payload instead of sending it")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	client := maglog.NewClient(maglog.Config{
		URL:    cfg.Maglog.URL,
		Tenant: cfg.Maglog.Tenant,
		Owner:  cfg.Maglog.Owner,
	}, nil)

	wms := client.Config()
	log.Printf("WMS endpoint: %s (tenant %s)", wms.URL, wms.Tenant)

	fc := service.NewFormController(repository.NewExpedicaoRepository(client), validation.New(), nil)

	if *draftPath != "" {
		draft, err := cli.LoadDraft(*draftPath)
		if err != nil {
			log.Fatalf("Failed to load draft: %v", err)
		}
		if err := cli.ApplyDraft(fc, draft); err != nil {
			log.Fatalf("Failed to apply draft: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	operator := cli.NewOperator(fc, cli.NewSurveyDriver(os.Stdout), *dryRun)
	if err := operator.Run(ctx); err != nil {
		log.Printf("Operator session ended with error: %v", err)
		os.Exit(1)
	}
}
