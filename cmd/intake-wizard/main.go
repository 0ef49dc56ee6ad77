// Command intake-wizard runs an intake form in the terminal and submits the
// result to the processing webhook.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tramita/go-intake/pkg/autofill"
	"github.com/tramita/go-intake/pkg/orders"
	"github.com/tramita/go-intake/pkg/renderers/tui"
	"github.com/tramita/go-intake/pkg/submit"
	"github.com/tramita/go-intake/pkg/templates"
	"github.com/tramita/go-intake/pkg/wizard"
)

func main() {
	var (
		docType     = flag.String("template", string(templates.Peticion), "document type: peticion, tutela, incidente")
		orderNumber = flag.String("order", "", "order number to attach delivery metadata from")
		orderAPI    = flag.String("order-api", os.Getenv("INTAKE_ORDER_API"), "base URL of the order lookup backend")
		webhookURL  = flag.String("webhook", os.Getenv("INTAKE_WEBHOOK_URL"), "processing webhook URL (empty: validate only)")
		refPath     = flag.String("reference", "", "path to a reference document to attach")
		sample      = flag.Bool("sample", false, "prefill the form with sample data")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *docType, *orderNumber, *orderAPI, *webhookURL, *refPath, *sample); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "cancelado.")
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, docType, orderNumber, orderAPI, webhookURL, refPath string, sample bool) error {
	tpl, err := templates.Load(templates.DocumentType(docType))
	if err != nil {
		return err
	}

	var prefill = autofill.Values(tpl.Type)
	if !sample {
		prefill = nil
	}

	session, err := wizard.NewSession(tpl, prefill)
	if err != nil {
		return err
	}

	if orderNumber != "" {
		lookup, err := orders.NewClient(orderAPI)
		if err != nil {
			return err
		}
		order, err := lookup.Order(ctx, orderNumber)
		if err != nil {
			return err
		}
		session.AttachOrder(order)
	}

	if refPath != "" {
		raw, err := os.ReadFile(refPath)
		if err != nil {
			return fmt.Errorf("read reference document: %w", err)
		}
		session.AttachReference(string(raw))
	}

	var sink submit.Sink
	if webhookURL != "" {
		webhook, err := submit.NewWebhook(webhookURL)
		if err != nil {
			return err
		}
		sink = webhook
	}

	runner := tui.NewRunner()
	receipt, err := runner.Run(ctx, session, sink)
	if err != nil {
		return err
	}

	if sink == nil {
		fmt.Println("formulario válido; no se configuró webhook, nada fue enviado.")
		return nil
	}
	fmt.Printf("enviado: estado %d\n", receipt.StatusCode)
	return nil
}
