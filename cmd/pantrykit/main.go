package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/pantrykit/pantrykit/config"
	"github.com/pantrykit/pantrykit/internal/app"
	"github.com/pantrykit/pantrykit/internal/scan"
)

var configFile = flag.String("c", "", "config file path")

// lineScanner reads "code [symbology]" lines from an input stream, standing
// in for the device camera capability.
type lineScanner struct {
	r *bufio.Reader
}

var _ scan.Scanner = (*lineScanner)(nil)

func (s *lineScanner) Scan(ctx context.Context) (scan.Result, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		return scan.Result{}, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return scan.Result{}, fmt.Errorf("empty scan input")
	}
	res := scan.Result{Data: fields[0], Type: guessSymbology(fields[0])}
	if len(fields) > 1 {
		res.Type = fields[1]
	}
	return res, nil
}

func guessSymbology(code string) string {
	switch len(code) {
	case 13:
		return scan.SymEAN13
	case 12:
		return scan.SymUPCA
	case 8:
		return scan.SymEAN8
	default:
		return scan.SymCodabar
	}
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	application := app.NewApplication(config.LoadConfig(*configFile))
	if err := application.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}
	defer application.Release()

	fmt.Println("commands: scan <code> [symbology] | list | remove <id> | clear | quit")
	repl(application, os.Stdin, os.Stdout)
}

func repl(application *app.Application, in io.Reader, out io.Writer) {
	ctx := context.Background()
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return
		case "list":
			printList(application, out)
		case "clear":
			application.ListStore().Clear()
		case "remove":
			if len(fields) > 1 {
				application.ListStore().Remove(fields[1])
			}
		case "scan":
			args := fields[1:]
			if len(args) == 0 {
				// no inline code: read the next line through the
				// Scanner contract, like a camera feed would deliver
				fmt.Fprint(out, "code: ")
				res, err := (&lineScanner{r: reader}).Scan(ctx)
				if err != nil {
					fmt.Fprintln(out, "scan failed:", err)
					continue
				}
				args = []string{res.Data, res.Type}
			}
			handleScan(ctx, application, args, reader, out)
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}
	}
}

func handleScan(ctx context.Context, application *app.Application, args []string, reader *bufio.Reader, out io.Writer) {
	res := scan.Result{Data: args[0], Type: guessSymbology(args[0])}
	if len(args) > 1 {
		res.Type = args[1]
	}
	if !scan.Supported(res.Type) {
		fmt.Fprintf(out, "unsupported symbology %q\n", res.Type)
		return
	}

	svc := application.ScanService()
	product, isNew := svc.Resolve(ctx, res)
	fmt.Fprintf(out, "%s (%s)\n", scan.FormatCode(res.Data, res.Type), res.Type)
	if isNew {
		fmt.Fprintln(out, "new product, enter details")
		product.Name = prompt(reader, out, "name")
		product.Manufacturer = prompt(reader, out, "manufacturer")
	} else {
		fmt.Fprintf(out, "%s / %s\n", product.Name, product.Manufacturer)
	}

	opts := scan.ConfirmOptions{
		ExpiresAt: prompt(reader, out, "expires (optional)"),
		Notes:     prompt(reader, out, "notes (optional)"),
	}
	if raw := prompt(reader, out, "amount [1]"); raw != "" {
		if amount, err := cast.ToFloat64E(raw); err == nil {
			opts.Amount = &amount
		}
	}

	if entry := svc.Confirm(product, opts); entry != nil {
		fmt.Fprintf(out, "added entry %s\n", entry.ID)
	} else {
		zap.S().Warn("entry was not persisted")
	}
}

func prompt(reader *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprintf(out, "%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func printList(application *app.Application, out io.Writer) {
	rows := application.ListRows()
	if len(rows) == 0 {
		fmt.Fprintln(out, "(empty)")
		return
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s  %s  x%g", row.Entry.ID, row.Product.Name, row.Entry.Amount)
		if row.Entry.ExpiresAt != "" {
			fmt.Fprintf(out, "  expires %s", row.Entry.ExpiresAt)
		}
		if row.Entry.Notes != "" {
			fmt.Fprintf(out, "  (%s)", row.Entry.Notes)
		}
		fmt.Fprintln(out)
	}
}
