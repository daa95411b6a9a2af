// inkcard — Wikipedia summary cards for a 600×448 e-ink display.
//
// Usage:
//
//	inkcard -o <file> --email <addr> [--article tfa|random] [options]
//	inkcard daemon --email <addr> [options]
//	inkcard serve [--port 8080] --email <addr>
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/seliot/inkcard/clients/server"
	"github.com/seliot/inkcard/pkg/card"
	"github.com/seliot/inkcard/pkg/display"
	"github.com/seliot/inkcard/pkg/generator"
	"github.com/seliot/inkcard/pkg/wiki"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "daemon":
		if err := runDaemon(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "serve":
		if err := server.RunServe(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		// Default: one-shot render mode (all flags on root).
		if err := run(os.Args[1:]); err != nil {
			fatal(err)
		}
	}
}

// cardFlags are the options shared by one-shot and daemon modes.
type cardFlags struct {
	email     string
	article   string
	language  string
	titleFont string
	bodyFont  string
	date      string
}

func (c *cardFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "Contact email for the Wikimedia user agent (required)")
	fs.StringVar(&c.article, "article", "tfa", `Article kind: "tfa" or "random"`)
	fs.StringVar(&c.language, "language", "en", "Wikipedia language code")
	fs.StringVar(&c.titleFont, "title-font", "", "Path to the title font (Wikipedia uses Georgia)")
	fs.StringVar(&c.bodyFont, "body-font", "", "Path to the body font (Wikipedia uses Helvetica)")
	fs.StringVar(&c.date, "date", "", `Featured-article date as yyyy/mm/dd (default: today)`)
}

func run(args []string) error {
	fs := flag.NewFlagSet("inkcard", flag.ExitOnError)

	var output string
	var cf cardFlags
	fs.StringVar(&output, "o", "", "Output file path (.png or .bmp)")
	fs.StringVar(&output, "output", "", "Output file path (.png or .bmp)")
	cf.register(fs)

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		printUsage()
		return fmt.Errorf("output file is required (-o)")
	}
	if cf.email == "" {
		return fmt.Errorf("--email is required")
	}

	composer, err := card.NewComposer(cf.titleFont, cf.bodyFont)
	if err != nil {
		return err
	}
	client := wiki.NewClient(cf.email)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Rendering %s card: %s\n", cf.article, output)
	img, err := renderCard(ctx, client, composer, cf)
	if err != nil {
		return err
	}
	if err := generator.Generate(output, img); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

func runDaemon(args []string) error {
	fs := flag.NewFlagSet("daemon", flag.ExitOnError)

	var (
		output string
		border string
		cf     cardFlags
	)
	fs.StringVar(&output, "o", "card.png", "Frame file the display driver writes")
	fs.StringVar(&border, "border", "#ffffff", "Display border color")
	cf.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cf.email == "" {
		return fmt.Errorf("--email is required")
	}

	borderColor, err := generator.ParseColor(border)
	if err != nil {
		return err
	}

	composer, err := card.NewComposer(cf.titleFont, cf.bodyFont)
	if err != nil {
		return err
	}
	client := wiki.NewClient(cf.email)
	driver := &display.FileDriver{Path: output}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	canvas := image.Rect(0, 0, card.CanvasWidth, card.CanvasHeight)
	for {
		logger.Info("cleaning display")
		if err := display.Clean(driver, canvas, display.CleanColors...); err != nil {
			logger.Error("clean cycle", "err", err)
		}

		logger.Info("retrieving article", "kind", cf.article, "language", cf.language)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		img, err := renderCard(ctx, client, composer, cf)
		cancel()
		if err != nil {
			// A failed cycle is retried at the next refresh, not fatal.
			logger.Error("render card", "err", err)
		} else {
			driver.SetBorder(borderColor)
			if err := driver.SetImage(img); err != nil {
				logger.Error("set image", "err", err)
			} else if err := driver.Show(); err != nil {
				logger.Error("show", "err", err)
			}
		}

		next := nextRefresh(time.Now())
		logger.Info("sleeping until next refresh", "at", next)
		time.Sleep(time.Until(next))
	}
}

// nextRefresh is the following day at 03:00 local time.
func nextRefresh(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 3, 0, 0, 0, now.Location())
}

// renderCard fetches the article and its thumbnail and composes the canvas.
func renderCard(ctx context.Context, client *wiki.Client, composer *card.Composer, cf cardFlags) (*image.RGBA, error) {
	var (
		article wiki.Article
		err     error
	)
	switch cf.article {
	case "tfa":
		article, err = client.Featured(ctx, cf.language, cf.date)
	case "random":
		article, err = client.Random(ctx, cf.language)
	default:
		return nil, fmt.Errorf(`unknown article kind %q: use "tfa" or "random"`, cf.article)
	}
	if err != nil {
		return nil, err
	}

	in := card.Input{
		Title:       article.Title,
		Description: article.Description,
		Extract:     article.Extract,
		TargetURL:   article.URL,
	}
	if article.ThumbnailURL != "" {
		thumb, err := client.Image(ctx, article.ThumbnailURL)
		if err != nil {
			return nil, err
		}
		in.Thumbnail = thumb
	}

	return composer.Compose(in)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`inkcard — Wikipedia summary cards for a 600x448 e-ink display

USAGE:
    inkcard -o <file> --email <addr> [options]
    inkcard daemon --email <addr> [options]
    inkcard serve [--port 8080] --email <addr>

ONE-SHOT MODE:
    -o, --output <path>    Output file (.png or .bmp)
    --email <addr>         Contact email for the Wikimedia user agent
    --article <kind>       "tfa" (default) or "random"
    --language <code>      Wikipedia language code (default: en)
    --title-font <path>    Title font file (default: embedded Go Bold)
    --body-font <path>     Body font file (default: embedded Go Regular)
    --date <yyyy/mm/dd>    Featured-article date (tfa only, default: today)

DAEMON MODE:
    inkcard daemon         Refresh the display every morning at 03:00
    -o <path>              Frame file for the file-backed driver (default: card.png)
    --border <hex>         Display border color (default: #ffffff)

PREVIEW SERVER:
    inkcard serve          Serve /card.png?article=tfa|random&lang=xx

EXAMPLES:
    inkcard -o card.png --email you@example.org
    inkcard -o card.bmp --email you@example.org --article random --language de
    inkcard daemon --email you@example.org --title-font fonts/Georgia.ttf
    inkcard serve --port 8080 --email you@example.org
`)
}
