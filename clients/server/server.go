// Package server provides an HTTP preview of the summary card, for checking
// layout without hardware attached.
package server

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/seliot/inkcard/pkg/card"
	"github.com/seliot/inkcard/pkg/generator"
	"github.com/seliot/inkcard/pkg/wiki"
)

// RunServe parses serve-mode flags and blocks serving card previews.
func RunServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	var (
		port      int
		email     string
		language  string
		titleFont string
		bodyFont  string
	)
	fs.IntVar(&port, "port", 8080, "HTTP port")
	fs.StringVar(&email, "email", "", "Contact email for the Wikimedia user agent (required)")
	fs.StringVar(&language, "language", "en", "Wikipedia language code")
	fs.StringVar(&titleFont, "title-font", "", "Path to the title font (optional)")
	fs.StringVar(&bodyFont, "body-font", "", "Path to the body font (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("--email is required for serve mode")
	}

	composer, err := card.NewComposer(titleFont, bodyFont)
	if err != nil {
		return err
	}

	s := &server{
		composer: composer,
		wiki:     wiki.NewClient(email),
		language: language,
		log:      slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/card.png", s.handleCard)
	mux.HandleFunc("/", s.handleIndex)

	addr := fmt.Sprintf(":%d", port)
	s.log.Info("serving card previews", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

type server struct {
	composer *card.Composer
	wiki     *wiki.Client
	language string
	log      *slog.Logger
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html>
<title>inkcard preview</title>
<p><a href="/card.png?article=tfa">today's featured article</a> ·
<a href="/card.png?article=random">random article</a></p>
<img src="/card.png?article=tfa" width="600" height="448" style="border:1px solid #ccc">
`)
}

// handleCard fetches an article, composes the card, and serves it as PNG.
func (s *server) handleCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = s.language
	}

	var (
		article wiki.Article
		err     error
	)
	switch kind := r.URL.Query().Get("article"); kind {
	case "", "tfa":
		article, err = s.wiki.Featured(ctx, lang, r.URL.Query().Get("date"))
	case "random":
		article, err = s.wiki.Random(ctx, lang)
	default:
		http.Error(w, fmt.Sprintf("unknown article kind %q", kind), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.log.Error("fetch article", "err", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	in := card.Input{
		Title:       article.Title,
		Description: article.Description,
		Extract:     article.Extract,
		TargetURL:   article.URL,
	}
	if article.ThumbnailURL != "" {
		thumb, err := s.wiki.Image(ctx, article.ThumbnailURL)
		if err != nil {
			s.log.Error("fetch thumbnail", "err", err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		in.Thumbnail = thumb
	}

	img, err := s.composer.Compose(in)
	if err != nil {
		s.log.Error("compose card", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := generator.GenerateTo(w, ".png", img); err != nil {
		s.log.Error("encode card", "err", err)
	}
}
