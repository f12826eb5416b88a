package images

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"anuncios/internal/crawler"
	"anuncios/internal/model"
	"anuncios/internal/observability"
)

const (
	DefaultTimeout = 15 * time.Second
	DefaultPause   = 50 * time.Millisecond
)

// Report resume um lote: imagens baixadas, placeholders de anúncios sem URL
// e placeholders gravados após falha no download.
type Report struct {
	Downloaded   int
	Placeholders int
	Failed       int
}

type Downloader struct {
	client *http.Client
	pause  time.Duration
	sleep  func(time.Duration)
}

// NewDownloader usa client (ou um com timeout de 15s, se nil) e pausa pause
// depois de cada download bem-sucedido.
func NewDownloader(client *http.Client, pause time.Duration) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Downloader{client: client, pause: pause, sleep: time.Sleep}
}

// DownloadAll grava uma imagem por anúncio em dir, na ordem recebida. Falha em
// uma imagem nunca interrompe o lote: o arquivo fica vazio. Anúncios que geram
// o mesmo nome sobrescrevem um ao outro (o último vence).
func (d *Downloader) DownloadAll(ctx context.Context, listings []model.Listing, dir string) (Report, error) {
	var rep Report
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rep, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	for i, l := range listings {
		path := filepath.Join(dir, Slug(l.Titulo, i+1))

		if l.Imagem == "" {
			if err := writePlaceholder(path); err != nil {
				return rep, err
			}
			rep.Placeholders++
			observability.ImagesTotal.WithLabelValues("sem_url").Inc()
			continue
		}

		body, err := crawler.Get(ctx, d.client, l.Imagem)
		if err != nil {
			var fe *crawler.FetchError
			if errors.As(err, &fe) {
				log.Printf("[Imagens] Falha (%s) ao baixar %s: %v", fe.Reason, l.Imagem, err)
			} else {
				log.Printf("[Imagens] URL inválida %q: %v", l.Imagem, err)
			}
			if err := writePlaceholder(path); err != nil {
				return rep, err
			}
			rep.Failed++
			observability.ImagesTotal.WithLabelValues("falha").Inc()
			continue
		}

		if err := os.WriteFile(path, body, 0o644); err != nil {
			return rep, fmt.Errorf("failed to write %s: %w", path, err)
		}
		rep.Downloaded++
		observability.ImagesTotal.WithLabelValues("baixada").Inc()

		// Pequena pausa para não sobrecarregar a rede
		d.sleep(d.pause)
	}

	return rep, nil
}

func writePlaceholder(path string) error {
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf("failed to write placeholder %s: %w", path, err)
	}
	return nil
}
