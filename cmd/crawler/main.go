package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"anuncios/internal/config"
	"anuncios/internal/crawler"
	"anuncios/internal/images"
	"anuncios/internal/model"
	"anuncios/internal/observability"
	"anuncios/internal/repository"
)

// go run ./cmd/crawler
// go run ./cmd/crawler geladeira frost free --top=10
func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.RawCSV, "saida", cfg.RawCSV, "CSV com os anúncios na ordem da busca")
	flag.StringVar(&cfg.SortedCSV, "ordenado", cfg.SortedCSV, "CSV com os anúncios ordenados por preço")
	flag.StringVar(&cfg.ImagesDir, "imagens", cfg.ImagesDir, "Diretório das imagens")
	flag.IntVar(&cfg.Top, "top", cfg.Top, "Quantidade de anúncios no ranking final")
	flag.Parse()

	observability.Start(cfg.MetricsPort)

	term := config.Term(flag.Args())
	log.Printf("Execução %s iniciada", startRun())

	if err := run(context.Background(), cfg, term, os.Stdout); err != nil {
		log.Fatalf("Erro: %v", err)
	}
}

// startRun gera o id da execução e usa o início dele como prefixo de todas as
// linhas de log, inclusive as do SerpApi e das imagens.
func startRun() string {
	id := uuid.New().String()
	log.SetPrefix("[" + id[:8] + "] ")
	return id
}

func run(ctx context.Context, cfg *config.Config, term string, out io.Writer) error {
	source := crawler.NewSource(crawler.Options{
		APIKey:   cfg.SerpAPIKey,
		Endpoint: cfg.SerpAPIEndpoint,
		Client:   &http.Client{Timeout: cfg.APITimeout},
	})
	downloader := images.NewDownloader(&http.Client{Timeout: cfg.ImageTimeout}, cfg.ImagePause)
	rawRepo := &repository.CSVRepository{Path: cfg.RawCSV}
	sortedRepo := &repository.CSVRepository{Path: cfg.SortedCSV}

	fmt.Fprintf(out, "Buscando anúncios para: %q\n", term)
	listings := source.FetchListings(ctx, term)
	if len(listings) == 0 {
		fmt.Fprintln(out, "Nenhum anúncio encontrado.")
		return nil
	}

	if err := rawRepo.Save(listings); err != nil {
		return fmt.Errorf("salvar anúncios brutos: %w", err)
	}
	fmt.Fprintf(out, "Dados brutos salvos em '%s'.\n", cfg.RawCSV)

	rep, err := downloader.DownloadAll(ctx, listings, cfg.ImagesDir)
	if err != nil {
		return fmt.Errorf("baixar imagens: %w", err)
	}
	fmt.Fprintf(out, "Imagens baixadas na pasta '%s' (%d baixadas, %d sem URL, %d com falha).\n",
		cfg.ImagesDir, rep.Downloaded, rep.Placeholders, rep.Failed)

	sorted, err := rawRepo.ListSortedByPrice()
	if err != nil {
		return fmt.Errorf("ler '%s': %w", cfg.RawCSV, err)
	}
	if err := sortedRepo.Save(sorted); err != nil {
		return fmt.Errorf("salvar anúncios ordenados: %w", err)
	}
	fmt.Fprintf(out, "Dados ordenados salvos em '%s'.\n", cfg.SortedCSV)

	fmt.Fprintf(out, "\nTop %d produtos mais baratos:\n\n", cfg.Top)
	printTop(out, sorted, cfg.Top)
	return nil
}

// printTop imprime os n primeiros anúncios com título, preço e loja.
func printTop(out io.Writer, listings []model.Listing, n int) {
	if n > len(listings) {
		n = len(listings)
	}
	for i, l := range listings[:max(n, 0)] {
		fmt.Fprintf(out, "%02d. %s — %s (%s)\n", i+1, l.Titulo, l.Preco, l.Loja)
	}
}
