package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultTerm = "geladeira"

type Config struct {
	SerpAPIKey      string
	SerpAPIEndpoint string
	MetricsPort     string
	RawCSV          string
	SortedCSV       string
	ImagesDir       string
	Top             int
	APITimeout      time.Duration
	ImageTimeout    time.Duration
	ImagePause      time.Duration
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		SerpAPIKey:      strings.TrimSpace(os.Getenv("SERPAPI_KEY")),
		SerpAPIEndpoint: os.Getenv("SERPAPI_ENDPOINT"), // vazio = endpoint oficial
		MetricsPort:     os.Getenv("METRICS_PORT"), // vazio = sem endpoint /metrics
		RawCSV:          getEnv("ANUNCIOS_CSV", "anuncios.csv"),
		SortedCSV:       getEnv("ANUNCIOS_ORDENADOS_CSV", "anuncios_ordenados.csv"),
		ImagesDir:       getEnv("IMAGENS_DIR", "imagens"),
		Top:             20,
		APITimeout:      30 * time.Second,
		ImageTimeout:    15 * time.Second,
		ImagePause:      50 * time.Millisecond,
	}
}

// Term junta os argumentos posicionais no termo de busca.
func Term(args []string) string {
	if t := strings.TrimSpace(strings.Join(args, " ")); t != "" {
		return t
	}
	return DefaultTerm
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
