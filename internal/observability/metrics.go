package observability

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ListingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anuncios_obtidos_total",
			Help: "Total de anúncios obtidos, por origem (api ou amostra)",
		},
		[]string{"origem"},
	)

	ImagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imagens_total",
			Help: "Total de imagens processadas, por resultado",
		},
		[]string{"resultado"},
	)

	RowsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "csv_linhas_gravadas_total",
			Help: "Total de linhas gravadas em CSV",
		},
	)
)

// Start registra as métricas e, se houver porta, expõe /metrics.
// Deve ser chamado uma única vez por processo.
func Start(port string) {
	prometheus.MustRegister(ListingsTotal, ImagesTotal, RowsWritten)
	if port == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Printf("[Metrics] servidor encerrado: %v", err)
		}
	}()
}
