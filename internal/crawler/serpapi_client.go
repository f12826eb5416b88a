package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"anuncios/internal/model"
	"anuncios/internal/observability"
)

const SerpAPIEndpoint = "https://serpapi.com/search.json"

// Options configura a origem dos anúncios. APIKey vazia faz a Source usar
// sempre os dados de exemplo.
type Options struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
	Sample   func() []model.Listing
}

type Source struct {
	apiKey   string
	endpoint string
	client   *http.Client
	sample   func() []model.Listing
}

func NewSource(opts Options) *Source {
	s := &Source{
		apiKey:   strings.TrimSpace(opts.APIKey),
		endpoint: opts.Endpoint,
		client:   opts.Client,
		sample:   opts.Sample,
	}
	if s.endpoint == "" {
		s.endpoint = SerpAPIEndpoint
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: 30 * time.Second}
	}
	if s.sample == nil {
		s.sample = SampleListings
	}
	return s
}

// FetchListings busca anúncios para term. Sem chave, ou em qualquer falha da
// API (inclusive resposta sem resultados), devolve os dados de exemplo.
// Nunca mistura resultados da API com a amostra.
func (s *Source) FetchListings(ctx context.Context, term string) []model.Listing {
	if s.apiKey == "" {
		log.Println("[SerpApi] SERPAPI_KEY ausente. Utilizando dados de exemplo.")
		return s.fallback()
	}

	listings, err := s.Search(ctx, term)
	if err != nil {
		if IsFetchError(err) {
			log.Printf("[SerpApi] Erro ao acessar SerpApi: %v. Utilizando dados de exemplo.", err)
		} else {
			log.Printf("[SerpApi] Erro inesperado ao montar a busca: %v. Utilizando dados de exemplo.", err)
		}
		return s.fallback()
	}

	observability.ListingsTotal.WithLabelValues("api").Add(float64(len(listings)))
	return listings
}

// Search faz uma única chamada ao SerpApi, sem fallback. Falhas de rede,
// status, JSON inválido e lista vazia voltam como *FetchError.
func (s *Source) Search(ctx context.Context, term string) ([]model.Listing, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("serpapi: api key is required")
	}

	params := url.Values{}
	params.Set("q", term)
	params.Set("tbm", "shop")
	params.Set("gl", "br")
	params.Set("hl", "pt")
	params.Set("api_key", s.apiKey)

	endpoint, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid serpapi endpoint %q: %w", s.endpoint, err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", s.endpoint, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	log.Printf("[SerpApi] Buscando %q em %s", term, s.endpoint)

	body, err := Do(s.client, req)
	if err != nil {
		return nil, redact(err, s.apiKey)
	}

	var result SerpAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &FetchError{Reason: ReasonDecode, URL: s.endpoint, Err: err}
	}

	listings := make([]model.Listing, 0, len(result.ShoppingResults))
	for _, r := range result.ShoppingResults {
		listings = append(listings, ResultToListing(r))
	}
	if len(listings) == 0 {
		return nil, &FetchError{Reason: ReasonEmpty, URL: s.endpoint}
	}
	return listings, nil
}

func (s *Source) fallback() []model.Listing {
	listings := s.sample()
	observability.ListingsTotal.WithLabelValues("amostra").Add(float64(len(listings)))
	return listings
}

// redact tira a chave da URL guardada no erro para que ela não vá parar no log.
func redact(err error, key string) error {
	if fe, ok := err.(*FetchError); ok {
		cp := *fe
		cp.URL = strings.ReplaceAll(cp.URL, url.QueryEscape(key), "***")
		if cp.Err != nil {
			cp.Err = fmt.Errorf("%s", strings.ReplaceAll(cp.Err.Error(), url.QueryEscape(key), "***"))
		}
		return &cp
	}
	return err
}
