package crawler

import (
	"math"
	"strconv"
	"strings"

	"anuncios/internal/model"
)

// ResultToListing converte um resultado do SerpApi no formato do CSV.
// O título é mantido como veio; campos ausentes viram string vazia.
func ResultToListing(r ShoppingResult) model.Listing {
	return model.Listing{
		Titulo: r.Title,
		Preco:  priceText(r.Price, r.ExtractedPrice),
		URL:    firstNonEmpty(r.ProductLink, r.Link),
		Loja:   firstNonEmpty(r.Source, r.Merchant),
		Imagem: firstNonEmpty(r.Thumbnail, r.Image),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// priceText usa o primeiro preço "verdadeiro": texto não vazio ou número
// diferente de zero. Números são formatados como moeda brasileira.
func priceText(vals ...any) string {
	for _, v := range vals {
		switch p := v.(type) {
		case string:
			if p != "" {
				return p
			}
		case float64:
			if p != 0 {
				return FormatBRL(p)
			}
		}
	}
	return ""
}

// FormatBRL formata v como "R$ 1.234,56".
func FormatBRL(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var sb strings.Builder
	sb.WriteString("R$ ")
	if v < 0 && s != "0.00" {
		sb.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(c)
	}
	sb.WriteByte(',')
	sb.WriteString(frac)
	return sb.String()
}
