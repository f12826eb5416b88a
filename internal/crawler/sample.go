package crawler

import "anuncios/internal/model"

var sampleListings = []model.Listing{
	{
		Titulo: "Geladeira Consul Frost Free 340 litros",
		Preco:  "R$ 1.899,00",
		URL:    "https://www.lojaexemplo.com/produto2",
		Loja:   "Loja Exemplo 2",
		Imagem: "https://via.placeholder.com/150?text=Produto2",
	},
	{
		Titulo: "Geladeira Brastemp Frost Free Duplex 375 litros",
		Preco:  "R$ 2.199,00",
		URL:    "https://www.lojaexemplo.com/produto1",
		Loja:   "Loja Exemplo 1",
		Imagem: "https://via.placeholder.com/150?text=Produto1",
	},
	{
		Titulo: "Geladeira Electrolux Frost Free Inverse 454 litros",
		Preco:  "R$ 3.299,00",
		URL:    "https://www.lojaexemplo.com/produto3",
		Loja:   "Loja Exemplo 3",
		Imagem: "https://via.placeholder.com/150?text=Produto3",
	},
	{
		Titulo: "Geladeira Samsung Side by Side 501 litros",
		Preco:  "R$ 4.499,00",
		URL:    "https://www.lojaexemplo.com/produto4",
		Loja:   "Loja Exemplo 4",
		Imagem: "https://via.placeholder.com/150?text=Produto4",
	},
	{
		Titulo: "Geladeira LG Smart Inverter 437 litros",
		Preco:  "R$ 3.999,00",
		URL:    "https://www.lojaexemplo.com/produto5",
		Loja:   "Loja Exemplo 5",
		Imagem: "https://via.placeholder.com/150?text=Produto5",
	},
}

const sampleRepeat = 5

// SampleListings devolve os anúncios de exemplo usados quando a API não está
// disponível: os cinco modelos repetidos cinco vezes, sempre numa slice nova.
func SampleListings() []model.Listing {
	out := make([]model.Listing, 0, len(sampleListings)*sampleRepeat)
	for i := 0; i < sampleRepeat; i++ {
		out = append(out, sampleListings...)
	}
	return out
}
