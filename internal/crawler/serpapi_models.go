package crawler

// SerpAPIResponse é o recorte da resposta do SerpApi (engine google, tbm=shop)
// que interessa ao crawler.
type SerpAPIResponse struct {
	ShoppingResults []ShoppingResult `json:"shopping_results"`
}

// ShoppingResult guarda os campos alternativos que o SerpApi usa conforme a
// versão da resposta. Preços podem vir como texto ou número.
type ShoppingResult struct {
	Title          string `json:"title"`
	Price          any    `json:"price"`
	ExtractedPrice any    `json:"extracted_price"`
	ProductLink    string `json:"product_link"`
	Link           string `json:"link"`
	Source         string `json:"source"`
	Merchant       string `json:"merchant"`
	Thumbnail      string `json:"thumbnail"`
	Image          string `json:"image"`
}
