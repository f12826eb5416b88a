package model

// Listing é um anúncio de produto como sai da busca e como é gravado no CSV.
type Listing struct {
	Titulo string
	Preco  string // formato brasileiro, ex: "R$ 1.899,00"
	URL    string
	Loja   string
	Imagem string
}

// Columns é a ordem das colunas no CSV. Escrita e leitura usam a mesma lista.
var Columns = []string{"titulo", "preco", "url", "loja", "imagem"}

// Row devolve os campos na ordem de Columns.
func (l Listing) Row() []string {
	return []string{l.Titulo, l.Preco, l.URL, l.Loja, l.Imagem}
}

// FromRow monta um Listing a partir de uma linha na ordem de Columns.
func FromRow(row []string) Listing {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Listing{
		Titulo: get(0),
		Preco:  get(1),
		URL:    get(2),
		Loja:   get(3),
		Imagem: get(4),
	}
}
