package repository

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anuncios/internal/model"
)

func sampleFive() []model.Listing {
	return []model.Listing{
		{Titulo: "Consul 340L", Preco: "R$ 1.899,00", URL: "https://l/2", Loja: "Loja 2", Imagem: "https://i/2"},
		{Titulo: "Brastemp 375L", Preco: "R$ 2.199,00", URL: "https://l/1", Loja: "Loja 1", Imagem: "https://i/1"},
		{Titulo: "Electrolux 454L", Preco: "R$ 3.299,00", URL: "https://l/3", Loja: "Loja 3", Imagem: "https://i/3"},
		{Titulo: "Samsung 501L", Preco: "R$ 4.499,00", URL: "https://l/4", Loja: "Loja 4", Imagem: "https://i/4"},
		{Titulo: "LG 437L", Preco: "R$ 3.999,00", URL: "https://l/5", Loja: "Loja 5", Imagem: "https://i/5"},
	}
}

func TestPriceKey(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"R$ 1.899,00", 1899},
		{"R$ 25.000,00", 25000},
		{"R$ 2.599,90", 2599.9},
		{"R$ 1.234.567,89", 1234567.89},
		{"R$ 99", 99},
		{"a partir de R$ 1.299,50 à vista", 1299.5},
		{"1899,00", 1899},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, PriceKey(tt.in), 1e-9, "PriceKey(%q)", tt.in)
	}
}

func TestPriceKey_NoDigitsIsInfinite(t *testing.T) {
	for _, in := range []string{"", "consultar", "R$", "  ,  "} {
		assert.True(t, math.IsInf(PriceKey(in), 1), "PriceKey(%q)", in)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	repo := &CSVRepository{Path: filepath.Join(t.TempDir(), "anuncios.csv")}
	want := append(sampleFive(),
		model.Listing{Titulo: `Fogão "Atlas", 4 bocas`, Preco: "consultar", Loja: "Açougue & Cia"},
		model.Listing{Titulo: "Micro-ondas\nduas linhas", Preco: "", URL: "https://l/ç"},
	)

	require.NoError(t, repo.Save(want))
	got, err := repo.List()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	t.Run("crlf inside fields", func(t *testing.T) {
		in := []model.Listing{{Titulo: "linha1\r\nlinha2", Loja: "Loja\r\nCentro", Preco: "R$ 1,00"}}
		require.NoError(t, repo.Save(in))

		first, err := repo.List()
		require.NoError(t, err)
		assert.Equal(t, []model.Listing{{Titulo: "linha1\nlinha2", Loja: "Loja\nCentro", Preco: "R$ 1,00"}}, first)

		require.NoError(t, repo.Save(first))
		second, err := repo.List()
		require.NoError(t, err)
		assert.Equal(t, first, second)

		raw, err := os.ReadFile(repo.Path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "linha1\r\n")
	})
}

func TestSave_WritesHeaderAndUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anuncios.csv")
	repo := &CSVRepository{Path: path}

	require.NoError(t, repo.Save([]model.Listing{{Titulo: "Geladeira Açaí", Preco: "R$ 10,00", Loja: "São Paulo"}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "titulo,preco,url,loja,imagem\nGeladeira Açaí,\"R$ 10,00\",,São Paulo,\n", string(b))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm())
}

func TestSave_EmptyInput(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is not created", func(t *testing.T) {
		path := filepath.Join(dir, "novo.csv")
		err := (&CSVRepository{Path: path}).Save(nil)

		require.ErrorIs(t, err, ErrEmptyInput)
		_, statErr := os.Stat(path)
		assert.ErrorIs(t, statErr, fs.ErrNotExist)
	})

	t.Run("existing file is untouched", func(t *testing.T) {
		path := filepath.Join(dir, "existente.csv")
		repo := &CSVRepository{Path: path}
		require.NoError(t, repo.Save(sampleFive()))
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		require.ErrorIs(t, repo.Save([]model.Listing{}), ErrEmptyInput)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saida", "anuncios.csv")

	require.NoError(t, (&CSVRepository{Path: path}).Save(sampleFive()))
	assert.FileExists(t, path)
}

func TestListSortedByPrice_AscendingOrder(t *testing.T) {
	repo := &CSVRepository{Path: filepath.Join(t.TempDir(), "anuncios.csv")}
	require.NoError(t, repo.Save(sampleFive()))

	got, err := repo.ListSortedByPrice()
	require.NoError(t, err)

	var titles []string
	for _, l := range got {
		titles = append(titles, l.Titulo)
	}
	assert.Equal(t, []string{"Consul 340L", "Brastemp 375L", "Electrolux 454L", "LG 437L", "Samsung 501L"}, titles)
}

func TestListSortedByPrice_PricelessLastAndStable(t *testing.T) {
	repo := &CSVRepository{Path: filepath.Join(t.TempDir(), "anuncios.csv")}
	require.NoError(t, repo.Save([]model.Listing{
		{Titulo: "sem preço 1", Preco: ""},
		{Titulo: "caro", Preco: "R$ 5.000,00"},
		{Titulo: "sem preço 2", Preco: "consultar"},
		{Titulo: "barato A", Preco: "R$ 100,00"},
		{Titulo: "barato B", Preco: "R$ 100,00"},
		{Titulo: "sem preço 3", Preco: "indisponível"},
	}))

	got, err := repo.ListSortedByPrice()
	require.NoError(t, err)

	var titles []string
	for _, l := range got {
		titles = append(titles, l.Titulo)
	}
	assert.Equal(t, []string{"barato A", "barato B", "caro", "sem preço 1", "sem preço 2", "sem preço 3"}, titles)
}

func TestListSortedByPrice_MissingFile(t *testing.T) {
	repo := &CSVRepository{Path: filepath.Join(t.TempDir(), "nao-existe.csv")}

	_, err := repo.ListSortedByPrice()
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestList_RejectsUnexpectedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outro.csv")
	require.NoError(t, os.WriteFile(path, []byte("title,price\nx,1\n"), 0o644))

	_, err := (&CSVRepository{Path: path}).List()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cabeçalho inesperado")
}

func TestList_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vazio.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := (&CSVRepository{Path: path}).List()
	assert.Error(t, err)
}
