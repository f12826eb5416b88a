package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"anuncios/internal/model"
	"anuncios/internal/observability"
)

// ErrEmptyInput indica uma tentativa de gravar zero anúncios. O arquivo de
// destino não é tocado.
var ErrEmptyInput = errors.New("a lista de anúncios está vazia; nada a salvar")

var priceNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

type CSVRepository struct {
	Path string
}

// Save grava os anúncios com cabeçalho, em UTF-8, substituindo o arquivo de
// forma atômica.
func (r *CSVRepository) Save(listings []model.Listing) error {
	if len(listings) == 0 {
		return ErrEmptyInput
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.Columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, l := range listings {
		if err := w.Write(normalizeNewlines(l.Row())); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}

	if dir := filepath.Dir(r.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := atomic.WriteFile(r.Path, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.Path, err)
	}
	// atomic.WriteFile não ajusta a permissão de arquivos novos
	if err := os.Chmod(r.Path, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", r.Path, err)
	}

	observability.RowsWritten.Add(float64(len(listings)))
	return nil
}

// normalizeNewlines troca "\r\n" por "\n" dentro dos campos. O leitor de CSV
// faz essa troca ao ler, então gravar já normalizado mantém escrita e leitura
// iguais.
func normalizeNewlines(row []string) []string {
	for i, f := range row {
		row[i] = strings.ReplaceAll(f, "\r\n", "\n")
	}
	return row
}

// List lê todos os anúncios na ordem do arquivo.
func (r *CSVRepository) List() ([]model.Listing, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.Path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: arquivo sem cabeçalho", r.Path)
	}
	if !slices.Equal(rows[0], model.Columns) {
		return nil, fmt.Errorf("%s: cabeçalho inesperado %v (esperado %v)", r.Path, rows[0], model.Columns)
	}

	list := make([]model.Listing, 0, len(rows)-1)
	for _, row := range rows[1:] {
		list = append(list, model.FromRow(row))
	}
	return list, nil
}

// ListSortedByPrice lê o arquivo e devolve os anúncios do mais barato para o
// mais caro. Empates mantêm a ordem original; preços sem número vão para o fim.
func (r *CSVRepository) ListSortedByPrice() ([]model.Listing, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}

	keys := make([]float64, len(list))
	for i, l := range list {
		keys[i] = PriceKey(l.Preco)
	}
	idx := make([]int, len(list))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[a]] < keys[idx[b]]
	})

	sorted := make([]model.Listing, len(list))
	for i, j := range idx {
		sorted[i] = list[j]
	}
	return sorted, nil
}

// PriceKey converte um preço no formato brasileiro ("R$ 1.899,00") em número.
// Sem número no texto, devolve +Inf.
func PriceKey(preco string) float64 {
	text := strings.ReplaceAll(preco, "R$", "")
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ".", "")
	text = strings.ReplaceAll(text, ",", ".")

	m := priceNumber.FindString(text)
	if m == "" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}
