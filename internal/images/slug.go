package images

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxSlugLen   = 60
	defaultLabel = "imagem"
)

var disallowed = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Slug devolve o nome do arquivo da imagem do anúncio na posição index
// (começando em 1). Títulos vazios viram "produto_<index>".
func Slug(title string, index int) string {
	if title == "" {
		title = "produto_" + strconv.Itoa(index)
	}
	base := strings.Trim(disallowed.ReplaceAllString(title, "_"), "_")
	if base == "" {
		base = defaultLabel
	}
	if len(base) > maxSlugLen {
		base = base[:maxSlugLen]
	}
	return base + ".jpg"
}
