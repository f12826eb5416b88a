package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Reason classifica por que uma chamada de rede não produziu resultado.
type Reason int

const (
	ReasonTimeout Reason = iota + 1
	ReasonTransport
	ReasonStatus
	ReasonDecode
	ReasonEmpty
)

func (r Reason) String() string {
	switch r {
	case ReasonTimeout:
		return "timeout"
	case ReasonTransport:
		return "transporte"
	case ReasonStatus:
		return "status"
	case ReasonDecode:
		return "decodificacao"
	case ReasonEmpty:
		return "vazio"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// FetchError é a falha esperada de uma chamada de rede. Qualquer outro erro
// devolvido pelo pacote indica uso incorreto, não um problema do ambiente.
type FetchError struct {
	Reason Reason
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Reason == ReasonStatus:
		return fmt.Sprintf("%s: status %d", e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError informa se err (ou algo que ele embrulha) é um *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

func transportError(url string, err error) *FetchError {
	reason := ReasonTransport
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		reason = ReasonTimeout
	}
	return &FetchError{Reason: reason, URL: url, Err: err}
}

// Do executa req uma única vez e devolve o corpo quando o status é 2xx.
// Falhas de rede, timeout e status fora de 2xx viram *FetchError.
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	url := req.URL.String()
	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Reason: ReasonStatus, URL: url, Status: resp.StatusCode}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(url, err)
	}
	return b, nil
}

// Get faz um GET simples com o client informado.
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	return Do(client, req)
}
