package services

import (
	"errors"
	"math/rand/v2"
	"strconv"
)

// ErrNumerosEpuises is returned when generation keeps colliding. A fully
// populated 000001..999999 range can never yield a free number; the attempt
// cap turns that boundary into an error instead of an endless loop.
var ErrNumerosEpuises = errors.New("numeros BC epuises")

const maxTirages = 1 << 20

// NumeroService assigns 6-digit order numbers to new ventes.
type NumeroService struct {
	intN func(n int) int
}

func NewNumeroService() *NumeroService {
	return &NumeroService{intN: rand.IntN}
}

// Generer draws random numbers in 100000..999999 until one is absent from
// existants. The check runs against the caller-supplied snapshot only;
// concurrent creations can still race (no storage constraint — kept faithful
// to the original behavior).
func (s *NumeroService) Generer(existants map[string]bool) (string, error) {
	for i := 0; i < maxTirages; i++ {
		n := 100000 + s.intN(900000)
		numero := strconv.Itoa(n)
		if !existants[numero] {
			return numero, nil
		}
	}
	return "", ErrNumerosEpuises
}
