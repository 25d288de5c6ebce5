// Package dice gera as rolagens do servidor. Nenhum valor de dado vem do cliente.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Sides é o número de faces do dado usado nas confrontações.
const Sides = 6

// Roller é a fonte de rolagens usada pelo motor de confrontação.
type Roller interface {
	// D6 retorna um valor uniforme em [1, 6].
	D6() int
}

// PCG é o Roller de produção. Não é seguro para uso concorrente:
// o servidor só rola dados dentro da goroutine do Hub.
type PCG struct {
	rng *rand.Rand
}

// NewPCG cria um Roller semeado com crypto/rand.
func NewPCG() (*PCG, error) {
	s1, err := newSeed()
	if err != nil {
		return nil, err
	}
	s2, err := newSeed()
	if err != nil {
		return nil, err
	}
	return NewSeededPCG(s1, s2), nil
}

// NewSeededPCG cria um Roller determinístico, útil para reproduzir partidas.
func NewSeededPCG(seed1, seed2 uint64) *PCG {
	return &PCG{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (p *PCG) D6() int {
	return p.rng.IntN(Sides) + 1
}

func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Sequence devolve faces pré-definidas em ordem, recomeçando do início
// quando chega ao fim. Usado por testes e pelo bot de roteiro.
type Sequence struct {
	faces []int
	next  int
}

// NewSequence cria uma Sequence. Faces fora de [1, 6] são ajustadas para o limite mais próximo.
func NewSequence(faces ...int) *Sequence {
	clamped := make([]int, len(faces))
	for i, f := range faces {
		clamped[i] = min(max(f, 1), Sides)
	}
	return &Sequence{faces: clamped}
}

func (s *Sequence) D6() int {
	if len(s.faces) == 0 {
		return 1
	}
	f := s.faces[s.next%len(s.faces)]
	s.next++
	return f
}

// Remaining retorna quantas faces ainda não foram consumidas na volta atual.
func (s *Sequence) Remaining() int {
	if len(s.faces) == 0 {
		return 0
	}
	return len(s.faces) - s.next%len(s.faces)
}
