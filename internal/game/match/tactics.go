package match

import "fmt"

// Regras de táctica: os pontos são distribuídos entre Defesa, Meio-campo e Ataque.
const (
	TacticsPoints = 10

	MinDefense, MaxDefense   = 2, 5
	MinMidfield, MaxMidfield = 3, 6
	MinAttack, MaxAttack     = 1, 4
)

type Tactics struct {
	D int `json:"d"`
	M int `json:"m"`
	A int `json:"a"`
}

// Tipo para funções de validação
type tacticsValidator func(Tactics) error

var tacticsValidators = []tacticsValidator{
	validateSum,
	validateDefense,
	validateMidfield,
	validateAttack,
}

// ---- Funções de validação ----

func validateSum(t Tactics) error {
	if sum := t.D + t.M + t.A; sum != TacticsPoints {
		return fmt.Errorf("%w: points must add up to %d, got %d", ErrInvalidTactics, TacticsPoints, sum)
	}
	return nil
}

func validateDefense(t Tactics) error {
	return validateRange("D", t.D, MinDefense, MaxDefense)
}

func validateMidfield(t Tactics) error {
	return validateRange("M", t.M, MinMidfield, MaxMidfield)
}

func validateAttack(t Tactics) error {
	return validateRange("A", t.A, MinAttack, MaxAttack)
}

func validateRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s=%d (must be %d-%d)", ErrInvalidTactics, name, v, lo, hi)
	}
	return nil
}

// Validate retorna o primeiro erro encontrado, embrulhando ErrInvalidTactics.
func (t Tactics) Validate() error {
	for _, v := range tacticsValidators {
		if err := v(t); err != nil {
			return err
		}
	}
	return nil
}

// Committed indica se a táctica já foi bloqueada com valores válidos.
func (t Tactics) Committed() bool {
	return t.Validate() == nil
}
