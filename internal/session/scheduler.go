package session

import "time"

// Timer é uma unidade de trabalho adiada que pode ser cancelada.
type Timer interface {
	// Stop retorna false se o timer já disparou ou já foi parado.
	Stop() bool
}

// Scheduler agenda callbacks. Em produção os callbacks rodam na goroutine do Hub.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Poster entrega uma função para a goroutine que é dona do estado.
type Poster interface {
	Post(fn func()) bool
}

type postingScheduler struct {
	poster Poster
}

// NewPostingScheduler cria um Scheduler cujos callbacks são repostados no Poster
// em vez de rodarem na goroutine do timer.
func NewPostingScheduler(p Poster) Scheduler {
	return postingScheduler{poster: p}
}

func (s postingScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		s.poster.Post(fn)
	})
}
