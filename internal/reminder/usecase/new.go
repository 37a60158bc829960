package usecase

import (
	"time"

	"remindme/internal/interpreter"
	"remindme/internal/reminder/repository"
	pkgLog "remindme/pkg/log"
)

type implUseCase struct {
	l      pkgLog.Logger
	repo   repository.Repository
	interp *interpreter.Interpreter
	loc    *time.Location
}

// New creates a new reminder UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository, interp *interpreter.Interpreter, loc *time.Location) *implUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &implUseCase{
		l:      l,
		repo:   repo,
		interp: interp,
		loc:    loc,
	}
}
