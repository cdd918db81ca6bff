package tables

import (
	"go-ml.dev/pkg/zorros/zorros"
	"golang.org/x/xerrors"
)

// ErrNoColumn is returned when a table does not have the requested column
var ErrNoColumn = xerrors.New("no such column")

func errorf(f string, a ...interface{}) error {
	return zorros.Errorf(f, a...)
}

func noColumn(name string) error {
	return xerrors.Errorf("`%v`: %w", name, ErrNoColumn)
}
