package model

import "golang.org/x/xerrors"

// ErrSingular is returned when a model can't be fitted because of singular system
var ErrSingular = xerrors.New("singular matrix")
