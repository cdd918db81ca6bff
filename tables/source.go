package tables

import (
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
	"strings"
)

/*
Source is something able to open a stream of table data
*/
type Source interface {
	Open() (io.ReadCloser, error)
}

/*
File returns the source reading a local file, xz compressed files are
decompressed on the fly
*/
func File(path string) Source {
	var src Source = iokit.File(path)
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		src = Xz(src)
	}
	return src
}

type xzSource struct{ Source }

type xzReader struct {
	io.Reader
	io.Closer
}

/*
Xz wraps a source of xz compressed data
*/
func Xz(src Source) Source {
	return xzSource{src}
}

func (s xzSource) Open() (io.ReadCloser, error) {
	rd, err := s.Source.Open()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	x, err := xz.NewReader(rd)
	if err != nil {
		rd.Close()
		return nil, zorros.Wrapf(err, "failed to open xz stream: %v", err.Error())
	}
	return xzReader{x, rd}, nil
}

/*
StringSource is an in-memory source
*/
type StringSource string

func (s StringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}
