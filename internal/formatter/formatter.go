package formatter

import (
	"io"

	"delicious/internal/delicious"
)

type Formatter interface {
	Format(w io.Writer, collection *delicious.Collection) error
}
