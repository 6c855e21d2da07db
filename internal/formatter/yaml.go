package formatter

import (
	"io"

	"github.com/goccy/go-yaml"

	"delicious/internal/delicious"
)

type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, collection *delicious.Collection) error {
	encoder := yaml.NewEncoder(w,
		yaml.UseSingleQuote(true),
		yaml.Indent(2),
	)
	defer encoder.Close()

	return encoder.Encode(collection)
}
