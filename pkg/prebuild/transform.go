package prebuild

import (
	"bytes"

	"github.com/saminightshift/redwood/internal/errors"
	"github.com/saminightshift/redwood/internal/jsx"
)

// TransformJSX rewrites every JSX element tree in source into nested
// React.createElement calls, leaving all other code untouched. Input
// without JSX is returned unchanged.
func TransformJSX(source []byte) ([]byte, error) {
	file, err := jsx.Parse(source)
	if err != nil {
		return nil, errors.New("E101").Wrap(err)
	}
	if !file.HasJSX() {
		return source, nil
	}

	var b bytes.Buffer
	last := uint(0)
	for _, span := range file.Elements {
		b.Write(source[last:span.Start])
		b.WriteString(jsx.Print(span.Element))
		last = span.End
	}
	b.Write(source[last:])

	return b.Bytes(), nil
}
