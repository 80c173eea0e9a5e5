package components

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling JSON")
		return "{}"
	}
	return string(b)
}

// JSONLD renders structured data in a nonce-tagged script element.
// json.Marshal escapes <, > and &, so the payload cannot close the tag.
func JSONLD(nonce string, v interface{}) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<script type="application/ld+json" nonce="`+templ.EscapeString(nonce)+`">`+JSON(v)+`</script>`)
		return err
	})
}
