package command

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/dkg-node/dkg-plugins/pkg/errors"
	"github.com/dkg-node/dkg-plugins/pkg/i18n"
)

// bindRequest merges path params, query and JSON body into in, in that order.
// Only fields carrying an explicit uri or form tag take path or query values.
// Validation is left to Invoke so it runs once over the merged record.
func bindRequest(c *gin.Context, in any) error {
	if len(c.Params) > 0 {
		params := make(map[string][]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = []string{p.Value}
		}
		if err := binding.MapFormWithTag(in, declared(in, "uri", params), "uri"); err != nil {
			return errors.New("command.bindRequest.uri", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
		}
	}

	if query := c.Request.URL.Query(); len(query) > 0 {
		if err := binding.MapFormWithTag(in, declared(in, "form", query), "form"); err != nil {
			return errors.New("command.bindRequest.form", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
		}
	}

	if c.Request.Method == http.MethodGet || c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}

	if err := json.NewDecoder(c.Request.Body).Decode(in); err != nil && err != io.EOF {
		return errors.New("command.bindRequest.json", i18n.ERROR_INVALID_BODY, err).Code(http.StatusBadRequest)
	}
	return nil
}

// declared keeps the values whose key is named by a tag on one of in's fields.
// gin falls back to the Go field name for untagged fields, which would let
// REST callers set inputs the command never exposed there.
func declared(in any, tag string, values map[string][]string) map[string][]string {
	names := tagNames(reflect.TypeOf(in), tag)
	out := make(map[string][]string, len(values))
	for k, v := range values {
		if names[k] {
			out[k] = v
		}
	}
	return out
}

func tagNames(t reflect.Type, tag string) map[string]bool {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	names := make(map[string]bool)
	if t == nil || t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			for k := range tagNames(f.Type, tag) {
				names[k] = true
			}
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			names[name] = true
		}
	}
	return names
}
