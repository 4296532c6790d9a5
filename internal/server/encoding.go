package server

import (
	"context"
	"errors"
	"net/http"

	goahttp "goa.design/goa/v3/http"
	goa "goa.design/goa/v3/pkg"
)

// errorBody is the JSON shape goa servers use for service errors
type errorBody struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Message   string `json:"message"`
	Temporary bool   `json:"temporary"`
	Timeout   bool   `json:"timeout"`
	Fault     bool   `json:"fault"`
}

// encodeResponse writes v with the encoder negotiated from the request
func encodeResponse(ctx context.Context, w http.ResponseWriter, status int, v any) error {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	return enc.Encode(v)
}

// encodeError writes err as a goa error body with status
func encodeError(ctx context.Context, w http.ResponseWriter, status int, err error) error {
	var serr *goa.ServiceError
	if !errors.As(err, &serr) {
		serr = goa.Fault("%s", err.Error())
	}
	return encodeResponse(ctx, w, status, &errorBody{
		Name:      serr.Name,
		ID:        serr.ID,
		Message:   serr.Message,
		Temporary: serr.Temporary,
		Timeout:   serr.Timeout,
		Fault:     serr.Fault,
	})
}
