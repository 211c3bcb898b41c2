package hroute

import "net/http"

// Response is the write side of a Context. Rw may be handed to
// http.NewResponseController.
type Response interface {
	Header(string) string
	Rw() http.ResponseWriter
	SetHeader(string, string)
}

type response struct {
	rw http.ResponseWriter
}

func (r *response) Header(key string) string {
	return r.rw.Header().Get(key)
}

func (r *response) SetHeader(key, value string) {
	r.rw.Header().Set(key, value)
}

func (r *response) Rw() http.ResponseWriter {
	return r.rw
}

// responseWriter remembers whether anything was sent, so the default error
// handler does not write over a response.
type responseWriter struct {
	http.ResponseWriter
	written bool
}

func (w *responseWriter) WriteHeader(status int) {
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the original writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
