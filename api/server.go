package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/matt-g-everett/countx/stream"
)

// Api exposes the widget operations surface over HTTP.
type Api struct {
	streamer *stream.Streamer
}

// NewApi creates an instance of an Api.
func NewApi(streamer *stream.Streamer) *Api {
	a := new(Api)
	a.streamer = streamer
	return a
}

// WidgetStatus is one entry of the status listing.
type WidgetStatus struct {
	ID      string `json:"id"`
	Running bool   `json:"running"`
	Text    string `json:"text"`
}

// Handler builds the HTTP routes: GET /widgets lists status, POST
// /widgets/{id}/{start|stop|restart|toggle|reset} drives an instance.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/widgets", a.handleList)
	mux.HandleFunc("/widgets/", a.handleOp)
	return mux
}

// Serve listens on addr until the process exits.
func (a *Api) Serve(addr string) {
	log.Println("Listening...")
	http.ListenAndServe(addr, a.Handler())
}

func (a *Api) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	widgets := a.streamer.Widgets()
	statuses := make([]WidgetStatus, 0, len(widgets))
	for _, widget := range widgets {
		statuses = append(statuses, WidgetStatus{
			ID:      widget.ID,
			Running: widget.Running(),
			Text:    widget.Text(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statuses)
}

func (a *Api) handleOp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/widgets/"), "/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	id, op := parts[0], parts[1]

	widget, ok := a.streamer.Widget(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch op {
	case "start":
		widget.Start()
	case "stop":
		widget.Stop()
	case "restart":
		widget.Restart()
	case "toggle":
		widget.Toggle()
	case "reset":
		widget.Reset()
	default:
		http.NotFound(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
