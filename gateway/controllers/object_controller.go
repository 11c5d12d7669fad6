package controllers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	logrus "github.com/sirupsen/logrus"

	"github.com/yousif123412321/pod-protocol/core"
	"github.com/yousif123412321/pod-protocol/gateway/services"
)

// ObjectController provides HTTP handlers for the CAS gateway described
// in spec §6: PUT returns the hex-encoded key, GET returns raw bytes,
// DELETE is idempotent.
type ObjectController struct {
	svc    *services.ObjectService
	logger *logrus.Logger
}

// NewObjectController wires an ObjectController around svc.
func NewObjectController(svc *services.ObjectService, logger *logrus.Logger) *ObjectController {
	return &ObjectController{svc: svc, logger: logger}
}

func (c *ObjectController) Put(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 64<<20))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	key, err := c.svc.Put(r.Context(), data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(key.Hex()))
}

func (c *ObjectController) Get(w http.ResponseWriter, r *http.Request) {
	keyHex := mux.Vars(r)["key"]
	key, err := core.DigestFromHex(keyHex)
	if err != nil {
		http.Error(w, "malformed key", http.StatusBadRequest)
		return
	}
	data, err := c.svc.Get(r.Context(), key)
	if err != nil {
		if _, ok := err.(*core.NotFoundError); ok {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

func (c *ObjectController) Delete(w http.ResponseWriter, r *http.Request) {
	keyHex := mux.Vars(r)["key"]
	key, err := core.DigestFromHex(keyHex)
	if err != nil {
		http.Error(w, "malformed key", http.StatusBadRequest)
		return
	}
	c.svc.Delete(r.Context(), key, c.logger)
	w.WriteHeader(http.StatusNoContent)
}
