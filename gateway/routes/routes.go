package routes

import (
	"github.com/gorilla/mux"

	"github.com/yousif123412321/pod-protocol/gateway/controllers"
	"github.com/yousif123412321/pod-protocol/gateway/middleware"
)

// Register wires the CAS gateway's HTTP routes per spec §6.
func Register(r *mux.Router, oc *controllers.ObjectController) {
	r.Use(middleware.Logger)
	r.HandleFunc("/objects", oc.Put).Methods("PUT")
	r.HandleFunc("/objects/{key}", oc.Get).Methods("GET")
	r.HandleFunc("/objects/{key}", oc.Delete).Methods("DELETE")
}
