// Command podgateway runs the HTTP content-addressed object store backend
// described in spec §6: a PUT/GET/DELETE surface over a server-side
// ObjectStore, suitable for RemoteObjectStore clients to talk to.
package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yousif123412321/pod-protocol/core"
	"github.com/yousif123412321/pod-protocol/gateway/config"
	"github.com/yousif123412321/pod-protocol/gateway/controllers"
	"github.com/yousif123412321/pod-protocol/gateway/routes"
	"github.com/yousif123412321/pod-protocol/gateway/services"
)

func main() {
	if err := config.Load(".env"); err != nil {
		logrus.Fatal(err)
	}

	logger := logrus.StandardLogger()
	store := core.NewInMemoryObjectStore(core.StorageConfig{Kind: core.StorageInMemory}, logger)
	svc := services.NewService(store)
	ctrl := controllers.NewObjectController(svc, logger)

	r := mux.NewRouter()
	routes.Register(r, ctrl)

	logrus.Infof("object gateway listening on %s", config.AppConfig.Port)
	if err := http.ListenAndServe(":"+config.AppConfig.Port, r); err != nil {
		logrus.Fatal(err)
		os.Exit(1)
	}
}
