// Command hroute loads a route manifest, builds a router and reports what
// a request would match.
//
//	hroute -manifest routes.yaml -method GET /users/7 /users/new
//	hroute -manifest routes.yaml -snapshot routes.msgpack
//	hroute -manifest routes.yaml -serve :8080
package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/zatxm/hroute"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		hroute.Log.Error("hroute", zap.Error(err))
		os.Exit(1)
	}
}
