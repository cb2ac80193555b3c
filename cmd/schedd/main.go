// Command schedd exposes the simulator and the feasibility analysis as
// a small JSON service.
package main

import (
	"flag"
	"log"
	"net/http"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	log.Printf("listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, newRouter()))
}
