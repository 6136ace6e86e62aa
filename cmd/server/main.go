// Package main - Entry point for the jewel-pricing API server
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"jewel-pricing/api"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	flag.Parse()

	apiServer := api.NewServer(version)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	fmt.Printf("jewel-pricing server v%s\n", version)
	fmt.Printf("  API: http://localhost%s/api\n", *addr)

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
