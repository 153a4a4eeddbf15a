package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
)

// Serves a static catalog snapshot at GET /games, in the shape the
// mirror source expects. Useful for local scraper runs without hitting
// a real site.
func main() {
	addr := flag.String("addr", ":8090", "listen address")
	dataPath := flag.String("data", "data/mirror.json", "path to the catalog snapshot")
	flag.Parse()

	http.HandleFunc("/games", func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(*dataPath)
		if err != nil {
			http.Error(w, "cannot read snapshot: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// validate before serving so a bad export fails loudly
		var tmp any
		if err := json.Unmarshal(b, &tmp); err != nil {
			http.Error(w, "snapshot is not valid JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	})

	log.Printf("mirror-server listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
