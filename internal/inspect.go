package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Key        string
	Collection string
	Timestamp  string
	DocID      string
	Detail     string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// StartInspectServer exposes the raw keyspace over HTTP for operations.
// Read-only; it shares the Badger handle with the running store.
func StartInspectServer(db *badger.DB, addr, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "doc:posts:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				key := string(item.Key())
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(key, val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}

// DefaultMapper decodes the document envelope written by the store.
func DefaultMapper(key string, val []byte) InspectRow {
	row := InspectRow{Key: key}

	parts := strings.Split(key, ":")
	if len(parts) == 4 && parts[0] == "doc" {
		row.Collection = parts[1]
		row.DocID = parts[3]
	}

	var env struct {
		Fields map[string]any `json:"fields"`
		TS     int64          `json:"ts"`
	}
	if err := json.Unmarshal(val, &env); err != nil {
		row.Detail = fmt.Sprintf("unreadable: %v", err)
		return row
	}
	row.Timestamp = time.Unix(0, env.TS).UTC().Format(time.RFC3339)

	var pairs []string
	for k, v := range env.Fields {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}
	row.Detail = strings.Join(pairs, " ")
	return row
}
