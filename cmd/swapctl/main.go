package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// swapctl is a read-only viewer over a running (or stopped) skillswap
// database. It renders one collection at a time as a table.
func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	collection := flag.String("collection", "posts", "Collection to scan (posts, messages, users, sessionRequests)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	header := fmt.Sprintf("  ====== %s ======", *collection)
	if !*noColor {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Doc ID", "Committed", "Fields"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	prefix := []byte("doc:" + *collection + ":")
	count := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				var env struct {
					Fields map[string]any `json:"fields"`
					TS     int64          `json:"ts"`
				}
				if err := json.Unmarshal(v, &env); err != nil {
					fmt.Printf("Error decoding key %s: %v\n", key, err)
					return nil
				}

				docID := key[strings.LastIndex(key, ":")+1:]
				if len(docID) > 8 {
					docID = docID[:8]
				}

				var pairs []string
				for k, fv := range env.Fields {
					s := fmt.Sprintf("%v", fv)
					if len(s) > 48 {
						s = s[:48] + "…"
					}
					pairs = append(pairs, fmt.Sprintf("%s=%s", k, s))
				}

				table.Append([]string{
					docID,
					time.Unix(0, env.TS).UTC().Format("2006-01-02 15:04:05"),
					strings.Join(pairs, "  "),
				})
				count++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("\n%d document(s)\n", count)
}

func openDB(path string) (*badger.DB, error) {
	// BypassLockGuard allows opening while the daemon holds the lock.
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
