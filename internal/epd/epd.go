// Package epd reads tactical test suites in a semicolon-separated EPD
// dialect: every non-blank, non-comment line holds a board in FEN, then
// annotation fields of the form "bm <move> ..." and `id "<label>"`.
//
//	2rr3k/pp3pp1/1nnqbN1p/3pN3/2pP4/2P3Q1/PB3PPP/R4RK1 w - - 0 1;bm Qg6;id "WAC.001"
//
// Records without a best-move annotation are not test positions and are
// dropped without an error.
package epd

import (
	"bufio"
	"os"
	"strings"
)

// Record is a single suite position: the board to search and the move the
// engine is expected to return. ID is "" when the record carries no label.
type Record struct {
	Fen      string
	BestMove string
	ID       string
}

// Walk reads the suite file at path and calls fn for every usable record,
// in file order. Restart by calling Walk again.
func Walk(path string, fn func(Record)) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var scanner = bufio.NewScanner(file)
	for scanner.Scan() {
		var rec, ok = parseRecord(scanner.Text())
		if ok {
			fn(rec)
		}
	}
	return scanner.Err()
}

// Load materializes the whole suite in file order.
func Load(path string) ([]Record, error) {
	var result []Record
	var err = Walk(path, func(rec Record) {
		result = append(result, rec)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func parseRecord(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Record{}, false
	}

	var fields []string
	for _, field := range strings.Split(line, ";") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return Record{}, false
	}

	var rec = Record{Fen: fields[0]}
	for _, field := range fields[1:] {
		if strings.HasPrefix(field, "bm ") {
			// Only the first move of a "bm" field is checked against the
			// engine; alternative best moves are not supported.
			var parts = strings.Fields(field)
			if len(parts) >= 2 {
				rec.BestMove = parts[1]
			}
		} else if strings.HasPrefix(field, "id ") {
			rec.ID = strings.Trim(strings.TrimSpace(field[3:]), "\"")
		}
	}
	if rec.BestMove == "" {
		return Record{}, false
	}
	return rec, true
}
