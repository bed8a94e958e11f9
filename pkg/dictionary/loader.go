package dictionary

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"
)

// snapshotVersion is bumped whenever the Snapshot layout changes.
const snapshotVersion = 1

// Snapshot is the on-disk msgpack form of a Dictionary.
type Snapshot struct {
	Version int      `msgpack:"v"`
	Words   []string `msgpack:"w"`
}

// Open loads a dictionary from path, picking the loader from the file format.
// limit caps the number of distinct words; zero loads all of them.
func Open(ctx context.Context, path string, limit int) (*Dictionary, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading %s from %s (limit %d)", format, path, limit)

	start := time.Now()
	var d *Dictionary
	switch format {
	case FormatText:
		d, err = LoadText(path, limit)
	case FormatSnapshot:
		d, err = LoadSnapshot(path, limit)
	case FormatSQLite:
		d, err = LoadSQLite(ctx, path, limit)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, err
	}
	if d.Len() == 0 {
		return nil, fmt.Errorf("dictionary %s has no words", path)
	}
	log.Debugf("Loaded %d words in %v", d.Len(), time.Since(start))
	return d, nil
}

// LoadText reads a frequency ordered word list, one entry per line.
// Only the first field of a line is used, so "word count" lists work too.
// Blank lines and lines starting with '#' are ignored.
func LoadText(path string, limit int) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	d, err := ReadText(file, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	return d, nil
}

// ReadText is LoadText over an arbitrary reader.
func ReadText(r io.Reader, limit int) (*Dictionary, error) {
	d := New(nil, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if limit > 0 && d.Len() >= limit {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.add(strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadSnapshot reads a msgpack snapshot written by WriteSnapshot.
func LoadSnapshot(path string, limit int) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer file.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(bufio.NewReader(file)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot %s has version %d, want %d", path, snap.Version, snapshotVersion)
	}
	return New(snap.Words, limit), nil
}

// WriteSnapshot encodes d as a msgpack snapshot.
func (d *Dictionary) WriteSnapshot(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(Snapshot{
		Version: snapshotVersion,
		Words:   d.words,
	})
}

// LoadSQLite reads words from the "word" column of a "words" table, in row order.
func LoadSQLite(ctx context.Context, path string, limit int) (*Dictionary, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT word FROM words ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query words in %s: %w", path, err)
	}
	defer rows.Close()

	d := New(nil, 0)
	for rows.Next() {
		if limit > 0 && d.Len() >= limit {
			break
		}
		var word sql.NullString
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		if word.Valid {
			d.add(word.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words from %s: %w", path, err)
	}
	return d, nil
}
