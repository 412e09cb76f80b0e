// Package activity keeps a CSV audit trail of changes to the transaction list.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neospend-dev/neospend/internal/store"
)

// Entry is one logged change.
type Entry struct {
	Timestamp     time.Time
	Action        string
	TransactionID string
	Details       string
}

// Header is the first line of the activity log.
const Header = "timestamp,action,transaction_id,details"

// RelPath is the log location relative to the project directory.
var RelPath = filepath.Join("logs", "activity-log.csv")

var columns = strings.Split(Header, ",")

func (e Entry) row() []string {
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Action,
		e.TransactionID,
		e.Details,
	}
}

func parseRow(rec []string) (Entry, error) {
	ts, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", rec[0], err)
	}
	return Entry{Timestamp: ts, Action: rec[1], TransactionID: rec[2], Details: rec[3]}, nil
}

// Append adds entries to the project's activity log, creating the file and
// its header on first use.
func Append(root string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	path := filepath.Join(root, RelPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	_, statErr := os.Stat(path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := w.Write(e.row()); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

// Read returns every logged entry, oldest first, or nil when the log does
// not exist yet.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, RelPath))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)

	var entries []Entry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading activity log: %w", err)
		}
		if line == 1 {
			continue
		}
		e, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}

// FromEvent describes a store event as a log entry.
func FromEvent(ev store.Event, at time.Time) Entry {
	tx := ev.Transaction
	return Entry{
		Timestamp:     at,
		Action:        string(ev.Action),
		TransactionID: tx.ID,
		Details:       fmt.Sprintf("%s %s [%s]", tx.Name, tx.Amount.StringFixed(2), tx.Category),
	}
}

// Recorder collects store events until Flush writes them out.
type Recorder struct {
	root    string
	now     func() time.Time
	pending []Entry
}

// NewRecorder creates a Recorder for the project at root.
func NewRecorder(root string) *Recorder {
	return &Recorder{root: root, now: time.Now}
}

// Observe is a store.Observer.
func (r *Recorder) Observe(ev store.Event) {
	r.pending = append(r.pending, FromEvent(ev, r.now()))
}

// Pending returns the number of unwritten entries.
func (r *Recorder) Pending() int {
	return len(r.pending)
}

// Flush appends the collected entries to the log.
func (r *Recorder) Flush() error {
	if err := Append(r.root, r.pending); err != nil {
		return err
	}
	r.pending = nil
	return nil
}
