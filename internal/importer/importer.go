// Package importer pulls JSON documents from external sources,
// validates and normalizes their shape, and merges the resulting
// records into the active identity's catalog. It is the only place
// where external, untrusted data enters the catalog: every field of
// every record gets an explicit fallback before it is stored.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ssselery/techtrack/internal/catalog"
	"github.com/ssselery/techtrack/internal/model"
	"github.com/ssselery/techtrack/internal/session"
)

// placeholderTitle is stored for source items with no usable title.
const placeholderTitle = "Untitled"

// Notifier is the slice of the notification service the pipeline
// needs to report a completed import.
type Notifier interface {
	Notify(ctx context.Context, title, description string, typ model.NotificationType) model.Notification
}

// Record is a source item normalized into a technology shape, before
// it has been assigned a catalog id.
type Record struct {
	Title       string
	Description string
	Category    string
	Source      string
}

// sourceItem is the tolerated shape of one element of an import
// payload. Fields with unexpected types fail to unmarshal, which
// skips that single record instead of aborting the batch.
type sourceItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	Category    string   `json:"category"`
	Source      string   `json:"source"`
	Resources   []string `json:"resources"`
}

// wrappedPayload is the object form of an import payload.
type wrappedPayload struct {
	Technologies []json.RawMessage `json:"technologies"`
}

// Pipeline fetches, normalizes, and commits external records. A new
// Run supersedes any in-flight one: the older run's results are
// abandoned at commit time, never applied.
type Pipeline struct {
	client   *Client
	catalog  *catalog.Manager
	session  *session.Session
	notifier Notifier
	log      *logrus.Entry

	mu     sync.Mutex
	gen    uint64
	loaded []Record
}

// New creates a Pipeline committing into the given catalog manager.
// notifier may be nil, in which case completed imports are not
// announced.
func New(client *Client, cat *catalog.Manager, sess *session.Session, notifier Notifier) *Pipeline {
	return &Pipeline{
		client:   client,
		catalog:  cat,
		session:  sess,
		notifier: notifier,
		log:      logrus.WithField("component", "importer"),
	}
}

// nextGen starts a new run generation, superseding any in-flight run.
func (p *Pipeline) nextGen() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	return p.gen
}

// current reports the latest started generation.
func (p *Pipeline) current() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Run fetches the JSON document at rawURL, normalizes its records,
// and commits them into the catalog of the identity that was active
// when the run started. It returns the number of records committed.
//
// Failure modes surface as *ImportError: transport problems and
// non-success responses (KindTransport), invalid JSON (KindParse),
// a payload that is neither a record array nor an object with a
// technologies array (KindShape), and runs abandoned because a newer
// run started or the identity changed before commit (KindSuperseded).
// A shape failure leaves the catalog untouched; a malformed individual
// record is skipped without aborting the batch.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (int, error) {
	if err := model.ValidateImportURL(rawURL); err != nil {
		return 0, err
	}
	rawURL = strings.TrimSpace(rawURL)

	gen := p.nextGen()
	identity := p.session.Current()
	runLog := p.log.WithFields(logrus.Fields{
		"run":      uuid.New().String(),
		"identity": identity,
		"url":      rawURL,
	})

	start := time.Now()
	body, err := p.client.FetchJSON(ctx, rawURL)
	if err != nil {
		runLog.WithError(err).Info("import fetch failed")
		return 0, err
	}

	records, err := normalizePayload(body, rawURL)
	if err != nil {
		runLog.WithError(err).Info("import payload rejected")
		return 0, err
	}

	if p.current() != gen {
		runLog.Info("import superseded by a newer run")
		return 0, &ImportError{Kind: KindSuperseded, Message: "superseded by a newer import"}
	}

	p.mu.Lock()
	p.loaded = records
	p.mu.Unlock()

	drafts := make([]model.Technology, 0, len(records))
	for _, r := range records {
		drafts = append(drafts, model.Technology{
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Source:      r.Source,
		})
	}

	count, ok := p.catalog.AddBatch(ctx, identity, drafts)
	if !ok {
		runLog.Info("import dropped: identity changed before commit")
		return 0, &ImportError{
			Kind:    KindSuperseded,
			Message: fmt.Sprintf("identity %q is no longer active", identity),
		}
	}

	runLog.WithFields(logrus.Fields{
		"count":   count,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("import committed")

	if p.notifier != nil && count > 0 {
		p.notifier.Notify(ctx,
			"Import finished",
			fmt.Sprintf("Imported %d technologies from %s", count, rawURL),
			model.NotificationSuccess,
		)
	}

	return count, nil
}

// Load fetches and normalizes the document at rawURL without
// committing anything, keeping the records for Search. A newer Load
// or Run supersedes an in-flight one.
func (p *Pipeline) Load(ctx context.Context, rawURL string) ([]Record, error) {
	if err := model.ValidateImportURL(rawURL); err != nil {
		return nil, err
	}
	rawURL = strings.TrimSpace(rawURL)

	gen := p.nextGen()

	body, err := p.client.FetchJSON(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	records, err := normalizePayload(body, rawURL)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return nil, &ImportError{Kind: KindSuperseded, Message: "superseded by a newer load"}
	}
	p.loaded = records

	out := make([]Record, len(records))
	copy(out, records)
	return out, nil
}

// Search filters the most recently loaded records by a
// case-insensitive match on title, description, or category. An empty
// query returns everything.
func (p *Pipeline) Search(query string) []Record {
	p.mu.Lock()
	loaded := p.loaded
	p.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Record, len(loaded))
		copy(out, loaded)
		return out
	}

	var out []Record
	for _, r := range loaded {
		if strings.Contains(strings.ToLower(r.Title), q) ||
			strings.Contains(strings.ToLower(r.Description), q) ||
			strings.Contains(strings.ToLower(r.Category), q) {
			out = append(out, r)
		}
	}
	return out
}

// normalizePayload validates that body is a record collection and
// normalizes each element defensively. Only a catastrophic payload
// (not JSON, or not a recognized collection shape) produces an error.
func normalizePayload(body []byte, sourceURL string) ([]Record, error) {
	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, &ImportError{
			Kind:    KindParse,
			Message: fmt.Sprintf("response is not valid JSON: %v", err),
			Err:     err,
		}
	}

	var items []json.RawMessage
	switch probe.(type) {
	case []interface{}:
		// Bare array of records.
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, &ImportError{
				Kind:    KindShape,
				Message: "unrecognized format",
				Err:     err,
			}
		}
	case map[string]interface{}:
		var wrapped wrappedPayload
		if err := json.Unmarshal(body, &wrapped); err != nil || wrapped.Technologies == nil {
			return nil, &ImportError{Kind: KindShape, Message: "unrecognized format", Err: err}
		}
		items = wrapped.Technologies
	default:
		return nil, &ImportError{Kind: KindShape, Message: "unrecognized format"}
	}

	records := make([]Record, 0, len(items))
	for _, raw := range items {
		var item sourceItem
		if err := json.Unmarshal(raw, &item); err != nil {
			// Malformed record; skip it rather than abort the batch.
			continue
		}
		records = append(records, normalizeItem(item, sourceURL))
	}

	return records, nil
}

// normalizeItem fills every field of a source item with an explicit
// fallback so that no absent value ever propagates into a stored
// record.
func normalizeItem(item sourceItem, sourceURL string) Record {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = placeholderTitle
	}

	description := item.Description
	if description == "" {
		description = item.Body
	}

	source := item.Source
	if source == "" && len(item.Resources) > 0 {
		source = item.Resources[0]
	}
	if source == "" {
		source = sourceURL
	}

	return Record{
		Title:       title,
		Description: description,
		Category:    item.Category,
		Source:      source,
	}
}
