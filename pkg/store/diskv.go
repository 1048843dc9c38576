package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/backend"
	"tableflip.dev/clinic/pkg/dateutil"
	"tableflip.dev/clinic/pkg/filter"
)

// UndatedBucket holds records whose date does not parse.
const UndatedBucket = "undated"

// ErrNotFound is returned for ids the cache does not hold.
var ErrNotFound = fmt.Errorf("store: %w", backend.ErrNotFound)

// Config locates the cache on disk.
type Config interface {
	BasePath() string
}

// Persistence is the local appointment cache. It doubles as a backend.Source
// so the views can run offline from the last synced snapshot.
type Persistence interface {
	backend.Source

	ListAll(ctx context.Context) []appointment.Record
	Get(ctx context.Context, id string) (appointment.Record, error)
	Store(r *appointment.Record) error
	Delete(id string) error
	ReplaceAll(ctx context.Context, records []appointment.Record) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load opens the diskv cache rooted at cfg.BasePath().
func Load(cfg Config, log zerolog.Logger) (Persistence, error) {
	if cfg == nil || cfg.BasePath() == "" {
		return nil, errors.New("store: base path required")
	}
	basePath := cfg.BasePath()
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	// Other processes rewrite entries in place, so diskv's read cache stays
	// off and every read goes to disk.
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      0,
	}), basePath: basePath, log: log}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      zerolog.Logger
}

var _ backend.Source = (*persistence)(nil)

func (p *persistence) read(key string) (appointment.Record, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return appointment.Record{}, err
	}
	var r appointment.Record
	if err := json.Unmarshal(val, &r); err != nil {
		return appointment.Record{}, err
	}
	r.ID = keyToPathTransform(key).FileName
	if r.Normalize() {
		p.log.Warn().Str("id", r.ID).Msg("unknown status in cache, treating as pending")
	}
	return r, nil
}

// ListAll returns every cached record sorted by start time. Unreadable
// entries are logged and skipped.
func (p *persistence) ListAll(ctx context.Context) []appointment.Record {
	all := make([]appointment.Record, 0)
	for key := range p.d.Keys(ctx.Done()) {
		r, err := p.read(key)
		if err != nil {
			p.log.Warn().Str("key", key).Err(err).Msg("skipping unreadable cache entry")
			continue
		}
		all = append(all, r)
	}
	filter.SortByStart(all)
	return all
}

func (p *persistence) keyFor(ctx context.Context, id string) (string, bool) {
	suffix := "/" + id
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for key := range p.d.Keys(ctx.Done()) {
		if strings.HasSuffix(key, suffix) {
			return key, true
		}
	}
	return "", false
}

func (p *persistence) Get(ctx context.Context, id string) (appointment.Record, error) {
	key, ok := p.keyFor(ctx, id)
	if !ok {
		return appointment.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.read(key)
}

// Store writes r under its date bucket, assigning a UUID when r has no id.
// A record whose date changed moves to its new bucket.
func (p *persistence) Store(r *appointment.Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := validID(r.ID); err != nil {
		return err
	}
	key := toKey(r)
	if old, ok := p.keyFor(context.Background(), r.ID); ok && old != key {
		if err := p.d.Erase(old); err != nil {
			return fmt.Errorf("store: move %s: %w", r.ID, err)
		}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) Delete(id string) error {
	key, ok := p.keyFor(context.Background(), id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.d.Erase(key)
}

// ReplaceAll swaps the cached snapshot for records. Entries missing from
// records, including old buckets of moved records, are erased after the new
// ones are written.
func (p *persistence) ReplaceAll(ctx context.Context, records []appointment.Record) error {
	keep := make(map[string]struct{}, len(records))
	for i := range records {
		r := records[i].Clone()
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if err := validID(r.ID); err != nil {
			return err
		}
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		key := toKey(&r)
		if err := p.d.Write(key, data); err != nil {
			return fmt.Errorf("store: replace: %w", err)
		}
		keep[key] = struct{}{}
	}
	var stale []string
	for key := range p.d.Keys(ctx.Done()) {
		if _, ok := keep[key]; !ok {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		if err := p.d.Erase(key); err != nil {
			return fmt.Errorf("store: erase %s: %w", key, err)
		}
	}
	p.log.Debug().Int("written", len(keep)).Int("erased", len(stale)).Msg("cache replaced")
	return nil
}

// List implements backend.Source.
func (p *persistence) List(ctx context.Context) (backend.Page, error) {
	if err := ctx.Err(); err != nil {
		return backend.Page{}, err
	}
	items := p.ListAll(ctx)
	return backend.Page{Items: items, Page: 1, PerPage: len(items), TotalPages: 1, TotalItems: len(items)}, nil
}

// UpdateStatus implements backend.Source.
func (p *persistence) UpdateStatus(ctx context.Context, id string, status appointment.Status) (appointment.Record, error) {
	r, err := p.Get(ctx, id)
	if err != nil {
		return appointment.Record{}, err
	}
	r.Status = status
	if err := p.Store(&r); err != nil {
		return appointment.Record{}, err
	}
	return r, nil
}

// Create implements backend.Source.
func (p *persistence) Create(ctx context.Context, r appointment.Record) (appointment.Record, error) {
	if err := ctx.Err(); err != nil {
		return appointment.Record{}, err
	}
	r = r.Clone()
	if r.ID != "" {
		if _, ok := p.keyFor(ctx, r.ID); ok {
			return appointment.Record{}, fmt.Errorf("store: appointment %s already exists", r.ID)
		}
	}
	if err := p.Store(&r); err != nil {
		return appointment.Record{}, err
	}
	return r, nil
}

func validID(id string) error {
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("store: invalid id %q", id)
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	bucket, file, ok := strings.Cut(s, "/")
	if !ok {
		return &diskv.PathKey{Path: []string{UndatedBucket}, FileName: s}
	}
	return &diskv.PathKey{Path: []string{bucket}, FileName: file}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}

// toKey makes `yyyy-mm-dd/id`. Dates are bucketed in the local zone.
func toKey(r *appointment.Record) string {
	bucket, ok := dateutil.Default().Key(r.Date)
	if !ok {
		bucket = UndatedBucket
	}
	return bucket + "/" + r.ID
}
