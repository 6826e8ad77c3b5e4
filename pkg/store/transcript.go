package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/ami/pkg/reply"
)

// Record is one archived chat exchange.
type Record struct {
	ID      string       `json:"id" yaml:"id"`
	Agent   string       `json:"agent" yaml:"agent"`
	Message string       `json:"message" yaml:"message"`
	Reply   string       `json:"reply" yaml:"reply"`
	Action  reply.Action `json:"action,omitempty" yaml:"action,omitempty"`
	Created time.Time    `json:"created" yaml:"created"`
}

// Transcript archives chat exchanges on disk, one file per exchange.
type Transcript interface {
	Record(agent, message, answer string, action reply.Action) error
	List(ctx context.Context, agent string) []*Record
	Agents(ctx context.Context) []string
	Erase(ctx context.Context, agent string) (int, error)
}

// Load creates a Transcript backed by diskv using the provided config.
func Load(cfg Config) (Transcript, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &transcript{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), now: time.Now}, nil
}

type transcript struct {
	d   *diskv.Diskv
	now func() time.Time
}

func (t *transcript) Record(agent, message, answer string, action reply.Action) error {
	r := &Record{
		ID:      strings.ReplaceAll(uuid.NewString(), "-", ""),
		Agent:   agent,
		Message: message,
		Reply:   answer,
		Action:  action,
		Created: t.now().UTC(),
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := t.d.Write(toKey(r), data); err != nil {
		return fmt.Errorf("store: write transcript: %w", err)
	}
	return nil
}

func (t *transcript) read(key string) (*Record, error) {
	val, err := t.d.Read(key)
	if err != nil {
		return nil, err
	}
	r := &Record{}
	if err := json.Unmarshal(val, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns the exchanges for agent, oldest first. An empty agent lists
// every agent.
func (t *transcript) List(ctx context.Context, agent string) []*Record {
	ak := toAgent(agent)
	all := make([]*Record, 0)
	for key := range t.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); agent == "" || pk.Path[0] == ak {
			r, err := t.read(key)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
				continue
			}
			all = append(all, r)
		}
	}
	sortRecords(all)
	return all
}

func (t *transcript) Agents(ctx context.Context) []string {
	seen := map[string]struct{}{}
	for key := range t.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		seen[fromAgent(pk.Path[0])] = struct{}{}
	}
	agents := make([]string, 0, len(seen))
	for a := range seen {
		agents = append(agents, a)
	}
	sort.Strings(agents)
	return agents
}

// Erase removes every exchange for agent and reports how many went.
func (t *transcript) Erase(ctx context.Context, agent string) (int, error) {
	ak := toAgent(agent)
	var keys []string
	for key := range t.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); agent == "" || pk.Path[0] == ak {
			keys = append(keys, key)
		}
	}
	for i, key := range keys {
		if err := t.d.Erase(key); err != nil {
			return i, fmt.Errorf("store: erase %s: %w", key, err)
		}
	}
	return len(keys), nil
}

func sortRecords(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		lt, rt := records[i].Created, records[j].Created
		if lt.Equal(rt) {
			return records[i].ID < records[j].ID
		}
		return lt.Before(rt)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

const layoutISO = "2006-01-02"

// toKey makes `agent-yyyy-mm-dd-id`, which diskv lays out as
// agent/yyyy/mm/dd/id.
func toKey(r *Record) string {
	return fmt.Sprintf("%s-%s-%s", toAgent(r.Agent), r.Created.Format(layoutISO), r.ID)
}

// Agent names are hex encoded so they are safe as a directory name and
// never contain the key separator.
func toAgent(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromAgent(s string) string {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromAgent: %s", err)
	}
	return string(b)
}
