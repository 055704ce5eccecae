package organization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/careatlas/orgconnect/internal/db"
	"github.com/careatlas/orgconnect/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "org:"

// store is the consumer interface for organization documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores organizations as JSON documents, one key per organization.
type Repo struct {
	store store
}

// New creates an organization repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates an organization document. An organization without
// an ID is assigned one. Returns true if the document was created.
func (r *Repo) Upsert(ctx context.Context, org *domain.Organization) (bool, error) {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	key := orgKey(org.ID)

	data, err := json.Marshal(buildJSONDoc(org))
	if err != nil {
		return false, fmt.Errorf("marshal organization: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: exists %s: %w", domain.ErrSourceUnavailable, key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("%w: json.set %s: %w", domain.ErrSourceUnavailable, key, err)
	}

	return !exists, nil
}

// Get returns an organization by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Organization, error) {
	key := orgKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Organization{}, domain.ErrOrganizationNotFound
		}
		return domain.Organization{}, fmt.Errorf("%w: json.get %s: %w", domain.ErrSourceUnavailable, key, err)
	}
	return parseJSONGetResult(id, raw)
}

// List returns every stored organization. Documents that fail to parse are
// skipped, not errors: a single malformed record must not take down the
// whole candidate set.
func (r *Repo) List(ctx context.Context) ([]domain.Organization, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: scan organizations: %w", domain.ErrSourceUnavailable, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	// SCAN order is unspecified; sort so equal-distance ties rank deterministically.
	sort.Strings(keys)

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch organizations: %w", domain.ErrSourceUnavailable, err)
	}

	orgs := make([]domain.Organization, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue // key expired between SCAN and fetch
		}
		org, err := parseJSONGetResult(extractID(keys[i]), raw)
		if err != nil {
			continue
		}
		orgs = append(orgs, org)
	}
	return orgs, nil
}

// Count returns the number of stored organizations.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("%w: scan organizations: %w", domain.ErrSourceUnavailable, err)
	}
	return len(keys), nil
}

// Delete removes an organization.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := orgKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: exists %s: %w", domain.ErrSourceUnavailable, key, err)
	}
	if !exists {
		return domain.ErrOrganizationNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("%w: del %s: %w", domain.ErrSourceUnavailable, key, err)
	}
	return nil
}

func orgKey(id string) string {
	return keyPrefix + id
}

func extractID(key string) string {
	return strings.TrimPrefix(key, keyPrefix)
}
