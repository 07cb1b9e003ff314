package shopify

import (
	"errors"
	"fmt"

	"backoffice/internal/logger"
)

// CatalogAPI is the slice of the client the syncer needs; tests substitute
// an in-memory catalog.
type CatalogAPI interface {
	FetchAllProducts() ([]Product, error)
	CreateProduct(payload ProductPayload) (*Product, error)
	UpdateProduct(id int64, payload ProductPayload) (*Product, error)
}

// Syncer reconciles a vendor's candidate products against the main store
// catalog, one session per call.
type Syncer struct {
	client CatalogAPI
	mapper *Mapper
	logger *logger.Logger
}

func NewSyncer(client CatalogAPI, logger *logger.Logger) *Syncer {
	return &Syncer{
		client: client,
		mapper: NewMapper(),
		logger: logger,
	}
}

// Session is one in-flight sync run. Lines yields the progress report and
// is closed when the run ends.
type Session struct {
	lines     chan string
	completed bool
}

func (s *Session) Lines() <-chan string {
	return s.lines
}

// Completed reports whether the run reached its completion banner rather
// than aborting. Only valid once Lines has been closed.
func (s *Session) Completed() bool {
	return s.completed
}

// Sync runs one sync session and streams its progress as human-readable
// lines. The channel is closed when the session ends; a session is never
// restarted, a retry is a new call.
//
// The channel's capacity covers every line the session can emit, so the
// run never blocks on its consumer: a caller that stops reading mid-way
// still gets all remaining products written.
//
// The initial catalog fetch is fatal to the session. Individual product
// failures are not: each candidate yields exactly one line (created,
// updated, or failed with the reason) and the loop always continues.
func (s *Syncer) Sync(vendorName string, candidates []Candidate) *Session {
	// Two banners, one line per candidate, one terminal line.
	sess := &Session{lines: make(chan string, len(candidates)+3)}
	lines := sess.lines

	go func() {
		defer close(lines)

		lines <- fmt.Sprintf("Starting product sync for vendor %s (%d products)", vendorName, len(candidates))

		catalog, err := s.client.FetchAllProducts()
		if err != nil {
			s.logger.Error("sync: catalog fetch for vendor %s failed: %v", vendorName, err)
			lines <- fmt.Sprintf("Sync aborted: failed to fetch store catalog: %v", err)
			return
		}
		lines <- fmt.Sprintf("Fetched %d products from the main store", len(catalog))

		// One lookup per session, keyed by normalized handle. The catalog
		// snapshot is not shared with any other session.
		existing := make(map[string]*Product, len(catalog))
		for i := range catalog {
			p := &catalog[i]
			key := p.Handle
			if key == "" {
				key = p.Title
			}
			existing[Slugify(key)] = p
		}

		var created, updated, failed int
		for i := range candidates {
			cand := &candidates[i]
			product, action, err := s.syncOne(cand, vendorName, existing)
			if err != nil {
				failed++
				s.logger.Error("sync: product %q for vendor %s failed: %v", cand.Title, vendorName, err)
				lines <- fmt.Sprintf("Failed %q: %v", cand.Title, err)
				continue
			}
			if action == actionCreated {
				created++
			} else {
				updated++
			}
			lines <- fmt.Sprintf("%s %q (id %d)", action, product.Title, product.ID)
		}

		sess.completed = true
		lines <- fmt.Sprintf("Sync complete for vendor %s: %d created, %d updated, %d failed", vendorName, created, updated, failed)
	}()

	return sess
}

func (s *Syncer) syncOne(cand *Candidate, vendorName string, existing map[string]*Product) (*Product, string, error) {
	intent, err := s.resolve(cand, vendorName, existing)
	if err != nil {
		return nil, "", err
	}
	return intent.apply(s.client)
}

const (
	actionCreated = "Created"
	actionUpdated = "Updated"
)

// syncIntent is the create-or-update decision for one candidate, resolved
// once and then executed against the remote API.
type syncIntent interface {
	apply(client CatalogAPI) (*Product, string, error)
}

type createIntent struct {
	payload ProductPayload
}

func (in createIntent) apply(client CatalogAPI) (*Product, string, error) {
	product, err := client.CreateProduct(in.payload)
	return product, actionCreated, err
}

type updateIntent struct {
	id      int64
	payload ProductPayload
}

func (in updateIntent) apply(client CatalogAPI) (*Product, string, error) {
	product, err := client.UpdateProduct(in.id, in.payload)
	return product, actionUpdated, err
}

func (s *Syncer) resolve(cand *Candidate, vendorName string, existing map[string]*Product) (syncIntent, error) {
	if cand.Title == "" {
		return nil, errors.New("product has no title")
	}

	if match, ok := existing[s.mapper.MatchKey(cand)]; ok {
		return updateIntent{id: match.ID, payload: s.mapper.BuildUpdate(cand, match, vendorName)}, nil
	}
	return createIntent{payload: s.mapper.BuildCreate(cand, vendorName)}, nil
}
