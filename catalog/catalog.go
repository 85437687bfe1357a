/*
Package catalog maps opaque item codes to human-readable descriptions.

PURPOSE:
  The costing engine only needs a stable, unique string key per item.
  This package issues those keys and remembers what they stand for, so
  reports can translate "98fb" back into the product it denotes.

KEY CONCEPTS:
  - Issuer:  capability that mints candidate codes (UUID-backed default)
  - Catalog: code -> description registry with collision retry

ISSUANCE:
  Register without an explicit code draws a fresh code from the Issuer.
  An explicit code is kept as-is unless it is already taken, in which
  case a fresh one is drawn instead. Collisions are retried a bounded
  number of times; exhausting the retries is an error rather than a hang.

USAGE:
  c := catalog.New(catalog.WithCodeLength(4))
  code, _ := c.Register("BIC Gel-ocity Retractable Gel Pen, Blue", "")
  ledger.Buy(seller.NewOrder(code, price, qty))
*/
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// maxIssueAttempts bounds collision retries on code issuance.
const maxIssueAttempts = 10

// ErrCodesExhausted is returned when issuance keeps colliding with
// registered codes. In practice this means the code length is too short
// for the catalog size.
var ErrCodesExhausted = errors.New("could not issue a unique code")

// =============================================================================
// ISSUER - Capability that mints candidate codes
// =============================================================================

type Issuer interface {
	// NewCode returns a candidate code of at most n characters.
	NewCode(n int) string
}

// UUIDIssuer mints codes from random UUIDs truncated to the requested
// length, capped at the 36 characters of a full UUID.
type UUIDIssuer struct{}

func (UUIDIssuer) NewCode(n int) string {
	id := uuid.NewString()
	if n <= 0 || n > len(id) {
		return id
	}
	return id[:n]
}

// =============================================================================
// CATALOG
// =============================================================================

type Catalog struct {
	entries map[string]string
	order   []string // registration order, for stable listings
	issuer  Issuer
	codeLen int
}

type Option func(*Catalog)

// WithIssuer replaces the default UUID issuer.
func WithIssuer(issuer Issuer) Option {
	return func(c *Catalog) { c.issuer = issuer }
}

// WithCodeLength sets the issued code length (default 4).
func WithCodeLength(n int) Option {
	return func(c *Catalog) { c.codeLen = n }
}

func New(opts ...Option) *Catalog {
	c := &Catalog{
		entries: make(map[string]string),
		issuer:  UUIDIssuer{},
		codeLen: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register stores a description under a unique code and returns the code.
// An empty or already-taken explicit code is replaced by a freshly issued
// one.
func (c *Catalog) Register(description, code string) (string, error) {
	if code == "" || c.taken(code) {
		issued, err := c.issue()
		if err != nil {
			return "", err
		}
		code = issued
	}
	c.entries[code] = description
	c.order = append(c.order, code)
	return code, nil
}

// Describe returns the description registered under a code.
func (c *Catalog) Describe(code string) (string, bool) {
	description, ok := c.entries[code]
	return description, ok
}

// Codes lists registered codes in registration order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) taken(code string) bool {
	_, ok := c.entries[code]
	return ok
}

func (c *Catalog) issue() (string, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		code := c.issuer.NewCode(c.codeLen)
		if !c.taken(code) {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrCodesExhausted, maxIssueAttempts)
}
