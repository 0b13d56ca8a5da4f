package hashid

import (
	"fmt"

	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/httperr"
	hashids "github.com/speps/go-hashids/v2"
)

// Codec maps internal numeric row ids to opaque URL-safe public ids and back.
// Each entity kind gets its own keyspace: the kind is mixed into the hashid
// salt, so a public id minted for one table fails to decode for another.
type Codec struct {
	perKind map[entity.Kind]*hashids.HashID
}

// Config carries the obfuscation knobs. Alphabet and MinLength are optional;
// Salt is not.
type Config struct {
	Salt      string
	Alphabet  string
	MinLength int
}

// New builds a codec for every known entity kind.
func New(cfg Config) (*Codec, error) {
	if cfg.Salt == "" {
		return nil, fmt.Errorf("hashid: salt is not configured")
	}
	if cfg.Alphabet == "" {
		cfg.Alphabet = hashids.DefaultAlphabet
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = 8
	}

	perKind := make(map[entity.Kind]*hashids.HashID, len(entity.Kinds()))
	for _, kind := range entity.Kinds() {
		h, err := hashids.NewWithData(&hashids.HashIDData{
			Salt:      cfg.Salt + ":" + string(kind),
			Alphabet:  cfg.Alphabet,
			MinLength: cfg.MinLength,
		})
		if err != nil {
			return nil, fmt.Errorf("hashid: building %s codec: %w", kind, err)
		}
		perKind[kind] = h
	}

	return &Codec{perKind: perKind}, nil
}

// Encode returns the public form of an internal id. Deterministic: the same
// kind and id always produce the same string.
func (c *Codec) Encode(kind entity.Kind, id uint64) (string, error) {
	h, ok := c.perKind[kind]
	if !ok {
		return "", fmt.Errorf("hashid: unknown entity kind %q", kind)
	}
	public, err := h.EncodeInt64([]int64{int64(id)})
	if err != nil {
		return "", fmt.Errorf("hashid: encoding %s id %d: %w", kind, id, err)
	}
	return public, nil
}

// MustEncode is Encode for ids already known to be valid rows. Encoding only
// fails for unknown kinds or negative inputs, neither of which can occur for
// a persisted row id.
func (c *Codec) MustEncode(kind entity.Kind, id uint64) string {
	public, err := c.Encode(kind, id)
	if err != nil {
		panic(err)
	}
	return public
}

// Decode recovers the internal id from a public one. A string that is
// malformed, or that was minted for a different entity kind, yields a
// NotFound-class error.
func (c *Codec) Decode(kind entity.Kind, public string) (uint64, error) {
	h, ok := c.perKind[kind]
	if !ok {
		return 0, fmt.Errorf("hashid: unknown entity kind %q", kind)
	}
	ids, err := h.DecodeInt64WithError(public)
	if err != nil || len(ids) != 1 || ids[0] < 0 {
		return 0, httperr.Newf(httperr.NotFound, "unknown %s id", kind)
	}
	return uint64(ids[0]), nil
}

// Validate reports whether public is a well-formed id for the kind, without
// surfacing an error. Used to short-circuit before touching storage.
func (c *Codec) Validate(kind entity.Kind, public string) bool {
	_, err := c.Decode(kind, public)
	return err == nil
}
