package store

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// IsTodoID reports whether s looks like an id minted for a todo.
func IsTodoID(s string) bool {
	return strings.HasPrefix(s, todoIDPrefix+"-") && len(s) > len(todoIDPrefix)+1
}

func (s *Store) newID(ctx context.Context, table, prefix string) (string, error) {
	for attempt := 0; attempt < 8; attempt++ {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		var n int
		// table is always one of our constants, never user input.
		q := fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE id = ?", table)
		if err := s.db.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
			return "", err
		}
		if n == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique %s id", prefix)
}
