package application

import (
	"context"
	"errors"
	"strings"

	"evote/contexts/election/voting-core/ports"
)

const (
	EventIDLength         = 8
	EventPasswordLength   = 6
	AccountIDLength       = 8
	UsernameLength        = 8
	AccountPasswordLength = 8
)

var errUnusableID = errors.New("id generator returned no alphanumeric characters")

// ShortCode draws fresh ids and keeps the first n alphanumeric characters.
func ShortCode(ctx context.Context, ids ports.IDGenerator, n int, upper bool) (string, error) {
	var b strings.Builder
	for b.Len() < n {
		raw, err := ids.NewID(ctx)
		if err != nil {
			return "", err
		}
		before := b.Len()
		for _, r := range raw {
			if b.Len() == n {
				break
			}
			if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				b.WriteRune(r)
			}
		}
		if b.Len() == before {
			return "", errUnusableID
		}
	}
	if upper {
		return strings.ToUpper(b.String()), nil
	}
	return strings.ToLower(b.String()), nil
}
