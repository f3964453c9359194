package queue

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Registry is the set of eligible players and the number of courts in play.
type Registry struct {
	Players []string
	Courts  int
}

func NewRegistry(players []string, courts int) Registry {
	return Registry{Players: NormalizePlayers(players), Courts: courts}
}

func (r Registry) Validate() error {
	if r.Courts < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidConfiguration, r.Courts)
	}
	return nil
}

// NormalizePlayers trims names, drops blanks and keeps the first occurrence of
// each name in its original position.
func NormalizePlayers(players []string) []string {
	trimmed := lo.FilterMap(players, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
	return lo.Uniq(trimmed)
}

// ParsePlayerList splits a comma separated list of names, e.g. "A, B ,C".
func ParsePlayerList(s string) []string {
	return NormalizePlayers(strings.Split(s, ","))
}

func (r Registry) clone() Registry {
	return Registry{Players: append([]string(nil), r.Players...), Courts: r.Courts}
}
