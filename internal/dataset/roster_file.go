package dataset

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

// ReadRosterNames reads a line-delimited roster file, trimming whitespace and
// skipping blank lines.
func ReadRosterNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}
	return names, nil
}

// LoadCurrentRoster resolves a roster file into players with complete stat
// and salary data. It fails fast, before any model is built, when the file
// does not resolve to exactly rosterSize known players; the error names the
// discrepancy (count mismatch or unresolved names).
func LoadCurrentRoster(ctx context.Context, path string, provider Provider, rosterSize int) ([]types.Player, error) {
	names, err := ReadRosterNames(path)
	if err != nil {
		return nil, err
	}
	return ResolveRoster(ctx, names, provider, rosterSize)
}

// ResolveRoster validates a list of roster names against the provider.
func ResolveRoster(ctx context.Context, names []string, provider Provider, rosterSize int) ([]types.Player, error) {
	if len(names) != rosterSize {
		return nil, fmt.Errorf("roster lists %d names, expected exactly %d", len(names), rosterSize)
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return nil, fmt.Errorf("roster lists %q more than once", n)
		}
		seen[n] = true
	}

	players, err := provider.PlayersByName(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(players) != rosterSize {
		resolved := make(map[string]bool, len(players))
		for _, p := range players {
			resolved[p.Name] = true
		}
		var missing []string
		for _, n := range names {
			if !resolved[n] {
				missing = append(missing, n)
			}
		}
		return nil, fmt.Errorf("resolved %d of %d roster players; no stat/salary match for: %s",
			len(players), rosterSize, strings.Join(missing, ", "))
	}
	return players, nil
}
