package roster

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names inside the data directory
const (
	TeamsFile    = "team_namen.txt"
	ParentsFile  = "eltern_vornamen.txt"
	ChildrenFile = "kinder_vornamen.txt"
)

// Roster holds the static reference data loaded once at startup: the
// team→indication mapping plus the parent and child name lists used for
// generated test data. It is read-only after Load.
type Roster struct {
	teams       []string // file order, which the trial generator depends on
	indications map[string]string
	parentNames []string
	childNames  []string
}

// Load reads the three roster files from dir. A team line without a
// key:value separator is a hard error; the lists are one name per line.
func Load(dir string) (*Roster, error) {
	r := &Roster{indications: make(map[string]string)}

	teamLines, err := readLines(filepath.Join(dir, TeamsFile))
	if err != nil {
		return nil, err
	}
	for i, line := range teamLines {
		name, indication, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%s line %d: missing ':' separator", TeamsFile, i+1)
		}
		name = strings.TrimSpace(name)
		if _, dup := r.indications[name]; !dup {
			r.teams = append(r.teams, name)
		}
		r.indications[name] = strings.TrimSpace(indication)
	}
	if len(r.teams) == 0 {
		return nil, fmt.Errorf("%s: no teams", TeamsFile)
	}

	if r.parentNames, err = readLines(filepath.Join(dir, ParentsFile)); err != nil {
		return nil, err
	}
	if r.childNames, err = readLines(filepath.Join(dir, ChildrenFile)); err != nil {
		return nil, err
	}

	return r, nil
}

// readLines returns the non-blank, whitespace-trimmed lines of a file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return lines, nil
}

// Teams returns the team names in file order.
func (r *Roster) Teams() []string {
	out := make([]string, len(r.teams))
	copy(out, r.teams)
	return out
}

// Indication returns the disease label for a team and whether the team
// is part of the roster.
func (r *Roster) Indication(team string) (string, bool) {
	ind, ok := r.indications[team]
	return ind, ok
}

// Contains reports whether team is part of the roster.
func (r *Roster) Contains(team string) bool {
	_, ok := r.indications[team]
	return ok
}

// ParentNames returns the parent first-name list.
func (r *Roster) ParentNames() []string {
	out := make([]string, len(r.parentNames))
	copy(out, r.parentNames)
	return out
}

// ChildNames returns the child first-name list.
func (r *Roster) ChildNames() []string {
	out := make([]string, len(r.childNames))
	copy(out, r.childNames)
	return out
}
