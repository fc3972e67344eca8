package console

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/passbi/railnet/internal/models"
)

// tokenize splits a command line on whitespace. A double-quoted name and a
// parenthesized coordinate each stay one token even when they hold spaces;
// quotes are removed, parentheses are kept.
func tokenize(line string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuotes, depth := false, 0
	started := false

	flush := func() {
		if started {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		started = false
	}

	for _, r := range line {
		switch {
		case r == '"' && depth == 0:
			inQuotes = !inQuotes
			started = true
		case inQuotes:
			current.WriteRune(r)
		case r == '(':
			depth++
			current.WriteRune(r)
			started = true
		case r == ')':
			if depth == 0 {
				return nil, fmt.Errorf("%w: unbalanced ')'", ErrBadArguments)
			}
			depth--
			current.WriteRune(r)
		case unicode.IsSpace(r):
			if depth > 0 {
				continue
			}
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("%w: unterminated quote", ErrBadArguments)
	}
	if depth > 0 {
		return nil, fmt.Errorf("%w: unbalanced '('", ErrBadArguments)
	}
	flush()
	return tokens, nil
}

// parseCoord parses "(x,y)"
func parseCoord(token string) (models.Coord, error) {
	if !strings.HasPrefix(token, "(") || !strings.HasSuffix(token, ")") {
		return models.Coord{}, fmt.Errorf("%w: coordinate %q must look like (x,y)", ErrBadArguments, token)
	}
	parts := strings.Split(token[1:len(token)-1], ",")
	if len(parts) != 2 {
		return models.Coord{}, fmt.Errorf("%w: coordinate %q must look like (x,y)", ErrBadArguments, token)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return models.Coord{}, fmt.Errorf("%w: coordinate %q: %v", ErrBadArguments, token, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.Coord{}, fmt.Errorf("%w: coordinate %q: %v", ErrBadArguments, token, err)
	}
	return models.Coord{X: x, Y: y}, nil
}

func parseTime(token string) (models.Time, error) {
	t, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q is not a number", ErrBadArguments, token)
	}
	return models.Time(t), nil
}

func parseRegionID(token string) (models.RegionID, error) {
	id, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: region %q is not a number", ErrBadArguments, token)
	}
	return models.RegionID(id), nil
}

// parseStop parses "STATION:TIME"; the station part may itself hold colons
func parseStop(token string) (models.Stop, error) {
	i := strings.LastIndex(token, ":")
	if i <= 0 {
		return models.Stop{}, fmt.Errorf("%w: stop %q must look like STATION:TIME", ErrBadArguments, token)
	}
	t, err := parseTime(token[i+1:])
	if err != nil {
		return models.Stop{}, err
	}
	return models.Stop{Station: models.StationID(token[:i]), Time: t}, nil
}

func formatCoord(c models.Coord) string {
	if c == models.NoCoord {
		return "(--,--)"
	}
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func formatRegion(id models.RegionID) string {
	if id == models.NoRegion {
		return "---"
	}
	return strconv.FormatUint(uint64(id), 10)
}
