package catalog

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jtejido/afisnet/primitives"
)

// The legacy text catalog holds one record per line:
//
//	id|name|x|y|angle|type|orientation|...|AC|associate|...
//
// Lines with an unreadable id are skipped. A malformed point ends the point list and
// whatever follows it is read as associates until the first non-integer.
const legacyAssociatesMarker = "AC"

// ReadLegacy parses a legacy catalog. A later line with the same id replaces an earlier
// one. The result is ordered by id.
func ReadLegacy(r io.Reader) ([]Record, error) {
	byID := make(map[int]Record)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		rec, ok := parseLegacyLine(sc.Text())
		if ok {
			byID[rec.ID] = rec
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read legacy catalog: %w", err)
	}

	out := make([]Record, 0, len(byID))
	for _, rec := range byID {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func parseLegacyLine(line string) (Record, bool) {
	tokens := strings.Split(line, "|")
	id, err := strconv.Atoi(strings.TrimSpace(tokens[0]))
	if err != nil {
		return Record{}, false
	}
	rec := Record{ID: id}
	i := 1
	if i < len(tokens) {
		rec.Name = tokens[i]
		i++
	}

	for i < len(tokens) {
		if tokens[i] == legacyAssociatesMarker {
			i++
			break
		}
		m, consumed, ok := parseLegacyPoint(tokens[i:])
		i += consumed
		if !ok {
			break
		}
		rec.Points = append(rec.Points, m)
	}

	for ; i < len(tokens); i++ {
		a, err := strconv.Atoi(strings.TrimSpace(tokens[i]))
		if err != nil {
			break
		}
		rec.Associates = append(rec.Associates, a)
	}
	return rec, true
}

// parseLegacyPoint reads x, y, angle, type and orientation. It reports how many tokens it
// consumed, including the one that failed.
func parseLegacyPoint(tokens []string) (primitives.Minutia, int, bool) {
	var m primitives.Minutia
	for n := 0; n < 5; n++ {
		if n >= len(tokens) {
			return m, n, false
		}
		t := strings.TrimSpace(tokens[n])
		var err error
		switch n {
		case 0:
			m.X, err = strconv.Atoi(t)
		case 1:
			m.Y, err = strconv.Atoi(t)
		case 2:
			m.Angle, err = strconv.Atoi(t)
		case 3:
			m.Kind, err = primitives.ParseKind(t)
		case 4:
			m.Orientation, err = strconv.ParseFloat(t, 64)
		}
		if err != nil {
			return m, n + 1, false
		}
	}
	return m, 5, true
}

// WriteLegacy writes records in the legacy text format. Each point's Aux value is written
// in the orientation column.
func WriteLegacy(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		var b strings.Builder
		b.WriteString(strconv.Itoa(r.ID))
		b.WriteByte('|')
		b.WriteString(r.Name)
		for _, m := range r.Points {
			fmt.Fprintf(&b, "|%d|%d|%d|%c|%s", m.X, m.Y, m.Angle, m.Kind.Code(),
				strconv.FormatFloat(m.Aux(), 'g', -1, 64))
		}
		b.WriteString("|" + legacyAssociatesMarker)
		for _, a := range r.Associates {
			b.WriteByte('|')
			b.WriteString(strconv.Itoa(a))
		}
		b.WriteByte('\n')
		if _, err := bw.WriteString(b.String()); err != nil {
			return fmt.Errorf("write legacy record %d: %w", r.ID, err)
		}
	}
	return bw.Flush()
}
