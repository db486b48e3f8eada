package core

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"link-audit/internal/types"
)

const lddArrow = "=>"

// ParseLddLine turns one line of ldd output into a record. Blank lines
// yield ok=false. Lines that do not follow the usual layout still produce
// a best-effort record rather than an error.
func ParseLddLine(raw string) (types.DependencyRecord, bool) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return types.DependencyRecord{}, false
	}
	record := types.DependencyRecord{}
	rest := line
	if name, after, found := strings.Cut(line, lddArrow); found {
		record.DeclaredName = strings.TrimSpace(name)
		rest = after
	}
	record.ResolvedPath, record.LoadAddress = splitLoadAddress(rest)
	return record, true
}

// splitLoadAddress splits "path (0x...)" on its last whitespace boundary.
func splitLoadAddress(value string) (string, string) {
	value = strings.TrimSpace(value)
	idx := strings.LastIndexFunc(value, unicode.IsSpace)
	if idx < 0 {
		return "", value
	}
	_, size := utf8.DecodeRuneInString(value[idx:])
	return strings.TrimSpace(value[:idx]), strings.TrimSpace(value[idx+size:])
}

// RecordSet holds the records of one listing keyed by declared name.
// A repeated name replaces the earlier record but keeps its position.
type RecordSet struct {
	order      []string
	records    map[string]types.DependencyRecord
	duplicates int
}

func newRecordSet() *RecordSet {
	return &RecordSet{records: map[string]types.DependencyRecord{}}
}

func (s *RecordSet) put(record types.DependencyRecord) {
	if _, ok := s.records[record.DeclaredName]; ok {
		s.duplicates++
	} else {
		s.order = append(s.order, record.DeclaredName)
	}
	s.records[record.DeclaredName] = record
}

func (s *RecordSet) Len() int {
	return len(s.order)
}

// Duplicates returns how many lines were merged into an earlier entry.
func (s *RecordSet) Duplicates() int {
	return s.duplicates
}

// Records returns the merged records in insertion order.
func (s *RecordSet) Records() []types.DependencyRecord {
	out := make([]types.DependencyRecord, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.records[name])
	}
	return out
}

func (s *RecordSet) lookup(declaredName string) (types.DependencyRecord, bool) {
	record, ok := s.records[declaredName]
	return record, ok
}

// ParseLddOutput parses a complete ldd listing for one binary.
func ParseLddOutput(raw string) *RecordSet {
	set := newRecordSet()
	for _, line := range strings.Split(raw, "\n") {
		record, ok := ParseLddLine(line)
		if !ok {
			continue
		}
		set.put(record)
	}
	return set
}
