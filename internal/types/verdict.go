package types

// BinaryVerdict is the outcome of auditing a single binary.
type BinaryVerdict struct {
	TargetPath       string
	OffendingEntries []DependencyRecord
}

func (v BinaryVerdict) IsClean() bool {
	return len(v.OffendingEntries) == 0
}

// ProfileAuditResult aggregates verdicts in binary discovery order.
type ProfileAuditResult struct {
	Profile   string
	StoreRoot string
	Verdicts  []BinaryVerdict
}

func (r ProfileAuditResult) AllClean() bool {
	for _, verdict := range r.Verdicts {
		if !verdict.IsClean() {
			return false
		}
	}
	return true
}

func (r ProfileAuditResult) OffendingCount() int {
	count := 0
	for _, verdict := range r.Verdicts {
		count += len(verdict.OffendingEntries)
	}
	return count
}

func (r ProfileAuditResult) DirtyVerdicts() []BinaryVerdict {
	var dirty []BinaryVerdict
	for _, verdict := range r.Verdicts {
		if !verdict.IsClean() {
			dirty = append(dirty, verdict)
		}
	}
	return dirty
}
