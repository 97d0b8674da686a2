package domain

// AggregatedRecord collects the artifact records of a multi-module build
// under its module-set build. Publishing the aggregate is the module-set
// build's own concern.
type AggregatedRecord struct {
	setBuild *Build
	records  []*ArtifactRecord
}

// CreateAggregatedView produces the aggregate record for a module-set build
// from the per-module records, in module order. The receiver leads the
// aggregate; duplicates of it in moduleRecords are skipped.
func (r *ArtifactRecord) CreateAggregatedView(setBuild *Build, moduleRecords []*ArtifactRecord) *AggregatedRecord {
	records := make([]*ArtifactRecord, 0, len(moduleRecords)+1)
	records = append(records, r)
	for _, rec := range moduleRecords {
		if rec == nil || rec == r {
			continue
		}
		records = append(records, rec)
	}
	return &AggregatedRecord{setBuild: setBuild, records: records}
}

func (ar *AggregatedRecord) SetBuild() *Build {
	return ar.setBuild
}

func (ar *AggregatedRecord) Records() []*ArtifactRecord {
	out := make([]*ArtifactRecord, len(ar.records))
	copy(out, ar.records)
	return out
}

func (ar *AggregatedRecord) URL() string {
	return ar.setBuild.URL() + "artifacts/"
}
