package models

// Stage is the pipeline position chosen when a client is created.
type Stage string

const (
	StageProspect Stage = "prospect"
	StageActive   Stage = "active"
	StagePending  Stage = "pending"
)

// Status is derived from Stage.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// StageMeta carries the display label, status and default tags of a stage.
type StageMeta struct {
	Label  string
	Status Status
	Tags   []string
}

var stageMeta = map[Stage]StageMeta{
	StageProspect: {Label: "Prospect", Status: StatusPending, Tags: []string{"Prospect"}},
	StageActive:   {Label: "Active Client", Status: StatusActive, Tags: []string{"New Client"}},
	StagePending:  {Label: "Pending Review", Status: StatusPending, Tags: []string{"Pending"}},
}

// IsValid reports whether s is one of the known stages.
func (s Stage) IsValid() bool {
	_, ok := stageMeta[s]
	return ok
}

// Meta returns the stage metadata. Unknown stages fall back to prospect.
func (s Stage) Meta() StageMeta {
	if meta, ok := stageMeta[s]; ok {
		return meta
	}
	return stageMeta[StageProspect]
}
