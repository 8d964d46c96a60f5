// Package types
package types

type RoadmapPhase struct {
	ID             int    `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Status         string `json:"status" yaml:"status"`
	Objective      string `json:"objective" yaml:"objective"`
	Details        string `json:"details" yaml:"details"`
	CompletionDate string `json:"completionDate,omitempty" yaml:"completionDate,omitempty"`
}

type RoadmapProgress struct {
	CurrentPhase int            `json:"currentPhase" yaml:"currentPhase"`
	LastUpdate   string         `json:"lastUpdate" yaml:"-"`
	Phases       []RoadmapPhase `json:"phases" yaml:"phases"`
}
