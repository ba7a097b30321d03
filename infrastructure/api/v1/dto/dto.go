// Package dto holds the JSON shapes of the v1 API.
package dto

import (
	"time"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/run"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/table"
)

// BuildResponse describes one supported build.
type BuildResponse struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

// BuildListResponse lists supported builds.
type BuildListResponse struct {
	Data []BuildResponse `json:"data"`
}

// NewBuildListResponse converts builds.
func NewBuildListResponse(builds []genome.Build) BuildListResponse {
	data := make([]BuildResponse, 0, len(builds))
	for _, b := range builds {
		data = append(data, BuildResponse{Token: b.String(), Label: b.Label()})
	}
	return BuildListResponse{Data: data}
}

// ChainResponse is the ordered chain list for a build pair.
type ChainResponse struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Chains []string `json:"chains"`
}

// PairListResponse lists every defined pair.
type PairListResponse struct {
	Data []chain.Pair `json:"data"`
}

// TableResponse is a table serialized column-major by header and row-major
// by values. Index holds each row's index value.
type TableResponse struct {
	Columns []string   `json:"columns"`
	Index   []string   `json:"index"`
	Rows    [][]string `json:"rows"`
}

// NewTableResponse converts a table.
func NewTableResponse(t table.Table) TableResponse {
	resp := TableResponse{
		Columns: t.Columns(),
		Index:   make([]string, 0, t.Len()),
		Rows:    make([][]string, 0, t.Len()),
	}
	for i := 0; i < t.Len(); i++ {
		resp.Index = append(resp.Index, t.Index(i))
		resp.Rows = append(resp.Rows, t.Row(i))
	}
	return resp
}

// LiftResponse is the result of POST /api/v1/lift.
type LiftResponse struct {
	RunID    string        `json:"run_id"`
	Chains   []string      `json:"chains"`
	Lifted   TableResponse `json:"lifted"`
	Unlifted TableResponse `json:"unlifted"`
}

// RunResponse describes one recorded run.
type RunResponse struct {
	ID         string     `json:"id"`
	Source     string     `json:"source"`
	Target     string     `json:"target"`
	Chains     []string   `json:"chains"`
	InputRows  int        `json:"input_rows"`
	Lifted     int        `json:"lifted"`
	Unlifted   int        `json:"unlifted"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// NewRunResponse converts a run.
func NewRunResponse(r run.Run) RunResponse {
	resp := RunResponse{
		ID:        r.ID(),
		Source:    r.Source().String(),
		Target:    r.Target().String(),
		Chains:    r.Chains(),
		InputRows: r.InputRows(),
		Lifted:    r.Lifted(),
		Unlifted:  r.Unlifted(),
		Status:    string(r.Status()),
		Error:     r.ErrorText(),
		StartedAt: r.StartedAt(),
	}
	if finished := r.FinishedAt(); !finished.IsZero() {
		resp.FinishedAt = &finished
	}
	return resp
}

// RunListResponse lists runs, newest first.
type RunListResponse struct {
	Data []RunResponse `json:"data"`
}
