package persistence

import (
	"time"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/chain"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/Townsend-Lab-Yale/lift-coords/domain/run"
)

// RunMapper maps between domain Run and persistence RunModel.
type RunMapper struct{}

// ToDomain converts a RunModel to a domain Run.
func (m RunMapper) ToDomain(e RunModel) run.Run {
	var finishedAt time.Time
	if e.FinishedAt != nil {
		finishedAt = *e.FinishedAt
	}
	return run.Reconstruct(
		e.ID,
		genome.Build(e.Source),
		genome.Build(e.Target),
		[]string(e.Chains),
		e.InputRows,
		e.Lifted,
		e.Unlifted,
		run.Status(e.Status),
		e.Error,
		e.StartedAt,
		finishedAt,
	)
}

// ToModel converts a domain Run to a RunModel.
func (m RunMapper) ToModel(r run.Run) RunModel {
	var finishedAt *time.Time
	if !r.FinishedAt().IsZero() {
		t := r.FinishedAt()
		finishedAt = &t
	}
	return RunModel{
		ID:         r.ID(),
		Source:     string(r.Source()),
		Target:     string(r.Target()),
		Chains:     StringList(r.Chains()),
		InputRows:  r.InputRows(),
		Lifted:     r.Lifted(),
		Unlifted:   r.Unlifted(),
		Status:     string(r.Status()),
		Error:      r.ErrorText(),
		StartedAt:  r.StartedAt(),
		FinishedAt: finishedAt,
	}
}

// ChainFileMapper maps between chain.File and ChainFileModel.
type ChainFileMapper struct{}

// ToDomain converts a ChainFileModel to a chain.File.
func (m ChainFileMapper) ToDomain(e ChainFileModel) chain.File {
	return chain.NewFile(e.Name, e.Size, e.Checksum, e.Source, e.InstalledAt)
}

// ToModel converts a chain.File to a ChainFileModel.
func (m ChainFileMapper) ToModel(f chain.File) ChainFileModel {
	return ChainFileModel{
		Name:        f.Name(),
		Size:        f.Size(),
		Checksum:    f.Checksum(),
		Source:      f.Source(),
		InstalledAt: f.InstalledAt(),
	}
}
