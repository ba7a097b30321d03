package run

import (
	"errors"
	"testing"
	"time"

	"github.com/Townsend-Lab-Yale/lift-coords/domain/genome"
	"github.com/stretchr/testify/assert"
)

func TestRun_Lifecycle(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := New("abc", genome.HG19, genome.GRCh37, []string{"hg19_to_GRCh37.chain"}, 10, start)

	done := r.Succeed(8, 2, start.Add(3*time.Second))
	assert.Equal(t, StatusSucceeded, done.Status())
	assert.Equal(t, 8, done.Lifted())
	assert.Equal(t, 2, done.Unlifted())
	assert.Equal(t, 3*time.Second, done.Duration())

	assert.Empty(t, r.Status(), "original run is unchanged")
}

func TestRun_Fail(t *testing.T) {
	r := New("abc", genome.HG38, genome.HG19, nil, 1, time.Now())
	failed := r.Fail(errors.New("liftOver exited 1"), time.Now())

	assert.Equal(t, StatusFailed, failed.Status())
	assert.Equal(t, "liftOver exited 1", failed.ErrorText())
}
