package cron

import (
	"testing"

	"Lumina/internal/job"

	"github.com/stretchr/testify/assert"
)

func TestRegisterJobs(t *testing.T) {
	mgr := NewCronManager(job.NewPopularWarmJob(nil, "", 20), "0 */6 * * *")
	assert.NoError(t, mgr.RegisterJobs())
	assert.Len(t, mgr.engine.Entries(), 1)

	bad := NewCronManager(job.NewPopularWarmJob(nil, "", 20), "every now and then")
	assert.Error(t, bad.RegisterJobs())
}
