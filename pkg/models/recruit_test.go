package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecruitStatus(t *testing.T) {
	parsed, err := ParseRecruitStatus("LICENSED")
	assert.NoError(t, err)
	assert.Equal(t, RecruitStatusLicensed, parsed)

	_, err = ParseRecruitStatus("HIRED")
	assert.Error(t, err)
}

func TestRecruitStatusIsActive(t *testing.T) {
	for _, status := range []RecruitStatus{RecruitStatusNew, RecruitStatusSubmittedToTylica, RecruitStatusAwaitingFFLEmails, RecruitStatusLicensed} {
		assert.True(t, status.IsActive(), "status %s", status)
	}
	assert.False(t, RecruitStatusActivated.IsActive())
}
