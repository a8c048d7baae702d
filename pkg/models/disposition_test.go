package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		disposition Disposition
		want        LeadStatus
	}{
		{DispositionNoAnswer, LeadStatusContacted},
		{DispositionNotInterested, LeadStatusDead},
		{DispositionCallback, LeadStatusContacted},
		{DispositionSet, LeadStatusSet},
		{DispositionSat, LeadStatusSat},
		{DispositionSale, LeadStatusClosed},
		{DispositionDead, LeadStatusDead},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.disposition.NextStatus(), "disposition %s", tc.disposition)
	}
}

func TestParseDisposition(t *testing.T) {
	for _, d := range Dispositions {
		parsed, err := ParseDisposition(string(d))
		assert.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	_, err := ParseDisposition("WRONG_NUMBER")
	assert.Error(t, err)

	_, err = ParseDisposition("no_answer")
	assert.Error(t, err, "dispositions are case sensitive")
}
