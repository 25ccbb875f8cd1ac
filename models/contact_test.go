package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactStatusTransitions(t *testing.T) {
	assert.True(t, ContactStatusNew.CanTransition(ContactStatusRead))
	assert.True(t, ContactStatusRead.CanTransition(ContactStatusResponded))
	assert.True(t, ContactStatusResponded.CanTransition(ContactStatusResolved))
	assert.True(t, ContactStatusNew.CanTransition(ContactStatusResolved))

	assert.False(t, ContactStatusRead.CanTransition(ContactStatusNew))
	assert.False(t, ContactStatusResolved.CanTransition(ContactStatusNew))
	assert.False(t, ContactStatusResolved.CanTransition(ContactStatusResponded))
	assert.True(t, ContactStatusResolved.Terminal())
}

func TestParseContactStatus(t *testing.T) {
	status, err := ParseContactStatus("READ")
	assert.NoError(t, err)
	assert.Equal(t, ContactStatusRead, status)

	_, err = ParseContactStatus("archived")
	assert.Error(t, err)
}
