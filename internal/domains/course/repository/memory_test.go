package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestMemoryRepository(t *testing.T) {
	suite.Run(t, &repositorySuite{newRepo: NewMemoryRepository})
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%go%", containsPattern("Go"))
	assert.Equal(t, `%50\%\_off%`, containsPattern("50%_off"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
