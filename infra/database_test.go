package infra

import (
	"testing"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestOpenPostgres_RequiresURL(t *testing.T) {
	for _, cfg := range []*config.DB{nil, {}} {
		db, err := OpenPostgres(cfg, "test")
		assert.ErrorIs(t, err, ErrMissingDatabaseURL)
		assert.Nil(t, db)
	}
}
