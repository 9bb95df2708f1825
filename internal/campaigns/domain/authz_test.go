package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

func TestIsCreator(t *testing.T) {
	p := domain.Project{Creator: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}

	assert.True(t, domain.IsCreator(p, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	assert.False(t, domain.IsCreator(p, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))
}

func TestIsBacker(t *testing.T) {
	ledger := []domain.Contribution{
		{Backer: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: 100},
		{Backer: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Amount: 200},
		{Backer: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: 50},
	}

	t.Run("account with contributions", func(t *testing.T) {
		assert.True(t, domain.IsBacker(ledger, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	})

	t.Run("account without contributions", func(t *testing.T) {
		assert.False(t, domain.IsBacker(ledger, "0xcccccccccccccccccccccccccccccccccccccccc"))
	})

	t.Run("empty ledger", func(t *testing.T) {
		assert.False(t, domain.IsBacker(nil, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	})
}
