package scout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitLedgerURLCap(t *testing.T) {
	ledger := NewVisitLedger(2, 100)
	const u = "https://chem.example/a"

	assert.True(t, ledger.TryVisit(u, "chem.example"))
	assert.True(t, ledger.TryVisit(u, "chem.example"))
	assert.False(t, ledger.TryVisit(u, "chem.example"))
	assert.Equal(t, 2, ledger.URLVisits(u))
	assert.True(t, ledger.URLCapReached(u))

	// Other URLs on the same domain are unaffected by the URL cap.
	assert.True(t, ledger.TryVisit("https://chem.example/b", "chem.example"))
}

func TestVisitLedgerDomainCap(t *testing.T) {
	ledger := NewVisitLedger(100, 2)

	assert.True(t, ledger.TryVisit("https://chem.example/1", "chem.example"))
	assert.True(t, ledger.TryVisit("https://chem.example/2", "CHEM.example"))
	assert.False(t, ledger.TryVisit("https://chem.example/3", "chem.example"))
	assert.Equal(t, 2, ledger.DomainVisits("chem.example"))

	// A blocked visit counts against neither cap.
	assert.False(t, ledger.URLCapReached("https://chem.example/3"))
	assert.True(t, ledger.TryVisit("https://other.example/1", "other.example"))
}

func TestVisitLedgerRejectsEmptyURL(t *testing.T) {
	ledger := NewVisitLedger(5, 10)
	assert.False(t, ledger.TryVisit("", "chem.example"))
}

func TestVisitLedgerDefaults(t *testing.T) {
	ledger := NewVisitLedger(0, -1)
	for i := 0; i < DefaultMaxURLVisits; i++ {
		assert.True(t, ledger.TryVisit("https://chem.example/a", fmt.Sprintf("d%d.example", i)))
	}
	assert.False(t, ledger.TryVisit("https://chem.example/a", "dx.example"))
}

func TestDownloadBudget(t *testing.T) {
	budget := NewDownloadBudget(2)

	assert.False(t, budget.Exhausted())
	assert.True(t, budget.TryConsume())
	assert.True(t, budget.TryConsume())
	assert.False(t, budget.TryConsume())
	assert.True(t, budget.Exhausted())
	assert.Equal(t, 2, budget.Count())
}

func TestDownloadBudgetDefaultLimit(t *testing.T) {
	budget := NewDownloadBudget(0)
	for i := 0; i < DefaultDownloadLimit; i++ {
		assert.True(t, budget.TryConsume())
	}
	assert.False(t, budget.TryConsume())
}
